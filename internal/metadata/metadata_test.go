package metadata

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Entry{
		{Title: "a", X: 1, Y: 2},
		{Title: "b", X: 3, Y: 4},
	}))
	assert.Equal(t, "a at 1,2\nb at 3,4\n", buf.String())

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Positions{"a": image.Pt(1, 2), "b": image.Pt(3, 4)}, got)
}

func TestDecodeStopsAtBlankLine(t *testing.T) {
	got, err := Decode(strings.NewReader("a at 1,2\n\nb at 3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, Positions{"a": image.Pt(1, 2)}, got)
}

func TestDecodeSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		"no separator here",
		"x at 1",
		"y at one,2",
		"z at 3,two",
		" at 1,1",
		"ok at -5,7",
		"node_at_10_and_20 at 10,20",
	}, "\n")

	got, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Positions{
		"ok":                image.Pt(-5, 7),
		"node_at_10_and_20": image.Pt(10, 20),
	}, got)
}

func TestDecodeSplitsOnFirstSeparator(t *testing.T) {
	got, err := Decode(strings.NewReader("a at b at 1,2\n"))
	require.NoError(t, err)
	// "b at 1" is not an integer, so the line is dropped.
	assert.Empty(t, got)
}

func TestReadFileMissingIsEmpty(t *testing.T) {
	got, err := ReadFile(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteFileTruncates(t *testing.T) {
	path := Path(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("old at 1,1\nolder at 2,2\nstale at 3,3\n"), 0o644))

	require.NoError(t, WriteFile(path, []Entry{{Title: "new", X: 9, Y: 8}}))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Positions{"new": image.Pt(9, 8)}, got)
}

func TestDefaultPosition(t *testing.T) {
	assert.Equal(t, image.Pt(100, 100), DefaultPosition(0))
	assert.Equal(t, image.Pt(150, 100), DefaultPosition(1))
	assert.Equal(t, image.Pt(200, 100), DefaultPosition(2))
}

func TestValidTitle(t *testing.T) {
	assert.True(t, ValidTitle("groceries"))
	assert.True(t, ValidTitle("node_at_1_and_2"))
	assert.False(t, ValidTitle(""))
	assert.False(t, ValidTitle("meet at noon"))
	assert.False(t, ValidTitle("two\nlines"))
}
