package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	Table(&buf, []string{"GRAPH", "NOTES"}, [][]string{{"work", "12"}, {"home", "3"}})

	want := "  GRAPH  NOTES\n" +
		"  ─────  ─────\n" +
		"  work   12\n" +
		"  home   3\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWithoutRowsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"GRAPH"}, nil)
	assert.Empty(t, buf.String())
}

func TestCheck(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "✓", Check(true))
	assert.Equal(t, "✗", Check(false))
}
