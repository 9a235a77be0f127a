package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPlainText(t *testing.T) {
	assert.Equal(t, "", Clean(""))
	assert.Equal(t, "a\nb\nc\td", Clean("a\r\nb\rc\td\x00\x07"))
	assert.Equal(t, "héllo", Clean("héllo"))
}

func TestCleanRTF(t *testing.T) {
	rtf := `{\rtf1\ansi{\fonttbl\f0\fswiss Helvetica;}\f0\pard Hello \b world\b0\par Second\tab line \{x\}}`

	assert.Equal(t, "Helvetica;Hello world\nSecond\tline {x}", Clean(rtf))
}

func TestCleanHTML(t *testing.T) {
	html := `<html><body><div>a &lt;b&gt; &amp; c</div></body></html>`

	assert.Equal(t, "a <b> & c", Clean(html))
}
