// Package clip reads and writes the system clipboard as plain text.
package clip

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// System is the desktop clipboard.
type System struct {
	log *zap.Logger
}

func New(log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{log: log}
}

// Available reports whether a clipboard backend was found.
func Available() bool {
	return !clipboard.Unsupported
}

// ReadText returns the clipboard as plain text ready to insert into a note.
func (s *System) ReadText() (string, error) {
	raw, err := readRaw()
	if err != nil {
		s.log.Warn("clipboard unreadable", zap.Error(err))
		return "", err
	}
	return Clean(raw), nil
}

func (s *System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		s.log.Warn("clipboard unwritable", zap.Error(err))
		return err
	}
	return nil
}

func readRaw() (string, error) {
	if runtime.GOOS == "darwin" {
		// pbpaste can hand back RTF unless asked for text
		if out, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(out), nil
		}
	}
	return clipboard.ReadAll()
}

// Clean turns pasted text into what a note can hold: rich text and markup are
// reduced to their text, control characters other than tab and newline are
// dropped and line endings become "\n".
func Clean(text string) string {
	switch {
	case text == "":
		return ""
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = stripHTML(text)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r >= 32 {
			return r
		}
		return -1
	}, text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, `{\rtf`)
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div"))
}

// stripRTF keeps the text runs of an RTF document. \par and \line become
// newlines, \tab a tab; every other control word and all braces are dropped.
func stripRTF(rtf string) string {
	var out strings.Builder
	runes := []rune(rtf)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
		default:
			out.WriteRune(r)
			continue
		}

		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		if next == '\\' || next == '{' || next == '}' {
			out.WriteRune(next)
			i++
			continue
		}
		if !isLetter(next) {
			i++
			continue
		}

		start := i + 1
		i = start
		for i+1 < len(runes) && isLetter(runes[i+1]) {
			i++
		}
		word := string(runes[start : i+1])
		for i+1 < len(runes) && (runes[i+1] == '-' || (runes[i+1] >= '0' && runes[i+1] <= '9')) {
			i++
		}
		if i+1 < len(runes) && runes[i+1] == ' ' {
			i++
		}
		switch word {
		case "par", "line":
			out.WriteByte('\n')
		case "tab":
			out.WriteByte('\t')
		}
	}
	return out.String()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

func stripHTML(html string) string {
	var out strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return entities.Replace(out.String())
}
