// Package editor holds the text of the note that is open in the editor panel.
package editor

import (
	"errors"
	"unicode/utf8"

	"nodenotes/internal/node"
)

// CursorMarker is drawn after the content. It is never written to disk.
const CursorMarker = "|"

// ErrNotOpen is returned when writing a closed buffer.
var ErrNotOpen = errors.New("editor: no note open")

// Reader loads note content.
type Reader interface {
	ReadAll(path string) (string, error)
}

// Writer stores note content.
type Writer interface {
	WriteAll(path, content string) error
}

// Buffer is append-only: the cursor always sits at the end of the content.
type Buffer struct {
	owner   node.ID
	path    string
	content []byte
	dirty   bool
	open    bool
}

func New() *Buffer {
	return &Buffer{}
}

// Open loads the note at path for the node id, replacing whatever was open.
// A read failure leaves the buffer closed.
func (b *Buffer) Open(fs Reader, id node.ID, path string) error {
	content, err := fs.ReadAll(path)
	if err != nil {
		b.reset()
		return err
	}
	b.owner = id
	b.path = path
	b.content = []byte(content)
	b.dirty = false
	b.open = true
	return nil
}

// Save writes the content without closing the buffer.
func (b *Buffer) Save(fs Writer) error {
	if !b.open {
		return ErrNotOpen
	}
	if err := fs.WriteAll(b.path, string(b.content)); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

// Close writes the content and releases the buffer. If the write fails the
// buffer stays open with its content so the caller can retry.
func (b *Buffer) Close(fs Writer) error {
	if !b.open {
		return nil
	}
	if err := b.Save(fs); err != nil {
		return err
	}
	b.reset()
	return nil
}

// Discard drops the buffer without writing, for notes whose file is gone.
func (b *Buffer) Discard() {
	b.reset()
}

func (b *Buffer) reset() {
	*b = Buffer{}
}

// Retarget points the open buffer at a renamed file.
func (b *Buffer) Retarget(path string) {
	if b.open {
		b.path = path
	}
}

func (b *Buffer) InsertText(s string) {
	if !b.open || s == "" {
		return
	}
	b.content = append(b.content, s...)
	b.dirty = true
}

// Backspace removes the last character. Multi-byte characters go as a whole.
func (b *Buffer) Backspace() {
	if !b.open || len(b.content) == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(b.content)
	b.content = b.content[:len(b.content)-size]
	b.dirty = true
}

func (b *Buffer) Newline() {
	b.InsertText("\n")
}

func (b *Buffer) IsOpen() bool    { return b.open }
func (b *Buffer) Owner() node.ID  { return b.owner }
func (b *Buffer) Path() string    { return b.path }
func (b *Buffer) Dirty() bool     { return b.dirty }
func (b *Buffer) Content() string { return string(b.content) }

// Display is the content as drawn, with the cursor marker at the end.
func (b *Buffer) Display() string {
	return string(b.content) + CursorMarker
}
