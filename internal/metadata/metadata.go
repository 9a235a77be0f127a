// Package metadata reads and writes the positions file of a graph.
//
// The file holds one line per node:
//
//	<title> at <x>,<y>
//
// Reading stops at the first blank line.
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the reserved positions file inside every graph directory.
const FileName = ".graph"

const separator = " at "

// Entry is one node position.
type Entry struct {
	Title string
	X, Y  int
}

// Positions maps a node title to its centre point.
type Positions map[string]image.Point

// Path returns the positions file of the graph in dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// DefaultPosition is where the i-th loaded note goes when no position is
// recorded for it.
func DefaultPosition(i int) image.Point {
	return image.Pt(100+50*i, 100)
}

// ValidTitle reports whether title survives an encode/decode round trip.
func ValidTitle(title string) bool {
	return title != "" &&
		!strings.Contains(title, separator) &&
		!strings.ContainsAny(title, "\r\n")
}

// Encode writes one line per entry.
func Encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s%s%d,%d\n", e.Title, separator, e.X, e.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads entries until a blank line or EOF. Lines that do not parse
// are skipped; their nodes fall back to a default position.
func Decode(r io.Reader) (Positions, error) {
	positions := make(Positions)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		title, pt, ok := parseLine(line)
		if !ok {
			continue
		}
		positions[title] = pt
	}
	return positions, scanner.Err()
}

func parseLine(line string) (string, image.Point, bool) {
	title, rest, ok := strings.Cut(line, separator)
	if !ok || title == "" {
		return "", image.Point{}, false
	}
	xs, ys, ok := strings.Cut(rest, ",")
	if !ok {
		return "", image.Point{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return "", image.Point{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return "", image.Point{}, false
	}
	return title, image.Pt(x, y), true
}

// ReadFile decodes the positions file at path. A missing file is an empty
// mapping.
func ReadFile(path string) (Positions, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(Positions), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile truncates path and encodes entries into it.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
