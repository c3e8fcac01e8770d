/*
Package edit implements the tile edit script format.

A script is a sequence of lines. An unindented line ending in ".bin:" names
the destination tile table for the indented directive lines that follow it:

	Graphics/GFX05.bin:
	 0C Graphics/GFX02.bin:0E:2
	 10 Graphics/font.pgm:41

Each directive gives the destination tile index, the source file and the
source tile index, all indices in hexadecimal, and optionally the side length
(1, 2 or 4) of a square block of tiles to copy. Blank lines are ignored.
*/
package edit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Stride is the number of tiles in each row of a tile table
const Stride = 16

var (
	// ErrSyntax is returned for a directive line that can't be parsed
	ErrSyntax = errors.New("edit: invalid directive")
	// ErrNoDestination is returned for a directive that appears before
	// any destination tile table has been named
	ErrNoDestination = errors.New("edit: directive without destination")
	// ErrDeclaration is returned for an unindented line that doesn't name
	// a tile table
	ErrDeclaration = errors.New("edit: destination must end in .bin:")
	// ErrKind is returned for a source that is neither a tile table nor a
	// tile sheet
	ErrKind = errors.New("edit: unsupported source")
)

var directive = regexp.MustCompile(`^([0-9a-fA-F]+) (.*\.(?:pgm|bin)):([0-9a-fA-F]+)(?::([124]))?$`)

// Kind is the type of source a directive copies tiles from
type Kind int

const (
	// Raw sources are tile tables
	Raw Kind = iota
	// Raster sources are grayscale tile sheets
	Raster
)

func (k Kind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Raster:
		return "raster"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf returns the kind of source based on the file extension
func KindOf(path string) (Kind, error) {
	switch filepath.Ext(path) {
	case ".bin":
		return Raw, nil
	case ".pgm":
		return Raster, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrKind, path)
	}
}

// Directive copies a square block of tiles from one file to another
type Directive struct {
	Source      string
	SourceIndex int
	Kind        Kind
	Dest        string
	DestIndex   int
	Size        int
}

// Offsets returns the tile offsets covered by the block, relative to both the
// source and destination index, in the order they are copied.
func (d Directive) Offsets() []int {
	size := d.Size
	if size == 0 {
		size = 1
	}
	offsets := make([]int, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			offsets = append(offsets, Stride*x+y)
		}
	}
	return offsets
}

func (d Directive) String() string {
	return fmt.Sprintf("%s:%X <- %s:%X (%dx%d)", d.Dest, d.DestIndex, d.Source, d.SourceIndex, d.Size, d.Size)
}

// Script is an ordered list of directives
type Script []Directive

// LineError records the line of a script that failed to parse
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type parser struct {
	dest   string
	script Script
}

func (p *parser) line(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if s[0] != ' ' {
		if !strings.HasSuffix(s, ".bin:") {
			return ErrDeclaration
		}
		p.dest = strings.TrimSuffix(s, ":")
		return nil
	}

	if p.dest == "" {
		return ErrNoDestination
	}

	m := directive.FindStringSubmatch(strings.TrimLeft(s, " \t"))
	if m == nil {
		return ErrSyntax
	}

	d := Directive{
		Source: m[2],
		Dest:   p.dest,
		Size:   1,
	}

	var err error
	if d.Kind, err = KindOf(d.Source); err != nil {
		return err
	}

	if d.DestIndex, err = parseIndex(m[1]); err != nil {
		return err
	}

	if d.SourceIndex, err = parseIndex(m[3]); err != nil {
		return err
	}

	if m[4] != "" {
		d.Size = int(m[4][0] - '0')
	}

	p.script = append(p.script, d)

	return nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.ParseUint(s, 16, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return int(n), nil
}

// Parse reads a script from r. Any error aborts the whole parse.
func Parse(r io.Reader) (Script, error) {
	var p parser

	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		if err := p.line(strings.TrimSuffix(s.Text(), "\r")); err != nil {
			return nil, &LineError{Line: n, Err: err}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return p.script, nil
}

// ParseFile reads a script from the named file.
func ParseFile(name string) (Script, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	script, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return script, nil
}
