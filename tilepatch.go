/*
Package tilepatch is a library for patching 4 bits per pixel tile graphics
inside ROM asset files using edit scripts.
*/
package tilepatch

import (
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"path/filepath"

	"github.com/bodgit/tilepatch/edit"
	"github.com/bodgit/tilepatch/tile"
)

// Patcher applies edit scripts. Relative paths named in a script are
// resolved against its base directory.
type Patcher struct {
	dir    string
	logger *log.Logger
}

// New returns a Patcher that resolves relative paths against dir, or the
// current working directory if dir is empty.
func New(dir string, logger *log.Logger) *Patcher {
	return &Patcher{
		dir:    dir,
		logger: logger,
	}
}

func (p *Patcher) path(name string) string {
	if p.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.dir, name)
}

// ApplyFile parses and applies the named edit script.
func (p *Patcher) ApplyFile(name string) error {
	script, err := edit.ParseFile(name)
	if err != nil {
		return err
	}

	p.logger.Printf("Loaded %d directives from \"%s\"\n", len(script), name)

	return p.Apply(script)
}

// Apply applies each directive in order, stopping at the first error. Tiles
// already written are left in place.
func (p *Patcher) Apply(script edit.Script) error {
	var dests []string
	seen := make(map[string]struct{})

	for _, d := range script {
		if err := p.apply(d); err != nil {
			return fmt.Errorf("applying %s: %w", d, err)
		}
		if _, ok := seen[d.Dest]; !ok {
			seen[d.Dest] = struct{}{}
			dests = append(dests, d.Dest)
		}
	}

	// Checksums are informational, destinations only need to be writable
	if p.logger.Writer() == ioutil.Discard {
		return nil
	}

	for _, dest := range dests {
		crc, err := crcFile(p.path(dest))
		if err != nil {
			p.logger.Printf("Patched \"%s\", unable to compute CRC: %s\n", dest, err)
			continue
		}
		p.logger.Printf("Patched \"%s\", with CRC \"%s\"\n", dest, crc)
	}

	return nil
}

func (p *Patcher) apply(d edit.Directive) error {
	p.logger.Printf("Copying %s\n", d)

	src, dst := p.path(d.Source), p.path(d.Dest)

	// The sheet can't change while the block is copied, decode it once
	var sheet image.Image
	if d.Kind == edit.Raster {
		m, err := loadRaster(src)
		if err != nil {
			return err
		}
		sheet = m
	}

	for _, o := range d.Offsets() {
		var t tile.Tile
		var err error

		switch d.Kind {
		case edit.Raw:
			t, err = tile.ReadFile(src, d.SourceIndex+o)
		case edit.Raster:
			t, err = tile.FromImage(sheet, d.SourceIndex+o)
			if err != nil {
				err = fmt.Errorf("tile %#x of %s: %w", d.SourceIndex+o, src, err)
			}
		default:
			err = fmt.Errorf("%w: %s", edit.ErrKind, d.Kind)
		}
		if err != nil {
			return err
		}

		if err := t.WriteFile(dst, d.DestIndex+o); err != nil {
			return err
		}
	}

	return nil
}
