package tile

import (
	"fmt"
	"io"
	"os"
)

// ReadAt reads tile idx from the tile table r.
func ReadAt(r io.ReaderAt, idx int) (Tile, error) {
	var t Tile
	n, err := r.ReadAt(t[:], Offset(idx))
	if n == Size {
		return t, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return t, err
}

// WriteAt overwrites tile idx in the tile table w.
func (t Tile) WriteAt(w io.WriterAt, idx int) error {
	_, err := w.WriteAt(t[:], Offset(idx))
	return err
}

// ReadFile reads tile idx from the named tile table.
func ReadFile(name string, idx int) (Tile, error) {
	f, err := os.Open(name)
	if err != nil {
		return Tile{}, err
	}
	defer f.Close()

	t, err := ReadAt(f, idx)
	if err != nil {
		return t, fmt.Errorf("reading tile %#x from %s: %w", idx, name, err)
	}
	return t, nil
}

// WriteFile overwrites tile idx in the named tile table. The file must
// already exist and be long enough to hold the tile; it is never created,
// truncated or grown.
func (t Tile) WriteFile(name string, idx int) error {
	f, err := os.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	if info.Size() < Offset(idx)+Size {
		f.Close()
		return fmt.Errorf("writing tile %#x to %s: %w", idx, name, io.ErrUnexpectedEOF)
	}

	if err := t.WriteAt(f, idx); err != nil {
		f.Close()
		return fmt.Errorf("writing tile %#x to %s: %w", idx, name, err)
	}

	return f.Close()
}
