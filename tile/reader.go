package tile

import (
	"errors"
	"image"
	"io"
	"io/ioutil"
)

// ErrShort is returned when a tile table ends part way through a tile
var ErrShort = errors.New("tile: not enough tile data")

// Decode reads a whole tile table from r and returns it as a tile sheet. A
// partial last row of tiles is padded with zero pixels. As with Tile.Image
// the samples are the raw 4-bit values.
func Decode(r io.Reader) (*image.Gray, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 || len(b)%Size != 0 {
		return nil, ErrShort
	}

	n := len(b) / Size
	rows := (n + SheetTiles - 1) / SheetTiles

	m := image.NewGray(image.Rect(0, 0, SheetWidth, rows*tileHeight))
	for i := 0; i < n; i++ {
		var t Tile
		copy(t[:], b[i*Size:])
		t.draw(m, i%SheetTiles*tileWidth, i/SheetTiles*tileHeight)
	}

	return m, nil
}
