/*
Package tile implements a 4 bits per pixel planar tile decoder and encoder.

A tile is 8 by 8 pixels stored in exactly 32 bytes. The first 16 bytes hold
bit-planes 0 and 1 interleaved by row, the remaining 16 bytes hold bit-planes
2 and 3 in the same way:

	byte  2r    row r, plane 0
	byte  2r+1  row r, plane 1
	byte 16+2r  row r, plane 2
	byte 17+2r  row r, plane 3

Within a plane byte, column 0 is the most significant bit.

A tile table is a flat sequence of tiles with no header; tile i occupies bytes
32*i to 32*i+32. Tile sheets are grayscale images exactly 128 pixels (16
tiles) wide.
*/
package tile

import (
	"errors"
	"image"
	"image/color"
)

const (
	tileWidth  = 8
	tileHeight = tileWidth
	halfPlane  = 16

	// Size is the number of bytes used by a single tile
	Size = 32

	// SheetTiles is the number of tiles in each row of a tile sheet
	SheetTiles = 16

	// SheetWidth is the width in pixels of a tile sheet
	SheetWidth = SheetTiles * tileWidth
)

var (
	// ErrWidth is returned when a tile sheet is not SheetWidth pixels wide
	ErrWidth = errors.New("tile: image is wrong width")
	// ErrBounds is returned when a tile lies outside of the tile sheet
	ErrBounds = errors.New("tile: tile outside of image")
)

// Tile is a single packed tile
type Tile [Size]byte

// Offset returns the byte offset of tile idx within a tile table
func Offset(idx int) int64 {
	return int64(idx) * Size
}

func (t *Tile) set(x, y int, v uint8) {
	shift := uint(7 - x)
	t[y*2] |= (v & 0x01) << shift
	t[y*2+1] |= (v >> 1 & 0x01) << shift
	t[halfPlane+y*2] |= (v >> 2 & 0x01) << shift
	t[halfPlane+y*2+1] |= (v >> 3 & 0x01) << shift
}

// At returns the 4-bit value of the pixel at column x, row y
func (t Tile) At(x, y int) uint8 {
	shift := uint(7 - x)
	return t[y*2]>>shift&0x01 |
		(t[y*2+1]>>shift&0x01)<<1 |
		(t[halfPlane+y*2]>>shift&0x01)<<2 |
		(t[halfPlane+y*2+1]>>shift&0x01)<<3
}

// Image returns the tile as an 8 by 8 grayscale image. Each sample is the raw
// 4-bit pixel value, it is not scaled back up to the full 0-255 range.
func (t Tile) Image() *image.Gray {
	m := image.NewGray(image.Rect(0, 0, tileWidth, tileHeight))
	t.draw(m, 0, 0)
	return m
}

func (t Tile) draw(m *image.Gray, dx, dy int) {
	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			m.SetGray(dx+x, dy+y, color.Gray{Y: t.At(x, y)})
		}
	}
}

// FromImage packs tile idx of the tile sheet m. Tiles are numbered left to
// right, top to bottom, SheetTiles per row. Each sample is reduced to 4 bits
// by dropping the low nibble.
func FromImage(m image.Image, idx int) (Tile, error) {
	var t Tile

	b := m.Bounds()
	if b.Dx() != SheetWidth {
		return t, ErrWidth
	}

	if idx < 0 {
		return t, ErrBounds
	}

	// Tile window relative to the top-left corner of the image
	r := image.Rect(0, 0, tileWidth, tileHeight).Add(image.Pt(idx%SheetTiles*tileWidth, idx/SheetTiles*tileHeight))
	if !r.Add(b.Min).In(b) {
		return t, ErrBounds
	}

	g, ok := m.(*image.Gray)
	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			px, py := b.Min.X+r.Min.X+x, b.Min.Y+r.Min.Y+y

			var v uint8
			if ok {
				v = g.GrayAt(px, py).Y
			} else {
				v = color.GrayModel.Convert(m.At(px, py)).(color.Gray).Y
			}

			t.set(x, y, v>>4)
		}
	}

	return t, nil
}
