package tile

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

const colors = 1 << 4

// ErrHeight is returned when a tile sheet is not a whole number of tiles high
var ErrHeight = errors.New("tile: image height is not a multiple of 8")

// Gray returns m as a grayscale image with its top-left corner at (0, 0).
func Gray(m image.Image) *image.Gray {
	if g, ok := m.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := m.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), m, b.Min, draw.Src)
	return g
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// Quantize reduces m to at most 16 colors using a median cut and returns a
// grayscale image where each sample is the color index, darkest first,
// multiplied by 16 so that it survives the reduction to 4 bits.
func Quantize(m image.Image) *image.Gray {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, colors), m)
	sort.SliceStable(p, func(i, j int) bool { return luma(p[i]) < luma(p[j]) })

	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), p)
	draw.Draw(pm, pm.Bounds(), m, b.Min, draw.Src)

	g := image.NewGray(pm.Rect)
	for i, v := range pm.Pix {
		g.Pix[i] = v << 4
	}
	return g
}

// Encode writes every tile of the tile sheet m to w as a tile table.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() != SheetWidth {
		return ErrWidth
	}
	if b.Dy()%tileHeight != 0 {
		return ErrHeight
	}

	g := Gray(m)
	for i := 0; i < b.Dy()/tileHeight*SheetTiles; i++ {
		t, err := FromImage(g, i)
		if err != nil {
			return err
		}
		if _, err := w.Write(t[:]); err != nil {
			return err
		}
	}

	return nil
}
