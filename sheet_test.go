package tilepatch

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/bodgit/tilepatch/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAndDump(t *testing.T) {
	dir := t.TempDir()

	m := image.NewGray(image.Rect(0, 0, tile.SheetWidth, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < tile.SheetWidth; x++ {
			m.SetGray(x, y, color.Gray{Y: uint8((x/8+y)%16) << 4})
		}
	}

	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	table := filepath.Join(dir, "sheet.bin")
	require.NoError(t, Convert(filepath.Join(dir, "sheet.png"), table, false))
	assert.Len(t, readFile(t, table), 32*tile.Size)

	for _, name := range []string{"dump.pgm", "dump.png"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			require.NoError(t, Dump(table, out))

			got, err := imgio.Open(out)
			require.NoError(t, err)
			g := tile.Gray(got)
			require.Equal(t, m.Bounds(), g.Bounds())

			for y := 0; y < 16; y++ {
				for x := 0; x < tile.SheetWidth; x++ {
					assert.Equal(t, m.GrayAt(x, y).Y>>4, g.GrayAt(x, y).Y)
				}
			}
		})
	}
}

func TestConvertQuantize(t *testing.T) {
	dir := t.TempDir()

	m := image.NewRGBA(image.Rect(0, 0, tile.SheetWidth, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < tile.SheetWidth; x++ {
			if x < 8 {
				m.Set(x, y, color.RGBA{0, 0, 0xff, 0xff})
			} else {
				m.Set(x, y, color.RGBA{0xff, 0xff, 0, 0xff})
			}
		}
	}
	require.NoError(t, imgio.Save(filepath.Join(dir, "color.png"), m, imgio.PNGEncoder()))

	table := filepath.Join(dir, "color.bin")
	require.NoError(t, Convert(filepath.Join(dir, "color.png"), table, true))

	b := readFile(t, table)
	require.Len(t, b, tile.SheetTiles*tile.Size)

	first, err := tile.ReadFile(table, 0)
	require.NoError(t, err)
	last, err := tile.ReadFile(table, tile.SheetTiles-1)
	require.NoError(t, err)

	// Blue is darker than yellow so gets the lower index
	assert.Less(t, first.At(0, 0), last.At(0, 0))
	assert.NotEqual(t, first, last)
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, imgio.Save(filepath.Join(dir, "narrow.png"), image.NewGray(image.Rect(0, 0, 64, 8)), imgio.PNGEncoder()))
	assert.Error(t, Convert(filepath.Join(dir, "narrow.png"), filepath.Join(dir, "narrow.bin"), false))

	assert.Error(t, Convert(filepath.Join(dir, "missing.png"), filepath.Join(dir, "missing.bin"), false))
	assert.Error(t, Dump(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "missing.png")))
}

func TestConvertKeepsOutputOnError(t *testing.T) {
	dir := t.TempDir()

	existing := pattern(4)
	out := writeFile(t, dir, "existing.bin", existing)

	require.NoError(t, imgio.Save(filepath.Join(dir, "narrow.png"), image.NewGray(image.Rect(0, 0, 64, 8)), imgio.PNGEncoder()))
	err := Convert(filepath.Join(dir, "narrow.png"), out, false)
	assert.True(t, errors.Is(err, tile.ErrWidth))
	assert.Equal(t, existing, readFile(t, out))

	require.NoError(t, imgio.Save(filepath.Join(dir, "short.png"), image.NewGray(image.Rect(0, 0, tile.SheetWidth, 12)), imgio.PNGEncoder()))
	err = Convert(filepath.Join(dir, "short.png"), out, false)
	assert.True(t, errors.Is(err, tile.ErrHeight))
	assert.Equal(t, existing, readFile(t, out))
}

func TestDumpErrors(t *testing.T) {
	dir := t.TempDir()
	table := writeFile(t, dir, "sheet.bin", pattern(2))

	// A tile table that ends part way through a tile leaves the output alone
	existing := []byte("P5\n8 8\n255\n")
	out := writeFile(t, dir, "existing.pgm", existing)
	short := writeFile(t, dir, "short.bin", pattern(2)[:tile.Size+5])
	assert.True(t, errors.Is(Dump(short, out), tile.ErrShort))
	assert.Equal(t, existing, readFile(t, out))

	for _, name := range []string{"dump.pgm", "dump.png"} {
		err := Dump(table, filepath.Join(dir, "missing", name))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist), err.Error())
		assert.Contains(t, err.Error(), name)
	}
}
