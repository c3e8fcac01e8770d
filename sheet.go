package tilepatch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF tile sheets
	_ "image/jpeg" // register JPEG tile sheets
	_ "image/png"  // register PNG tile sheets
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/bodgit/tilepatch/tile"
	"github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp" // register BMP tile sheets
)

func loadRaster(file string) (*image.Gray, error) {
	m, err := imgio.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	return tile.Gray(m), nil
}

func saveRaster(file string, m image.Image) error {
	b := new(bytes.Buffer)

	var err error
	if strings.ToLower(filepath.Ext(file)) != ".pgm" {
		err = imgio.PNGEncoder()(b, m)
	} else {
		err = netpbm.Encode(b, m, &netpbm.EncodeOptions{
			Format:   netpbm.PGM,
			MaxValue: 255,
		})
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}

	// Only touch the file once the whole image has been encoded
	if err := ioutil.WriteFile(file, b.Bytes(), 0666); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}

	return nil
}

// Dump renders the whole tile table in file as a tile sheet and saves it to
// out, as a PGM if out ends in ".pgm" and a PNG otherwise. Pixels keep their
// raw 4-bit values so the result is very dark.
func Dump(file, out string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := tile.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", file, err)
	}

	return saveRaster(out, m)
}

// Convert encodes the whole tile sheet in file as a new tile table written
// to out. If quantize is set the sheet is first reduced to 16 colors and each
// pixel takes the index of its color.
func Convert(file, out string, quantize bool) error {
	m, err := imgio.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}

	var g *image.Gray
	if quantize {
		g = tile.Quantize(m)
	} else {
		g = tile.Gray(m)
	}

	b := new(bytes.Buffer)
	if err := tile.Encode(b, g); err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}

	if err := ioutil.WriteFile(out, b.Bytes(), 0666); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	return nil
}
