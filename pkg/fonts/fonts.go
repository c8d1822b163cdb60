// Package fonts provides the label font for raster output.
//
// The font is Go Regular, compiled into the binary by golang.org/x/image, so
// PNG labels look the same on every host.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family for labels, with fallbacks for viewers
// that do not have the Go font installed.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	label     *truetype.Font
	labelErr  error
	labelOnce sync.Once
)

// Label returns the parsed label font. It is parsed once.
func Label() (*truetype.Font, error) {
	labelOnce.Do(func() {
		label, labelErr = truetype.Parse(goregular.TTF)
	})
	return label, labelErr
}

// Face returns the label font at size points.
func Face(size float64) (font.Face, error) {
	f, err := Label()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
