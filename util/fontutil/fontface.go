package fontutil

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type Font struct {
	Font       *sfnt.Font
	facesCache map[opentype.FaceOptions]*FontFace
}

func NewFont(ttf []byte) (*Font, error) {
	sf, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fontutil: parse: %w", err)
	}
	f := &Font{Font: sf}
	f.ClearFacesCache()
	return f, nil
}

func (f *Font) ClearFacesCache() {
	f.facesCache = map[opentype.FaceOptions]*FontFace{}
}

func (f *Font) FontFace(opt opentype.FaceOptions) *FontFace {
	// avoid divide by zero; also ensure face.metrics() works
	if opt.Size == 0 {
		opt.Size = 12 // internal opentype default
	}
	if opt.DPI == 0 {
		opt.DPI = 72
	}

	ff, ok := f.facesCache[opt]
	if ok {
		return ff
	}
	ff = NewFontFace(f, opt)
	f.facesCache[opt] = ff
	return ff
}

func (f *Font) FontFace2(size float64) *FontFace {
	opt := opentype.FaceOptions{Size: size}
	return f.FontFace(opt)
}

//----------

type FontFace struct {
	Font    *Font
	Face    font.Face
	Size    float64 // in points, readonly
	Metrics *font.Metrics

	lineHeight fixed.Int26_6
	baselineY  fixed.Int26_6
}

func NewFontFace(fnt *Font, opt opentype.FaceOptions) *FontFace {
	// should be set from font.fontface
	if opt.Size == 0 || opt.DPI == 0 {
		panic("!")
	}

	face, err := opentype.NewFace(fnt.Font, &opt)
	if err != nil { // currently, no error is being returned
		panic(err)
	}

	ff := NewFontFace2(face, opt.Size)
	ff.Font = fnt
	return ff
}

// NewFontFace2 wraps any font.Face (stub faces in tests, truetype
// faces) with the special-runes and caching layers.
func NewFontFace2(face font.Face, size float64) *FontFace {
	face = NewFaceRunes(face)
	face = NewFaceCacheL(face) // safe for concurrent calls

	ff := &FontFace{Face: face, Size: size}
	m := face.Metrics()
	ff.Metrics = &m

	ff.lineHeight = max(
		ff.Metrics.Ascent+ff.Metrics.Descent,
		ff.Metrics.Height)
	ff.baselineY = min(
		ff.Metrics.Ascent,
		ff.lineHeight-ff.Metrics.Descent)

	return ff
}

func (ff *FontFace) LineHeight() fixed.Int26_6 {
	return ff.lineHeight
}
func (ff *FontFace) LineHeightInt() int {
	return ff.LineHeight().Ceil()
}

func (ff *FontFace) BaseLine() fixed.Point26_6 {
	return fixed.Point26_6{X: 0, Y: ff.baselineY}
}

//----------

// MeasureString is the metrics-provider contract: deterministic for a
// given face and string.
func (ff *FontFace) MeasureString(s string) fixed.Int26_6 {
	return font.MeasureString(ff.Face, s)
}

// Measure returns the rendered dimensions of s.
func (ff *FontFace) Measure(s string) (fixed.Int26_6, fixed.Int26_6) {
	return ff.MeasureString(s), ff.lineHeight
}
