package wraputil

import (
	"image"
	"strings"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// stubFace is a fixed-advance font.Face so layout tests get exact
// pixel arithmetic.
type stubFace struct {
	adv    fixed.Int26_6
	height fixed.Int26_6
}

func (sf *stubFace) Close() error { return nil }

func (sf *stubFace) Glyph(dot fixed.Point26_6, ru rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	dr := image.Rect(dot.X.Floor(), dot.Y.Floor()-sf.height.Floor(), dot.X.Floor()+sf.adv.Floor(), dot.Y.Floor())
	mask := image.NewAlpha(image.Rect(0, 0, sf.adv.Floor(), sf.height.Floor()))
	return dr, mask, image.Point{}, sf.adv, true
}

func (sf *stubFace) GlyphBounds(ru rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	b := fixed.R(0, -sf.height.Floor(), sf.adv.Floor(), 0)
	return b, sf.adv, true
}

func (sf *stubFace) GlyphAdvance(ru rune) (fixed.Int26_6, bool) {
	return sf.adv, true
}

func (sf *stubFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (sf *stubFace) Metrics() font.Metrics {
	return font.Metrics{Ascent: sf.height, Descent: 0, Height: sf.height}
}

// testFace wraps a stub face the same way production faces are
// wrapped. Every rune advances advPx and every line is heightPx tall.
func testFace(advPx, heightPx int) *fontutil.FontFace {
	sf := &stubFace{adv: fixed.I(advPx), height: fixed.I(heightPx)}
	return fontutil.NewFontFace2(sf, float64(heightPx))
}

//----------

func newWrap(widthPx, heightPx int) *TextWrap {
	tw := NewTextWrap()
	tw.SetBounds(image.Rect(0, 0, widthPx, heightPx))
	return tw
}

// lineTexts returns the displayed text of each committed line.
func lineTexts(tw *TextWrap) []string {
	out := make([]string, 0, len(tw.lines))
	for _, ln := range tw.lines {
		var b strings.Builder
		for _, seg := range ln.Segments(tw) {
			b.WriteString(seg.Text)
		}
		out = append(out, b.String())
	}
	return out
}

// logicalText reconstructs the committed content with synthetic
// hyphens stripped.
func logicalText(tw *TextWrap) string {
	var b strings.Builder
	for _, ln := range tw.lines {
		for _, seg := range ln.Segments(tw) {
			t := seg.Text
			if seg.Hyphen {
				t = t[:len(t)-1]
			}
			b.WriteString(t)
		}
	}
	return b.String()
}

func fullText(tw *TextWrap) string {
	var b strings.Builder
	for _, f := range tw.arena {
		b.WriteString(f.FullText())
	}
	return b.String()
}
