package wraputil

import (
	"image/color"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/mathutil"
	"golang.org/x/image/math/fixed"
)

// Fragment is a styled run of text treated as an atomic unit for
// layout unless split. The surrounding application owns its lifetime;
// a TextWrap holds it by arena index while it is laid out.
type Fragment struct {
	Face         *fontutil.FontFace
	Fg           color.Color // nil means the sink's default
	Bg           color.Color // highlight, nil means none
	ForceNewline bool        // a line break must follow this fragment
	Label        string      // optional handle for later replacement

	fullText []rune
	segment  []rune // substring currently being shown on some line
	arenaIdx int
}

func NewFragment(text string, face *fontutil.FontFace) *Fragment {
	f := &Fragment{Face: face, arenaIdx: -1}
	f.fullText = []rune(text)
	f.segment = f.fullText
	return f
}

//----------

func (f *Fragment) FullText() string { return string(f.fullText) }
func (f *Fragment) Segment() string  { return string(f.segment) }

// Index returns the arena index, or -1 while the fragment is not held
// by a TextWrap.
func (f *Fragment) Index() int { return f.arenaIdx }

func (f *Fragment) fullLen() int { return len(f.fullText) }

// purge resets the displayed segment once the fragment is no longer
// laid out.
func (f *Fragment) purge() {
	f.segment = f.fullText
}

func (f *Fragment) setSegment(s string) {
	f.segment = []rune(s)
}

//----------

func (f *Fragment) measureRunes(s []rune) (fixed.Int26_6, fixed.Int26_6) {
	return f.Face.Measure(string(s))
}

func (f *Fragment) lineHeight() fixed.Int26_6 {
	return f.Face.LineHeight()
}

//----------

func (f *Fragment) spliceInsert(sub int, ru rune) {
	sub = mathutil.Limit(sub, 0, len(f.fullText))
	t := make([]rune, 0, len(f.fullText)+1)
	t = append(t, f.fullText[:sub]...)
	t = append(t, ru)
	t = append(t, f.fullText[sub:]...)
	f.fullText = t
}

func (f *Fragment) spliceDelete(sub int) {
	if sub < 0 || sub >= len(f.fullText) {
		return
	}
	t := make([]rune, 0, len(f.fullText)-1)
	t = append(t, f.fullText[:sub]...)
	t = append(t, f.fullText[sub+1:]...)
	f.fullText = t
}

func (f *Fragment) setFullText(s string) {
	f.fullText = []rune(s)
	f.segment = f.fullText
}
