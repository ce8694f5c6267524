package fontutil

import (
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func TestRegistryFontDedup(t *testing.T) {
	reg := NewRegistry()
	f1, err := reg.Font(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := reg.Font(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Fatal("same ttf parsed twice")
	}
}

func TestRegistryFaceDedup(t *testing.T) {
	reg := NewRegistry()
	opt := opentype.FaceOptions{Size: 14}
	ff1, err := reg.Face(goregular.TTF, opt)
	if err != nil {
		t.Fatal(err)
	}
	ff2, err := reg.Face(goregular.TTF, opt)
	if err != nil {
		t.Fatal(err)
	}
	if ff1 != ff2 {
		t.Fatal("same face options built twice")
	}
	ff3, err := reg.Face(goregular.TTF, opentype.FaceOptions{Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	if ff3 == ff1 {
		t.Fatal("distinct sizes shared a face")
	}
}

func TestMeasureDeterministic(t *testing.T) {
	reg := NewRegistry()
	ff := reg.MonoFace(12)
	w1 := ff.MeasureString("hello world")
	w2 := ff.MeasureString("hello world")
	if w1 != w2 {
		t.Fatalf("%v != %v", w1, w2)
	}
	if w1 <= 0 {
		t.Fatalf("width %v", w1)
	}
	if ff.LineHeight() <= 0 {
		t.Fatalf("line height %v", ff.LineHeight())
	}
}

func TestMeasureMonotonic(t *testing.T) {
	reg := NewRegistry()
	ff := reg.DefaultFace()
	s := "abcdefg"
	prev := ff.MeasureString("")
	for i := 1; i <= len(s); i++ {
		w := ff.MeasureString(s[:i])
		if w <= prev {
			t.Fatalf("prefix %q width %v not past %v", s[:i], w, prev)
		}
		prev = w
	}
}

func TestSpecialRunesMeasurable(t *testing.T) {
	reg := NewRegistry()
	ff := reg.MonoFace(12)
	for _, ru := range []rune{'\t', '\n', 0} {
		adv, ok := ff.Face.GlyphAdvance(ru)
		if !ok {
			t.Fatalf("rune %q not measurable", ru)
		}
		if adv < 0 {
			t.Fatalf("rune %q advance %v", ru, adv)
		}
	}
	// tab advances further than a space
	sp, _ := ff.Face.GlyphAdvance(' ')
	tab, _ := ff.Face.GlyphAdvance('\t')
	if tab <= sp {
		t.Fatalf("tab %v space %v", tab, sp)
	}
}

func TestTruetypeFace(t *testing.T) {
	reg := NewRegistry()
	ff, err := reg.TruetypeFace(goregular.TTF, &truetype.Options{Size: 14})
	if err != nil {
		t.Fatal(err)
	}
	if ff.MeasureString("x") <= 0 {
		t.Fatal("zero advance")
	}
	if _, err := reg.TruetypeFace([]byte("not a font"), &truetype.Options{}); err == nil {
		t.Fatal("bad ttf accepted")
	}
}
