package ui

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/uiutil/event"
	"github.com/VergilTheHuragok/Hysteresis/util/wraputil"
)

func testFace() *fontutil.FontFace {
	return fontutil.NewRegistry().MonoFace(12)
}

func TestTextBoxPinRects(t *testing.T) {
	size := image.Pt(500, 300)
	cases := []struct {
		pins [4]float64
		want image.Rectangle
	}{
		{[4]float64{0, 0, 1, 1}, image.Rect(0, 0, 500, 300)},
		{[4]float64{0, 0, .5, 1}, image.Rect(0, 0, 250, 300)},
		{[4]float64{.5, .15, 1, 1}, image.Rect(250, 45, 500, 300)},
		{[4]float64{.25, .25, .75, .75}, image.Rect(125, 75, 375, 225)},
	}
	for _, c := range cases {
		b := NewTextBox(c.pins)
		require.Equal(t, c.want, b.Rect(size), "pins %v", c.pins)
	}
}

func TestTextBoxDirty(t *testing.T) {
	b := NewTextBox([4]float64{0, 0, 1, 1})
	require.True(t, b.Dirty(), "fresh box must draw once")
	require.False(t, b.Dirty(), "dirty bit must clear on read")

	b.AddText(wraputil.NewFragment("hi", testFace()))
	require.True(t, b.Dirty())
	require.False(t, b.Dirty())

	b.Resize(image.Pt(100, 100))
	require.True(t, b.Dirty())
}

func TestBoxesWheelRouting(t *testing.T) {
	bs := NewBoxes()
	b := NewTextBox([4]float64{0, 0, 1, 1})
	bs.Add(b)
	bs.Resize(image.Pt(400, 400))

	face := testFace()
	for i := 0; i < 50; i++ {
		f := wraputil.NewFragment("line", face)
		f.ForceNewline = true
		b.AddText(f)
	}
	now := time.Now()
	handled := bs.ApplyEvent(&event.MouseDown{
		Point:  image.Pt(50, 50),
		Button: event.ButtonWheelDown,
	}, now)
	require.True(t, handled)
	require.Equal(t, wheelScrollLines, b.Wrap.Scroll())

	handled = bs.ApplyEvent(&event.MouseDown{
		Point:  image.Pt(50, 50),
		Button: event.ButtonWheelUp,
	}, now)
	require.True(t, handled)
	require.Equal(t, 0, b.Wrap.Scroll())

	// outside every box nothing is consumed
	handled = bs.ApplyEvent(&event.MouseDown{
		Point:  image.Pt(900, 900),
		Button: event.ButtonWheelDown,
	}, now)
	require.False(t, handled)
}

func TestInputBoxTyping(t *testing.T) {
	bs := NewBoxes()
	ib := NewInputBox([4]float64{0, 0, 1, 1}, testFace())
	bs.Add(ib)
	bs.Resize(image.Pt(400, 400))
	require.Equal(t, Box(ib), bs.Focus(), "input boxes take default focus")

	now := time.Now()
	for _, ru := range "hi there" {
		bs.ApplyEvent(&event.KeyDown{Rune: ru}, now)
		bs.ApplyEvent(&event.KeyUp{Rune: ru}, now)
	}
	require.Equal(t, "hi there", ib.Wrap.Fragment(0).FullText())
	require.Equal(t, 8, ib.Cursor.Index())

	bs.ApplyEvent(&event.KeyDown{KeySym: event.KSymBackspace}, now)
	bs.ApplyEvent(&event.KeyUp{KeySym: event.KSymBackspace}, now)
	require.Equal(t, "hi ther", ib.Wrap.Fragment(0).FullText())

	bs.ApplyEvent(&event.KeyDown{KeySym: event.KSymHome}, now)
	require.Equal(t, 0, ib.Cursor.Index())
	bs.ApplyEvent(&event.KeyDown{KeySym: event.KSymDelete}, now)
	require.Equal(t, "i ther", ib.Wrap.Fragment(0).FullText())
	bs.ApplyEvent(&event.KeyDown{KeySym: event.KSymEnd}, now)
	require.Equal(t, 6, ib.Cursor.Index())
}

func TestInputBoxKeyRepeat(t *testing.T) {
	ib := NewInputBox([4]float64{0, 0, 1, 1}, testFace())
	ib.Resize(image.Pt(400, 400))
	now := time.Now()
	ib.OnKeyDown(&event.KeyDown{Rune: 'a'}, now)
	require.Equal(t, "a", ib.Wrap.Fragment(0).FullText())

	// before the repeat delay nothing fires
	ib.Tick(now.Add(200 * time.Millisecond))
	require.Equal(t, "a", ib.Wrap.Fragment(0).FullText())

	// past the delay one repeat per interval
	ib.Tick(now.Add(560 * time.Millisecond))
	require.Equal(t, "aaa", ib.Wrap.Fragment(0).FullText())

	// release cancels synchronously
	ib.OnKeyUp(&event.KeyUp{Rune: 'a'}, now.Add(570*time.Millisecond))
	ib.Tick(now.Add(2 * time.Second))
	require.Equal(t, "aaa", ib.Wrap.Fragment(0).FullText())
}

func TestWindowResizeRouting(t *testing.T) {
	bs := NewBoxes()
	b := NewTextBox([4]float64{0, 0, .5, .5})
	bs.Add(b)
	handled := bs.ApplyEvent(&event.WindowResize{Size: image.Pt(200, 100)}, time.Now())
	require.True(t, handled)
	require.True(t, b.Contains(image.Pt(50, 25)))
	require.False(t, b.Contains(image.Pt(150, 75)))
}

func TestImageSinkDraws(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 40))
	sink := NewImageSink(img)

	sink.DrawRect(image.Rect(10, 10, 20, 20), color.White, 0)
	r, _, _, _ := img.RGBAAt(15, 15).RGBA()
	require.NotZero(t, r, "filled rect must set pixels")
	r, _, _, _ = img.RGBAAt(25, 15).RGBA()
	require.Zero(t, r, "fill must stay inside the rect")

	sink.DrawText(testFace(), "Hg", nil, nil, image.Pt(30, 5))
	found := false
	for x := 30; x < 60 && !found; x++ {
		for y := 5; y < 30 && !found; y++ {
			if _, _, _, a := img.RGBAAt(x, y).RGBA(); a > 0 {
				found = true
			}
		}
	}
	require.True(t, found, "glyphs must mark pixels")
}

func TestRenderDirtyOnlyDrawsChanged(t *testing.T) {
	bs := NewBoxes()
	b := NewTextBox([4]float64{0, 0, 1, 1})
	bs.Add(b)
	bs.Resize(image.Pt(100, 100))
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sink := NewImageSink(img)

	require.True(t, bs.RenderDirty(sink))
	require.False(t, bs.RenderDirty(sink), "clean boxes must not redraw")
	b.AddText(wraputil.NewFragment("x", testFace()))
	require.True(t, bs.RenderDirty(sink))
}
