package wraputil

import (
	"image"
	"testing"
	"time"
)

func tenLines(t *testing.T) *TextWrap {
	t.Helper()
	face := testFace(10, 20)
	tw := newWrap(200, 40)
	for i := 0; i < 10; i++ {
		f := NewFragment("line", face)
		f.ForceNewline = true
		tw.Add(f)
	}
	tw.WrapMore(true)
	tw.ScrollLines(-100)
	if tw.Scroll() != 0 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	return tw
}

func TestScrollClamp(t *testing.T) {
	tw := tenLines(t)
	tw.ScrollLines(3)
	if tw.Scroll() != 3 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	tw.ScrollLines(100)
	if tw.Scroll() != 9 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	tw.ScrollLines(-100)
	if tw.Scroll() != 0 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
}

// scrolling down extends wrapping so pending content becomes reachable
func TestScrollExtendsWrap(t *testing.T) {
	face := testFace(10, 20)
	tw := newWrap(100, 20)
	for i := 0; i < 50; i++ {
		tw.Add(NewFragment("a", face))
	}
	tw.WrapMore(false)
	if tw.LineCount() != 1 {
		t.Fatalf("lines %d", tw.LineCount())
	}
	tw.ScrollLines(3)
	if tw.Scroll() != 3 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	if tw.LineCount() < 4 {
		t.Fatalf("lines %d", tw.LineCount())
	}
}

func TestDragWholeLineSteps(t *testing.T) {
	tw := tenLines(t)
	tw.ScrollLines(5)
	now := time.Now()
	tw.DragStart(image.Pt(50, 100), now)

	// one line height up: content follows, view moves down one line
	tw.DragMove(image.Pt(50, 80), now.Add(10*time.Millisecond))
	if tw.Scroll() != 6 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	// nine px more: under a line step, no move
	tw.DragMove(image.Pt(50, 71), now.Add(20*time.Millisecond))
	if tw.Scroll() != 6 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	// crossing the step scrolls again
	tw.DragMove(image.Pt(50, 51), now.Add(30*time.Millisecond))
	if tw.Scroll() != 7 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	// dragging down moves the view up
	tw.DragMove(image.Pt(50, 71), now.Add(40*time.Millisecond))
	if tw.Scroll() != 6 {
		t.Fatalf("scroll %d", tw.Scroll())
	}
	tw.DragEnd(image.Pt(50, 71), now.Add(50*time.Millisecond))
}

func TestCoastDecays(t *testing.T) {
	tw := tenLines(t)
	now := time.Now()
	tw.DragStart(image.Pt(50, 200), now)
	// four fast line steps up
	for i := 1; i <= 4; i++ {
		tw.DragMove(image.Pt(50, 200-20*i), now.Add(time.Duration(i)*10*time.Millisecond))
	}
	tw.DragEnd(image.Pt(50, 120), now.Add(40*time.Millisecond))
	if !tw.Coasting() {
		t.Fatal("not coasting after fast drag")
	}
	start := tw.Scroll()

	tick := now.Add(40 * time.Millisecond)
	for i := 0; i < 1000 && tw.Coasting(); i++ {
		tick = tick.Add(10 * time.Millisecond)
		tw.Coast(tick)
	}
	if tw.Coasting() {
		t.Fatal("coast never stopped")
	}
	if tw.Scroll() < start {
		t.Fatalf("coast reversed: %d -> %d", start, tw.Scroll())
	}
	if tw.Scroll() > 9 {
		t.Fatalf("scroll %d out of range", tw.Scroll())
	}
}

func TestDragStartCancelsCoast(t *testing.T) {
	tw := tenLines(t)
	now := time.Now()
	tw.DragStart(image.Pt(50, 200), now)
	for i := 1; i <= 4; i++ {
		tw.DragMove(image.Pt(50, 200-20*i), now.Add(time.Duration(i)*10*time.Millisecond))
	}
	tw.DragEnd(image.Pt(50, 120), now.Add(40*time.Millisecond))
	if !tw.Coasting() {
		t.Fatal("not coasting")
	}
	tw.DragStart(image.Pt(50, 200), now.Add(50*time.Millisecond))
	tw.DragEnd(image.Pt(50, 200), now.Add(60*time.Millisecond))
	if tw.Coasting() {
		t.Fatal("stale speed survived a new gesture")
	}
	if tw.Coast(now.Add(100 * time.Millisecond)) {
		t.Fatal("coast after still gesture")
	}
}
