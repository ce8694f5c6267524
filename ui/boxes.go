package ui

import (
	"image"
	"time"

	"github.com/VergilTheHuragok/Hysteresis/util/wraputil"
)

// Box is anything Boxes can lay out, tick and draw.
type Box interface {
	Resize(size image.Point)
	Contains(p image.Point) bool
	Dirty() bool
	Tick(now time.Time)
	Render(sink wraputil.DrawSink)
}

// Boxes tracks the visible boxes and which one holds keyboard focus.
// It replaces any notion of a global box list; callers own the
// instance.
type Boxes struct {
	boxes []Box
	focus Box
	size  image.Point
}

func NewBoxes() *Boxes {
	return &Boxes{}
}

func (bs *Boxes) Add(b Box) {
	bs.boxes = append(bs.boxes, b)
	if bs.size != (image.Point{}) {
		b.Resize(bs.size)
	}
	if bs.focus == nil {
		if _, ok := b.(*InputBox); ok {
			bs.focus = b
		}
	}
}

func (bs *Boxes) Remove(b Box) {
	for i, b2 := range bs.boxes {
		if b2 == b {
			bs.boxes = append(bs.boxes[:i], bs.boxes[i+1:]...)
			break
		}
	}
	if bs.focus == b {
		bs.focus = nil
	}
}

func (bs *Boxes) Boxes() []Box { return bs.boxes }
func (bs *Boxes) Focus() Box   { return bs.focus }

func (bs *Boxes) SetFocus(b Box) { bs.focus = b }

//----------

func (bs *Boxes) Resize(size image.Point) {
	bs.size = size
	for _, b := range bs.boxes {
		b.Resize(size)
	}
}

// BoxAt returns the topmost box containing p, or nil.
func (bs *Boxes) BoxAt(p image.Point) Box {
	for i := len(bs.boxes) - 1; i >= 0; i-- {
		if bs.boxes[i].Contains(p) {
			return bs.boxes[i]
		}
	}
	return nil
}

//----------

func (bs *Boxes) Tick(now time.Time) {
	for _, b := range bs.boxes {
		b.Tick(now)
	}
}

// RenderDirty draws the boxes that changed since the last pass and
// reports whether anything was drawn.
func (bs *Boxes) RenderDirty(sink wraputil.DrawSink) bool {
	drew := false
	for _, b := range bs.boxes {
		if b.Dirty() {
			b.Render(sink)
			drew = true
		}
	}
	return drew
}
