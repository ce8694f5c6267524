package ui

import (
	"image"
	"time"

	"github.com/VergilTheHuragok/Hysteresis/util/uiutil/event"
)

// ApplyEvent routes a window event to the boxes. Pointer events go to
// the box under the pointer; a press also moves keyboard focus there.
// Key events go to the focused input box. Returns true when the event
// was consumed.
func (bs *Boxes) ApplyEvent(ev any, now time.Time) bool {
	switch t := ev.(type) {
	case *event.WindowResize:
		bs.Resize(t.Size)
		return true
	case *event.MouseDown:
		return bs.onMouseDown(t, now)
	case *event.MouseMove:
		return bs.onMouseMove(t, now)
	case *event.MouseUp:
		return bs.onMouseUp(t, now)
	case *event.KeyDown:
		if ib, ok := bs.focus.(*InputBox); ok {
			ib.OnKeyDown(t, now)
			return true
		}
	case *event.KeyUp:
		if ib, ok := bs.focus.(*InputBox); ok {
			ib.OnKeyUp(t, now)
			return true
		}
	}
	return false
}

func (bs *Boxes) onMouseDown(ev *event.MouseDown, now time.Time) bool {
	b := bs.BoxAt(ev.Point)
	if b == nil {
		return false
	}
	switch ev.Button {
	case event.ButtonWheelUp:
		scrollBox(b, -wheelScrollLines)
		return true
	case event.ButtonWheelDown:
		scrollBox(b, wheelScrollLines)
		return true
	case event.ButtonLeft:
		bs.focus = b
		if ib, ok := b.(*InputBox); ok {
			ib.PlaceCursor(ev.Point)
		}
		pointerDown(b, ev.Point, now)
		return true
	}
	return false
}

func (bs *Boxes) onMouseMove(ev *event.MouseMove, now time.Time) bool {
	if !ev.Buttons.Has(event.ButtonLeft) {
		return false
	}
	if b, ok := bs.focus.(pointerBox); ok {
		b.OnPointerMove(ev.Point, now)
		return true
	}
	return false
}

func (bs *Boxes) onMouseUp(ev *event.MouseUp, now time.Time) bool {
	if ev.Button != event.ButtonLeft {
		return false
	}
	if b, ok := bs.focus.(pointerBox); ok {
		b.OnPointerUp(ev.Point, now)
		return true
	}
	return false
}

//----------

type pointerBox interface {
	OnPointerDown(p image.Point, now time.Time)
	OnPointerMove(p image.Point, now time.Time)
	OnPointerUp(p image.Point, now time.Time)
}

type scroller interface {
	ScrollLines(n int)
}

func scrollBox(b Box, n int) {
	if s, ok := b.(scroller); ok {
		s.ScrollLines(n)
	}
}

func pointerDown(b Box, p image.Point, now time.Time) {
	if pb, ok := b.(pointerBox); ok {
		pb.OnPointerDown(p, now)
	}
}
