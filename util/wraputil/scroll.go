package wraputil

import (
	"image"
	"math"
	"time"

	"github.com/VergilTheHuragok/Hysteresis/util/mathutil"
)

const (
	// exponential decay rate of the coast speed, 1/s
	coastDeceleration = 4.0
	// below this speed (lines/s) coasting stops
	coastDeadzone = 0.25
	// line step fallback when nothing is laid out yet, px
	fallbackLineStep = 16
)

// ScrollLines adjusts the scroll offset by n whole lines, wrapping
// further content as needed so scrolling down can reveal pending
// fragments. The offset stays within [0, max(0, lineCount-1)].
func (tw *TextWrap) ScrollLines(n int) {
	target := tw.scroll + n
	if n > 0 {
		for len(tw.lines)-1 < target && tw.pending.Len() > 0 && !tw.degenerate {
			if tw.wrap(true, 1) == 0 {
				break
			}
		}
	}
	tw.scroll = mathutil.Limit(target, 0, mathutil.Max(0, len(tw.lines)-1))
}

//----------

type dragState struct {
	active   bool
	last     image.Point
	accumY   int
	start    time.Time
	dragged  int     // whole-line scrolls applied during the gesture
	speed    float64 // lines/s after release
	carry    float64 // fractional lines-to-go while coasting
	lastTick time.Time
}

// lineStep is the pixel height of one line at the current offset.
func (tw *TextWrap) lineStep() int {
	if tw.scroll < len(tw.lines) {
		if h := tw.lines[tw.scroll].height.Ceil(); h > 0 {
			return h
		}
	}
	for _, f := range tw.arena {
		if h := f.lineHeight().Ceil(); h > 0 {
			return h
		}
	}
	return fallbackLineStep
}

// DragStart begins a drag gesture and cancels any coasting so a stale
// speed cannot resume.
func (tw *TextWrap) DragStart(p image.Point, now time.Time) {
	tw.drag = dragState{active: true, last: p, start: now}
}

// DragMove converts accumulated pointer deltas into whole-line scroll
// steps, resetting the accumulator baseline at each step.
func (tw *TextWrap) DragMove(p image.Point, now time.Time) {
	d := &tw.drag
	if !d.active {
		return
	}
	step := tw.lineStep()
	d.accumY += p.Y - d.last.Y
	d.last = p
	if d.accumY >= step {
		// content follows the pointer: dragging down shows earlier lines
		tw.ScrollLines(-1)
		d.dragged--
		d.accumY = 0
	} else if d.accumY <= -step {
		tw.ScrollLines(1)
		d.dragged++
		d.accumY = 0
	}
}

// DragEnd releases the gesture and derives the coast speed from the
// dragged distance over the elapsed time.
func (tw *TextWrap) DragEnd(p image.Point, now time.Time) {
	d := &tw.drag
	if !d.active {
		return
	}
	d.active = false
	d.accumY = 0
	d.carry = 0
	d.lastTick = now
	elapsed := now.Sub(d.start).Seconds()
	if elapsed > 0 {
		d.speed = float64(d.dragged) / elapsed
	} else {
		d.speed = 0
	}
}

// Coast advances the post-drag scroll once per tick while no pointer
// is down. Whole-line scrolls apply as the fractional accumulator
// crosses integer thresholds; the speed decays exponentially and stops
// below the deadzone. Reports whether the view scrolled.
func (tw *TextWrap) Coast(now time.Time) bool {
	d := &tw.drag
	if d.active || d.speed == 0 {
		return false
	}
	dt := now.Sub(d.lastTick).Seconds()
	if dt <= 0 {
		return false
	}
	d.lastTick = now
	d.carry += d.speed * dt
	scrolled := false
	if n := int(d.carry); n != 0 {
		tw.ScrollLines(n)
		d.carry -= float64(n)
		scrolled = true
	}
	d.speed *= math.Exp(-coastDeceleration * dt)
	if math.Abs(d.speed) < coastDeadzone {
		d.speed = 0
		d.carry = 0
	}
	return scrolled
}

// Coasting reports whether a coast is still in progress.
func (tw *TextWrap) Coasting() bool {
	return !tw.drag.active && tw.drag.speed != 0
}
