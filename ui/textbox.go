package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/VergilTheHuragok/Hysteresis/util/wraputil"
)

const defaultBorderWidth = 1

var defaultBorderColor = color.Color(color.White)

// scroll wheel lines per tick
const wheelScrollLines = 3

// TextBox displays word-wrapped text inside a pinned rectangle. Pins
// are display-relative percentages for the box corners. All public
// entry points acquire the box mutex once; internal helpers assume it
// is held and never reacquire it.
type TextBox struct {
	mu sync.Mutex

	Wrap *wraputil.TextWrap

	pins        [4]float64
	borderWidth int
	borderColor color.Color
	rect        image.Rectangle
	dirty       bool
}

func NewTextBox(pins [4]float64) *TextBox {
	return &TextBox{
		Wrap:        wraputil.NewTextWrap(),
		pins:        pins,
		borderWidth: defaultBorderWidth,
		borderColor: defaultBorderColor,
		dirty:       true,
	}
}

//----------

func (b *TextBox) SetPins(pins [4]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pins = pins
	b.dirty = true
}

func (b *TextBox) SetBorder(width int, c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.borderWidth = width
	b.borderColor = c
	b.dirty = true
}

// Rect maps the pins to pixel coordinates for a display size.
func (b *TextBox) Rect(size image.Point) image.Rectangle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rectForSize(size)
}

func (b *TextBox) rectForSize(size image.Point) image.Rectangle {
	return image.Rect(
		int(b.pins[0]*float64(size.X)),
		int(b.pins[1]*float64(size.Y)),
		int(b.pins[2]*float64(size.X)),
		int(b.pins[3]*float64(size.Y)),
	)
}

// Resize rebinds the viewport to a new display size; a width change
// invalidates the line breaks.
func (b *TextBox) Resize(size image.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rect = b.rectForSize(size)
	b.Wrap.SetBounds(b.rect.Inset(b.borderWidth))
	b.dirty = true
}

//----------

func (b *TextBox) AddText(frags ...*wraputil.Fragment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Wrap.Add(frags...)
	b.dirty = true
}

// ReplaceLabel live-updates the text of a labeled fragment.
func (b *TextBox) ReplaceLabel(label, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok := b.Wrap.Replace(label, text)
	if ok {
		b.dirty = true
	}
	return ok
}

func (b *TextBox) ClearText() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Wrap.Clear()
	b.dirty = true
}

func (b *TextBox) ScrollLines(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Wrap.ScrollLines(n)
	b.dirty = true
}

//----------

func (b *TextBox) Contains(p image.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return p.In(b.rect)
}

// Dirty reports and clears the redraw bit; the render driver observes
// it rather than any global flag.
func (b *TextBox) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.dirty
	b.dirty = false
	return d
}

//----------

func (b *TextBox) OnPointerDown(p image.Point, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Wrap.DragStart(p, now)
}

func (b *TextBox) OnPointerMove(p image.Point, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	before := b.Wrap.Scroll()
	b.Wrap.DragMove(p, now)
	if b.Wrap.Scroll() != before {
		b.dirty = true
	}
}

func (b *TextBox) OnPointerUp(p image.Point, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Wrap.DragEnd(p, now)
}

// Tick advances coast scrolling; called once per render tick.
func (b *TextBox) Tick(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick(now)
}

func (b *TextBox) tick(now time.Time) {
	if b.Wrap.Coast(now) {
		b.dirty = true
	}
}

//----------

func (b *TextBox) Render(sink wraputil.DrawSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.render(sink)
}

func (b *TextBox) render(sink wraputil.DrawSink) {
	c, clipped := sink.(clipSink)
	if clipped {
		c.SetClip(b.rect)
	}
	if b.borderWidth > 0 {
		sink.DrawRect(b.rect, b.borderColor, b.borderWidth)
	}
	if clipped {
		c.SetClip(b.rect.Inset(b.borderWidth))
	}
	b.Wrap.Render(sink)
}

type clipSink interface {
	SetClip(r image.Rectangle)
}
