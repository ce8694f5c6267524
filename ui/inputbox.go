package ui

import (
	"image"
	"image/color"
	"time"
	"unicode"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/uiutil/event"
	"github.com/VergilTheHuragok/Hysteresis/util/wraputil"
)

const (
	blinkInterval     = 500 * time.Millisecond
	keyRepeatDelay    = 500 * time.Millisecond
	keyRepeatInterval = 50 * time.Millisecond
)

var caretColor = color.Color(color.White)

type keyRepeat struct {
	ev   *event.KeyDown
	next time.Time
}

// InputBox is a TextBox that accepts keyboard editing. Held keys
// repeat after a delay; releasing the key cancels the repeat before
// the next tick can fire it.
type InputBox struct {
	*TextBox
	Cursor *wraputil.Cursor

	blinkOn   bool
	lastBlink time.Time
	keyTimes  map[event.KeySym]keyRepeat
}

func NewInputBox(pins [4]float64, face *fontutil.FontFace) *InputBox {
	ib := &InputBox{
		TextBox:   NewTextBox(pins),
		blinkOn:   true,
		lastBlink: time.Now(),
		keyTimes:  map[event.KeySym]keyRepeat{},
	}
	ib.Cursor = wraputil.NewCursor(ib.Wrap)
	// seed an editable fragment so the cursor has a splice target
	ib.Wrap.Add(wraputil.NewFragment("", face))
	return ib
}

//----------

func (ib *InputBox) OnKeyDown(ev *event.KeyDown, now time.Time) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.applyKey(ev)
	ib.keyTimes[ev.KeySym] = keyRepeat{ev: ev, next: now.Add(keyRepeatDelay)}
	ib.blinkOn = true
	ib.lastBlink = now
}

func (ib *InputBox) OnKeyUp(ev *event.KeyUp, now time.Time) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	delete(ib.keyTimes, ev.KeySym)
}

func (ib *InputBox) applyKey(ev *event.KeyDown) {
	switch ev.KeySym {
	case event.KSymLeft:
		ib.Cursor.SetIndex(ib.Cursor.Index() - 1)
	case event.KSymRight:
		ib.Cursor.SetIndex(ib.Cursor.Index() + 1)
	case event.KSymUp:
		ib.Cursor.MoveLines(-1)
	case event.KSymDown:
		ib.Cursor.MoveLines(1)
	case event.KSymHome:
		ib.Cursor.SetIndex(0)
	case event.KSymEnd:
		ib.Cursor.SetIndex(ib.Wrap.TotalLen())
	case event.KSymBackspace:
		ib.Cursor.Backspace()
	case event.KSymDelete:
		ib.Cursor.DeleteForward()
	case event.KSymReturn:
		ib.Cursor.InsertRune('\n')
	default:
		if ev.Rune != 0 && (unicode.IsPrint(ev.Rune) || ev.Rune == '\t') {
			ib.Cursor.InsertRune(ev.Rune)
		} else {
			return
		}
	}
	ib.dirty = true
}

//----------

// Tick advances key repeat, coasting and the caret blink.
func (ib *InputBox) Tick(now time.Time) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.TextBox.tick(now)
	for sym, kr := range ib.keyTimes {
		for !kr.next.After(now) {
			ib.applyKey(kr.ev)
			kr.next = kr.next.Add(keyRepeatInterval)
		}
		ib.keyTimes[sym] = kr
	}
	if now.Sub(ib.lastBlink) >= blinkInterval {
		ib.blinkOn = !ib.blinkOn
		ib.lastBlink = now
		ib.dirty = true
	}
}

//----------

func (ib *InputBox) PlaceCursor(p image.Point) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.Cursor.SetIndex(ib.Wrap.ScreenToIndex(p))
	ib.blinkOn = true
	ib.dirty = true
}

func (ib *InputBox) Render(sink wraputil.DrawSink) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.TextBox.render(sink)
	if ib.blinkOn {
		pos := ib.Cursor.IndexToScreen()
		if ib.Wrap.LineCount() == 0 || lineOnScreen(ib.Wrap, pos.Line) {
			r := pos.Rect
			r.Max.X = r.Min.X + 1
			sink.DrawRect(r, caretColor, 0)
		}
	}
}

func lineOnScreen(tw *wraputil.TextWrap, li int) bool {
	if li < tw.Scroll() || li >= tw.LineCount() {
		return false
	}
	return true
}
