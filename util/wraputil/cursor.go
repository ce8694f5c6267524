package wraputil

import (
	"image"

	"github.com/VergilTheHuragok/Hysteresis/util/mathutil"
	"golang.org/x/image/math/fixed"
)

// ScreenPos is the derived screen location of a cursor index: the
// owning line, fragment, sub-index within the fragment's full text,
// and a pixel cell for caret rendering.
type ScreenPos struct {
	Line    int
	FragIdx int // arena index, -1 when there is no content
	Sub     int // rune index into the fragment's full text
	Rect    image.Rectangle
}

// Cursor maps between an absolute character index over the logical
// concatenation of all fragment text and a screen position, and
// applies edits at that index. Out-of-range indexes clamp silently.
type Cursor struct {
	tw    *TextWrap
	index int
	prefX int // remembered x for vertical moves, -1 when unset
}

func NewCursor(tw *TextWrap) *Cursor {
	return &Cursor{tw: tw, prefX: -1}
}

func (c *Cursor) Index() int { return c.index }

func (c *Cursor) SetIndex(i int) {
	c.index = mathutil.Limit(i, 0, c.tw.TotalLen())
	c.prefX = -1
}

//----------

// IndexToScreen derives the screen position of the cursor index,
// wrapping further content when the index lies beyond the lines
// committed so far. Bounded: it terminates once all content is
// wrapped.
func (c *Cursor) IndexToScreen() ScreenPos {
	c.index = mathutil.Limit(c.index, 0, c.tw.TotalLen())
	for {
		pos, ok := c.tw.locateIndex(c.index)
		if ok {
			return pos
		}
		before := c.tw.pending.Len()
		if before == 0 {
			return c.tw.endPos()
		}
		c.tw.WrapMore(true)
		if c.tw.pending.Len() >= before {
			// degenerate viewport; settle for the end position
			return c.tw.endPos()
		}
	}
}

// ScreenToIndex is the inverse mapping: the absolute index under the
// given point, accounting for the scroll offset. Points above the
// first line clamp to its start; points below the last line clamp to
// the end of wrapped content.
func (tw *TextWrap) ScreenToIndex(p image.Point) int {
	if len(tw.lines) == 0 {
		return 0
	}
	li := len(tw.lines) - 1
	y := tw.lineY(0)
	for i := 0; i < len(tw.lines); i++ {
		h := tw.lines[i].height.Ceil()
		if p.Y < y+h {
			li = i
			break
		}
		y += h
	}
	if p.Y < tw.lineY(li) {
		// above the line found (can only be line 0 or the clamped last)
		return tw.countAtLine(li)
	}
	return tw.indexInLine(li, p.X)
}

//----------

// locateIndex walks the committed lines accumulating consumed rune
// counts per fragment segment, skipping synthetic hyphens, until it
// reaches target.
func (tw *TextWrap) locateIndex(target int) (ScreenPos, bool) {
	count := 0
	fragConsumed := map[int]int{}
	y := tw.lineY(0)
	for li, ln := range tw.lines {
		for _, idx := range ln.frags {
			f := tw.arena[idx]
			logical := ln.logicalLen(idx, f)
			if target < count+logical {
				local := target - count
				return ScreenPos{
					Line:    li,
					FragIdx: idx,
					Sub:     fragConsumed[idx] + local,
					Rect:    tw.cellRect(li, y, target),
				}, true
			}
			count += logical
			fragConsumed[idx] += logical
		}
		y += ln.height.Ceil()
	}
	if target == count && tw.pending.Len() == 0 {
		return tw.endPos(), true
	}
	return ScreenPos{}, false
}

// cellRect computes the caret cell for an absolute index known to live
// on line li whose top pixel is lineY.
func (tw *TextWrap) cellRect(li, lineY, target int) image.Rectangle {
	ln := tw.lines[li]
	count := tw.countAtLine(li)
	x := fixed.I(tw.bounds.Min.X)
	h := ln.height.Ceil()
	if h == 0 {
		h = tw.lineStep()
	}
	for _, idx := range ln.frags {
		f := tw.arena[idx]
		logical := ln.logicalLen(idx, f)
		if target < count+logical {
			local := target - count
			disp := []rune(ln.displayText(idx, f))
			wPref, _ := f.measureRunes(disp[:local])
			wCell, _ := f.measureRunes(disp[:local+1])
			x0 := (x + wPref).Floor()
			x1 := (x + wCell).Ceil()
			if x1 <= x0 {
				x1 = x0 + 1
			}
			return image.Rect(x0, lineY, x1, lineY+h)
		}
		count += logical
		w, _ := f.measureRunes([]rune(ln.displayText(idx, f)))
		x += w
	}
	// caret sits after the line's last character
	x0 := x.Floor()
	return image.Rect(x0, lineY, x0+1, lineY+h)
}

// endPos is the caret cell after the last wrapped character.
func (tw *TextWrap) endPos() ScreenPos {
	n := len(tw.lines)
	if n == 0 {
		h := tw.lineStep()
		min := tw.bounds.Min
		return ScreenPos{
			Line:    0,
			FragIdx: -1,
			Sub:     0,
			Rect:    image.Rect(min.X, min.Y, min.X+1, min.Y+h),
		}
	}
	li := n - 1
	ln := tw.lines[li]
	idx := -1
	sub := 0
	if len(ln.frags) > 0 {
		idx = ln.frags[len(ln.frags)-1]
		sub = tw.arena[idx].fullLen()
	}
	y := tw.lineY(li)
	h := ln.height.Ceil()
	if h == 0 {
		h = tw.lineStep()
	}
	x0 := (fixed.I(tw.bounds.Min.X) + ln.width).Floor()
	return ScreenPos{
		Line:    li,
		FragIdx: idx,
		Sub:     sub,
		Rect:    image.Rect(x0, y, x0+1, y+h),
	}
}

//----------

// lineY is the pixel y of line i; lines above the scroll offset get
// negative offsets relative to the viewport top.
func (tw *TextWrap) lineY(i int) int {
	y := tw.bounds.Min.Y
	if i >= tw.scroll {
		for j := tw.scroll; j < i && j < len(tw.lines); j++ {
			y += tw.lines[j].height.Ceil()
		}
		return y
	}
	for j := i; j < tw.scroll && j < len(tw.lines); j++ {
		y -= tw.lines[j].height.Ceil()
	}
	return y
}

// countAtLine is the absolute index of the first character on line i.
func (tw *TextWrap) countAtLine(i int) int {
	count := 0
	for li := 0; li < i && li < len(tw.lines); li++ {
		ln := tw.lines[li]
		for _, idx := range ln.frags {
			count += ln.logicalLen(idx, tw.arena[idx])
		}
	}
	return count
}

// indexInLine finds the index under pixel x within line li.
func (tw *TextWrap) indexInLine(li, px int) int {
	ln := tw.lines[li]
	count := tw.countAtLine(li)
	x := fixed.I(tw.bounds.Min.X)
	for _, idx := range ln.frags {
		f := tw.arena[idx]
		logical := ln.logicalLen(idx, f)
		disp := []rune(ln.displayText(idx, f))
		for i := 1; i <= len(disp); i++ {
			w, _ := f.measureRunes(disp[:i])
			if px < (x + w).Floor() {
				// a synthetic hyphen cell maps to the index after the
				// prefix it closes
				return count + mathutil.Min(i-1, logical)
			}
		}
		w, _ := f.measureRunes(disp)
		x += w
		count += logical
	}
	return count
}

//----------

// InsertRune splices a rune into the owning fragment at the cursor and
// re-wraps from the affected line.
func (c *Cursor) InsertRune(ru rune) {
	pos := c.IndexToScreen()
	idx := pos.FragIdx
	if idx < 0 {
		if len(c.tw.arena) == 0 {
			return
		}
		idx = len(c.tw.arena) - 1
		pos.Sub = c.tw.arena[idx].fullLen()
	}
	c.tw.arena[idx].spliceInsert(pos.Sub, ru)
	c.tw.MarkWrap(pos.Line)
	c.index = mathutil.Limit(c.index+1, 0, c.tw.TotalLen())
	c.prefX = -1
}

// Backspace removes the rune before the cursor.
func (c *Cursor) Backspace() {
	if c.index == 0 {
		return
	}
	c.index--
	pos := c.IndexToScreen()
	if pos.FragIdx < 0 {
		return
	}
	c.tw.arena[pos.FragIdx].spliceDelete(pos.Sub)
	c.tw.MarkWrap(pos.Line)
	c.prefX = -1
}

// DeleteForward removes the rune at the cursor.
func (c *Cursor) DeleteForward() {
	if c.index >= c.tw.TotalLen() {
		return
	}
	pos := c.IndexToScreen()
	if pos.FragIdx < 0 {
		return
	}
	c.tw.arena[pos.FragIdx].spliceDelete(pos.Sub)
	c.tw.MarkWrap(pos.Line)
	c.prefX = -1
}

// MoveLines moves the cursor dn lines, preserving the horizontal pixel
// offset where possible, scrolling the view by one line when the
// cursor would leave the visible window.
func (c *Cursor) MoveLines(dn int) {
	pos := c.IndexToScreen()
	target := pos.Line + dn
	if dn > 0 {
		for target > len(c.tw.lines)-1 && c.tw.pending.Len() > 0 && !c.tw.degenerate {
			if c.tw.wrap(true, 1) == 0 {
				break
			}
		}
	}
	target = mathutil.Limit(target, 0, mathutil.Max(0, len(c.tw.lines)-1))
	if target == pos.Line {
		return
	}
	x := c.prefX
	if x < 0 {
		x = pos.Rect.Min.X
	}
	c.index = c.tw.indexInLine(target, x)
	c.prefX = x

	if target < c.tw.scroll {
		c.tw.ScrollLines(target - c.tw.scroll)
	} else if !c.tw.lineVisible(target) {
		c.tw.ScrollLines(1)
	}
}

// lineVisible reports whether line i starts within the viewport.
func (tw *TextWrap) lineVisible(i int) bool {
	if i < tw.scroll || i >= len(tw.lines) {
		return false
	}
	y := tw.lineY(i)
	return y < tw.bounds.Max.Y
}
