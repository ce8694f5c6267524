package wraputil

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/mathutil"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/image/math/fixed"
)

// DrawSink receives the draw commands produced by a render pass. Calls
// are fire and forget; no return value is consumed.
type DrawSink interface {
	DrawText(face *fontutil.FontFace, text string, fg, bg color.Color, p image.Point)
	DrawRect(r image.Rectangle, c color.Color, lineWidth int)
}

// TextWrap incrementally breaks a stream of styled fragments into
// lines bounded by the viewport width, and keeps a scroll offset over
// the committed lines. All mutation must happen under the owning
// box's single mutual-exclusion scope; TextWrap itself does not lock.
type TextWrap struct {
	arena   []*Fragment
	pending fragQueue
	lines   []*Line
	carry   map[int]string // arena index -> leftover substring
	scroll  int            // index of first visible line
	bounds  image.Rectangle

	drag dragState

	// set when the viewport cannot fit a single character; wrapping
	// is suspended until the bounds or content change (lossy by
	// policy, not an error)
	degenerate bool
}

func NewTextWrap() *TextWrap {
	return &TextWrap{carry: map[int]string{}}
}

//----------

func (tw *TextWrap) Bounds() image.Rectangle { return tw.bounds }

// SetBounds sets the viewport rectangle. A width change invalidates
// every line break; a height change only bounds how far wrapping goes.
func (tw *TextWrap) SetBounds(r image.Rectangle) {
	widthChanged := r.Dx() != tw.bounds.Dx()
	tw.bounds = r
	tw.degenerate = false
	if widthChanged {
		tw.MarkWrap(0)
	}
}

func (tw *TextWrap) Lines() []*Line    { return tw.lines }
func (tw *TextWrap) LineCount() int    { return len(tw.lines) }
func (tw *TextWrap) PendingCount() int { return tw.pending.Len() }
func (tw *TextWrap) Scroll() int       { return tw.scroll }

func (tw *TextWrap) Fragment(idx int) *Fragment {
	return tw.arena[idx]
}

func (tw *TextWrap) FragmentByLabel(label string) *Fragment {
	for _, f := range tw.arena {
		if f.Label == label {
			return f
		}
	}
	return nil
}

// TotalLen is the rune length of the logical concatenation of all
// fragment text.
func (tw *TextWrap) TotalLen() int {
	n := 0
	for _, f := range tw.arena {
		n += f.fullLen()
	}
	return n
}

//----------

// Add appends fragments to the pending queue, assigning arena indices.
func (tw *TextWrap) Add(frags ...*Fragment) {
	for _, f := range frags {
		if f.arenaIdx >= 0 {
			panic(fmt.Sprintf("wraputil: fragment added twice (arena index %d)", f.arenaIdx))
		}
		f.arenaIdx = len(tw.arena)
		tw.arena = append(tw.arena, f)
		tw.pending.PushBack(f.arenaIdx)
	}
}

// Replace rewrites the text of the first fragment carrying label and
// invalidates the wrap from the first line holding it.
func (tw *TextWrap) Replace(label, text string) bool {
	f := tw.FragmentByLabel(label)
	if f == nil {
		return false
	}
	idx := f.arenaIdx
	f.setFullText(text)
	for li, ln := range tw.lines {
		if ln.contains(idx) {
			tw.MarkWrap(li)
			return true
		}
	}
	// not laid out yet; reset any in-flight carry
	delete(tw.carry, idx)
	f.purge()
	tw.degenerate = false
	return true
}

// Clear drops all committed lines, pending fragments and carry-over,
// and resets the scroll. Fragments return to their purged state and
// may be re-added.
func (tw *TextWrap) Clear() {
	for _, f := range tw.arena {
		f.purge()
		f.arenaIdx = -1
	}
	tw.arena = nil
	tw.pending.clear()
	tw.lines = nil
	tw.carry = map[int]string{}
	tw.scroll = 0
	tw.degenerate = false
}

//----------

// WrapMore wraps pending fragments into lines. Unless forceAll, it
// stops once the committed lines fill the viewport height from the
// scroll offset down. Returns the number of lines newly committed.
func (tw *TextWrap) WrapMore(forceAll bool) int {
	return tw.wrap(forceAll, -1)
}

func (tw *TextWrap) wrap(forceAll bool, maxLines int) int {
	if tw.bounds.Dx() <= 0 || tw.degenerate {
		return 0
	}
	boxW := fixed.I(tw.bounds.Dx())
	boxH := fixed.I(tw.bounds.Dy())
	atBottom := tw.bottomVisible()
	visH := tw.visibleHeight()
	added := 0

	// resume the line left open by a prior pass
	var ln *Line
	reused := false
	if n := len(tw.lines); n > 0 && tw.lines[n-1].open && tw.pending.Len() > 0 {
		ln = tw.lines[n-1]
		tw.lines = tw.lines[:n-1]
		if tw.scroll <= n-1 {
			visH -= ln.height
		}
		reused = true
	}

	for {
		if ln == nil {
			if tw.pending.Len() == 0 {
				break
			}
			ln = newLine()
		}
		qlen := tw.pending.Len()
		ln.fitText(tw, boxW)
		progressed := ln.width > 0 || tw.pending.Len() < qlen

		if !forceAll && visH > 0 && visH+ln.height > boxH {
			tw.rollback(ln)
			ln = nil
			break
		}
		tw.lines = append(tw.lines, ln)
		visH += ln.height
		if reused {
			reused = false
		} else {
			added++
		}
		ln = nil

		if !progressed {
			// cannot place a single character; suspend (see §degenerate)
			tw.noteDegenerate()
			break
		}
		if maxLines > 0 && added >= maxLines {
			break
		}
	}

	if atBottom && added > 0 {
		tw.scrollToBottom()
	}
	return added
}

// rollback moves a line's fragments back onto the front of the pending
// queue, preserving partial segments as carry-over.
func (tw *TextWrap) rollback(ln *Line) {
	for i := len(ln.frags) - 1; i >= 0; i-- {
		idx := ln.frags[i]
		f := tw.arena[idx]
		placedText := f.FullText()
		partial := false
		if ov, ok := ln.overrides[idx]; ok {
			placedText = string(ov.text) // synthetic hyphen excluded
			partial = true
		}
		if front, ok := tw.pending.Front(); ok && front == idx {
			// the split remainder was already re-queued; fold the
			// placed prefix back in front of it
			tw.carry[idx] = placedText + tw.carry[idx]
			f.setSegment(tw.carry[idx])
			continue
		}
		if partial {
			tw.carry[idx] = placedText
			f.setSegment(placedText)
		} else {
			f.purge()
		}
		tw.pending.PushFront(idx)
	}
}

// MarkWrap invalidates the wrap from startLine on, with one line of
// lookback since a preceding line's break can depend on what follows
// it. Truncated content returns to the pending queue in original
// order; carry-over spanning the truncation boundary is rebuilt.
func (tw *TextWrap) MarkWrap(startLine int) {
	start := startLine - 1
	start = mathutil.Limit(start, 0, len(tw.lines))
	removed := tw.lines[start:]
	tw.lines = tw.lines[:start]
	tw.degenerate = false

	// order of first appearance across the removed region
	var order []int
	seen := map[int]bool{}
	for _, ln := range removed {
		for _, idx := range ln.frags {
			if !seen[idx] {
				seen[idx] = true
				order = append(order, idx)
			}
		}
	}

	for _, idx := range order {
		f := tw.arena[idx]
		delete(tw.carry, idx)
		consumed := tw.consumedRunes(idx, start)
		consumed = mathutil.Min(consumed, f.fullLen())
		if consumed > 0 {
			rem := string(f.fullText[consumed:])
			tw.carry[idx] = rem
			f.setSegment(rem)
		} else {
			f.purge()
		}
	}

	// removed content precedes whatever was still pending
	q := fragQueue{}
	for _, idx := range order {
		q.PushBack(idx)
	}
	for _, idx := range tw.pending.items() {
		if !seen[idx] {
			q.PushBack(idx)
		}
	}
	tw.pending = q

	tw.scroll = mathutil.Limit(tw.scroll, 0, mathutil.Max(0, len(tw.lines)-1))
}

// consumedRunes counts the fullText runes of idx consumed by the lines
// before uptoLine.
func (tw *TextWrap) consumedRunes(idx, uptoLine int) int {
	n := 0
	f := tw.arena[idx]
	for i := 0; i < uptoLine; i++ {
		if tw.lines[i].contains(idx) {
			n += tw.lines[i].logicalLen(idx, f)
		}
	}
	return n
}

//----------

// visibleHeight tallies committed line heights from the scroll offset,
// capped at the viewport height.
func (tw *TextWrap) visibleHeight() fixed.Int26_6 {
	boxH := fixed.I(tw.bounds.Dy())
	h := fixed.Int26_6(0)
	for i := tw.scroll; i < len(tw.lines); i++ {
		h += tw.lines[i].height
		if h > boxH {
			break
		}
	}
	return h
}

// bottomVisible reports whether the last committed line is currently
// in view.
func (tw *TextWrap) bottomVisible() bool {
	n := len(tw.lines)
	if n == 0 {
		return true
	}
	if tw.scroll >= n {
		return true
	}
	boxH := fixed.I(tw.bounds.Dy())
	h := fixed.Int26_6(0)
	for i := tw.scroll; i < n-1; i++ {
		h += tw.lines[i].height
		if h >= boxH {
			return false
		}
	}
	return true
}

// scrollToBottom advances the offset so the last line stays in view
// (chat-log behavior when content arrives while already at bottom).
func (tw *TextWrap) scrollToBottom() {
	n := len(tw.lines)
	if n == 0 {
		tw.scroll = 0
		return
	}
	boxH := fixed.I(tw.bounds.Dy())
	s := n
	h := fixed.Int26_6(0)
	for s > 0 && h+tw.lines[s-1].height <= boxH {
		h += tw.lines[s-1].height
		s--
	}
	if s >= n {
		s = n - 1
	}
	tw.scroll = s
}

//----------

func (tw *TextWrap) noteDegenerate() {
	if !tw.degenerate {
		log.Printf("wraputil: viewport narrower than one glyph; content partially dropped until resize")
		tw.degenerate = true
	}
}

// Dump writes the wrap state for debugging.
func (tw *TextWrap) Dump() {
	spew.Dump(tw.scroll, tw.bounds, tw.pending.items(), tw.carry)
}

//----------

// Render lazily wraps and then emits draw commands for the visible
// lines. Line positions are assigned here. Returns the number of lines
// newly committed by the implied wrap pass.
func (tw *TextWrap) Render(sink DrawSink) int {
	added := tw.WrapMore(false)
	y := tw.bounds.Min.Y
	for i := tw.scroll; i < len(tw.lines); i++ {
		if y >= tw.bounds.Max.Y {
			break
		}
		ln := tw.lines[i]
		ln.pos = image.Pt(tw.bounds.Min.X, y)
		x := fixed.I(ln.pos.X)
		for _, seg := range ln.Segments(tw) {
			sink.DrawText(seg.Frag.Face, seg.Text, seg.Frag.Fg, seg.Frag.Bg, image.Pt(x.Floor(), y))
			w, _ := seg.Frag.Face.Measure(seg.Text)
			x += w
		}
		y += ln.height.Ceil()
	}
	return added
}
