package wraputil

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// lineSeg is a per-line override for a fragment split across line
// boundaries: the substring shown on this line, and whether a
// synthetic hyphen trails it.
type lineSeg struct {
	text   []rune
	hyphen bool
}

// Line is an ordered run of fragment segments whose total width fits
// the box width.
type Line struct {
	frags     []int // arena indices, in order
	overrides map[int]lineSeg
	width     fixed.Int26_6
	height    fixed.Int26_6
	pos       image.Point

	// open while the line can still accept content: it ended because
	// pending ran out, not because of a split or a forced newline
	open bool
}

func newLine() *Line {
	return &Line{overrides: map[int]lineSeg{}}
}

func (ln *Line) Width() fixed.Int26_6  { return ln.width }
func (ln *Line) Height() fixed.Int26_6 { return ln.height }
func (ln *Line) Pos() image.Point      { return ln.pos }

func (ln *Line) contains(idx int) bool {
	for _, i := range ln.frags {
		if i == idx {
			return true
		}
	}
	return false
}

//----------

// Segment is a fragment's visible portion on one line.
type Segment struct {
	Frag   *Fragment
	Index  int    // arena index
	Text   string // displayed text, including any synthetic hyphen
	Hyphen bool   // Text ends with a synthetic hyphen
}

// Segments returns the line content in draw order.
func (ln *Line) Segments(tw *TextWrap) []Segment {
	out := make([]Segment, 0, len(ln.frags))
	for _, idx := range ln.frags {
		f := tw.arena[idx]
		out = append(out, Segment{
			Frag:   f,
			Index:  idx,
			Text:   ln.displayText(idx, f),
			Hyphen: ln.overrides[idx].hyphen,
		})
	}
	return out
}

func (ln *Line) displayText(idx int, f *Fragment) string {
	ov, ok := ln.overrides[idx]
	if !ok {
		return f.FullText()
	}
	if ov.hyphen {
		return string(ov.text) + string(forcedSplitMarker)
	}
	return string(ov.text)
}

// logicalLen is the number of fullText runes this line consumes for
// the fragment (synthetic hyphens excluded).
func (ln *Line) logicalLen(idx int, f *Fragment) int {
	if ov, ok := ln.overrides[idx]; ok {
		return len(ov.text)
	}
	return f.fullLen()
}

//----------

func (ln *Line) place(idx int, seg []rune, hyphen, override bool, w, h fixed.Int26_6) {
	ln.frags = append(ln.frags, idx)
	if override {
		t := make([]rune, len(seg))
		copy(t, seg)
		ln.overrides[idx] = lineSeg{text: t, hyphen: hyphen}
	}
	ln.width += w
	if h > ln.height {
		ln.height = h
	}
}

// fitText consumes fragments from the front of the pending queue until
// the line is full or a forced-newline fragment lands. It returns the
// number of fragments placed and the arena index carried over to the
// next line (-1 when none).
func (ln *Line) fitText(tw *TextWrap, boxWidth fixed.Int26_6) (int, int) {
	consumed := 0
	carryIdx := -1
	placed := make(map[int]bool, len(ln.frags))
	for _, idx := range ln.frags {
		placed[idx] = true
	}

	for tw.pending.Len() > 0 {
		idx := tw.pending.PopFront()
		if placed[idx] {
			// a height-overflow rollback re-queued this line's own
			// content; the line is already at the bottom
			tw.pending.PushFront(idx)
			ln.open = false
			return consumed, carryIdx
		}
		f := tw.arena[idx]
		if rem, ok := tw.carry[idx]; ok {
			// restore the partial segment from a prior attempt
			f.setSegment(rem)
			delete(tw.carry, idx)
		}

		w, h := f.measureRunes(f.segment)
		if ln.width+w <= boxWidth {
			override := string(f.segment) != f.FullText()
			ln.place(idx, f.segment, false, override, w, h)
			placed[idx] = true
			consumed++
			if f.ForceNewline {
				ln.open = false
				return consumed, carryIdx
			}
			continue
		}

		res := f.split(boxWidth-ln.width, boxWidth)
		switch {
		case res.deferred:
			tw.pending.PushFront(idx)
			ln.open = false
			return consumed, carryIdx
		case res.degener:
			ln.place(idx, nil, false, true, 0, f.lineHeight())
			placed[idx] = true
			consumed++
			tw.noteDegenerate()
		default:
			w2, h2 := f.measureRunes(f.segment) // prefix incl any hyphen
			ln.place(idx, res.prefix, res.hyphen, true, w2, h2)
			placed[idx] = true
			consumed++
		}
		if len(res.remainder) > 0 {
			tw.carry[idx] = string(res.remainder)
			tw.pending.PushFront(idx)
			carryIdx = idx
		}
		ln.open = false
		return consumed, carryIdx
	}

	ln.open = true
	return consumed, carryIdx
}
