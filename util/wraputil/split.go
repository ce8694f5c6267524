package wraputil

import (
	"golang.org/x/image/math/fixed"
)

// Split points, in precedence order: cut after whitespace/punctuation/
// closing brackets, cut before opening brackets and symbol prefixes.
// The order within each table is a total precedence order over split
// kinds, not a nearest-fit heuristic; ties within a kind resolve to
// the occurrence closest to the end.
var splitAfterRunes = []rune(" -.,)>]}")
var splitBeforeRunes = []rune("(<[{_$")

// shown after a forced character-level split
const forcedSplitMarker = '-'

type splitResult struct {
	prefix    []rune // accepted prefix, excluding any synthetic hyphen
	remainder []rune
	hyphen    bool // prefix is shown with a trailing synthetic hyphen
	deferred  bool // whole fragment moved to the next line
	degener   bool // nothing fits even alone: empty segment emitted
}

// split chooses where to cut the fragment's current segment so that
// the accepted prefix fits in remaining. remaining < boxWidth means
// the line already has content, which enables the whole-fragment
// deferral candidate.
func (f *Fragment) split(remaining, boxWidth fixed.Int26_6) splitResult {
	seg := f.segment
	for _, sc := range splitAfterRunes {
		if cut, ok := f.latestCut(seg, sc, true, remaining); ok {
			return f.acceptCut(seg, cut, false)
		}
	}
	for _, sc := range splitBeforeRunes {
		if cut, ok := f.latestCut(seg, sc, false, remaining); ok {
			return f.acceptCut(seg, cut, false)
		}
	}
	if remaining < boxWidth {
		return splitResult{remainder: seg, deferred: true}
	}
	return f.forcedSplit(seg, remaining)
}

// latestCut finds the last occurrence of sc whose cut yields a
// non-empty, non-total prefix that fits in remaining.
func (f *Fragment) latestCut(seg []rune, sc rune, after bool, remaining fixed.Int26_6) (int, bool) {
	for i := len(seg) - 1; i >= 0; i-- {
		if seg[i] != sc {
			continue
		}
		cut := i
		if after {
			cut = i + 1
		}
		if cut == 0 || cut >= len(seg) {
			continue
		}
		w, _ := f.measureRunes(seg[:cut])
		if w <= remaining {
			return cut, true
		}
	}
	return 0, false
}

func (f *Fragment) acceptCut(seg []rune, cut int, hyphen bool) splitResult {
	prefix := seg[:cut]
	remainder := seg[cut:]
	if hyphen {
		shown := make([]rune, 0, cut+1)
		shown = append(shown, prefix...)
		shown = append(shown, forcedSplitMarker)
		f.segment = shown
	} else {
		f.segment = prefix
	}
	return splitResult{prefix: prefix, remainder: remainder, hyphen: hyphen}
}

// forcedSplit is the character-level fallback for a token with no
// usable split character: longest prefix plus hyphen that fits.
func (f *Fragment) forcedSplit(seg []rune, remaining fixed.Int26_6) splitResult {
	best := 0
	cand := make([]rune, 0, len(seg)+1)
	for i := 1; i < len(seg); i++ {
		cand = append(cand[:0], seg[:i]...)
		cand = append(cand, forcedSplitMarker)
		w, _ := f.measureRunes(cand)
		if w > remaining {
			break
		}
		best = i
	}
	if best == 0 {
		// not even one character fits an empty line: emit an empty
		// segment and retry the whole fragment on the next line
		return splitResult{remainder: seg, degener: true}
	}
	return f.acceptCut(seg, best, true)
}
