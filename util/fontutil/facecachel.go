package fontutil

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Glyph/advance/kern cache, safe for concurrent callers (render pass
// and input handlers measure on separate goroutines).
type FaceCacheL struct {
	font.Face
	mu  sync.RWMutex
	gc  map[rune]*glyphCache
	gac map[rune]*glyphAdvanceCache
	gbc map[rune]*glyphBoundsCache
	kc  map[string]fixed.Int26_6 // kern cache
}

func NewFaceCacheL(face font.Face) *FaceCacheL {
	fc := &FaceCacheL{Face: face}
	fc.gc = make(map[rune]*glyphCache)
	fc.gac = make(map[rune]*glyphAdvanceCache)
	fc.gbc = make(map[rune]*glyphBoundsCache)
	fc.kc = make(map[string]fixed.Int26_6)
	return fc
}

func (fc *FaceCacheL) Glyph(dot fixed.Point26_6, ru rune) (
	dr image.Rectangle,
	mask image.Image,
	maskp image.Point,
	advance fixed.Int26_6,
	ok bool,
) {
	fc.mu.RLock()
	gc, ok := fc.gc[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gc = newGlyphCache(fc.Face, ru)
		fc.gc[ru] = gc
		fc.mu.Unlock()
	}
	p := image.Point{X: dot.X.Floor(), Y: dot.Y.Floor()}
	dr2 := gc.dr.Add(p)
	return dr2, gc.mask, gc.maskp, gc.advance, gc.ok
}

func (fc *FaceCacheL) GlyphAdvance(ru rune) (advance fixed.Int26_6, ok bool) {
	fc.mu.RLock()
	gac, ok := fc.gac[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gac = &glyphAdvanceCache{}
		gac.advance, gac.ok = fc.Face.GlyphAdvance(ru)
		fc.gac[ru] = gac
		fc.mu.Unlock()
	}
	return gac.advance, gac.ok
}

func (fc *FaceCacheL) GlyphBounds(ru rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	fc.mu.RLock()
	gbc, ok := fc.gbc[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gbc = &glyphBoundsCache{}
		gbc.bounds, gbc.advance, gbc.ok = fc.Face.GlyphBounds(ru)
		fc.gbc[ru] = gbc
		fc.mu.Unlock()
	}
	return gbc.bounds, gbc.advance, gbc.ok
}

func (fc *FaceCacheL) Kern(r0, r1 rune) fixed.Int26_6 {
	i := kernIndex(r0, r1)
	fc.mu.RLock()
	k, ok := fc.kc[i]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		k = fc.Face.Kern(r0, r1)
		fc.kc[i] = k
		fc.mu.Unlock()
	}
	return k
}

//----------

type glyphCache struct {
	dr      image.Rectangle
	mask    image.Image
	maskp   image.Point
	advance fixed.Int26_6
	ok      bool
}

func newGlyphCache(face font.Face, ru rune) *glyphCache {
	var zeroDot fixed.Point26_6 // always use zero
	dr, mask, maskp, adv, ok := face.Glyph(zeroDot, ru)

	// the rasterizer reuses mask buffers; keep a stable copy
	if ok {
		mask = copyMask(mask)
	}

	return &glyphCache{dr, mask, maskp, adv, ok}
}

type glyphAdvanceCache struct {
	advance fixed.Int26_6
	ok      bool
}

type glyphBoundsCache struct {
	bounds  fixed.Rectangle26_6
	advance fixed.Int26_6
	ok      bool
}

//----------

func kernIndex(r0, r1 rune) string {
	return string([]rune{r0, ',', r1})
}

func copyMask(mask image.Image) image.Image {
	alpha := *(mask.(*image.Alpha)) // copy structure
	pix := make([]uint8, len(alpha.Pix))
	copy(pix, alpha.Pix)
	alpha.Pix = pix
	return &alpha
}
