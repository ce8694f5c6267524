package ui

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/imageutil"
	"golang.org/x/image/math/fixed"
)

// ImageSink draws text and rectangles into an in-memory image. It is
// the offscreen render target; a display driver copies the image to
// the screen afterwards.
type ImageSink struct {
	Img  draw.Image
	Fg   color.Color // used when a fragment carries no color
	clip image.Rectangle
}

func NewImageSink(img draw.Image) *ImageSink {
	return &ImageSink{Img: img, Fg: color.White, clip: img.Bounds()}
}

// SetClip restricts subsequent draws to r.
func (s *ImageSink) SetClip(r image.Rectangle) {
	s.clip = r.Intersect(s.Img.Bounds())
}

//----------

func (s *ImageSink) DrawText(face *fontutil.FontFace, text string, fg, bg color.Color, p image.Point) {
	if fg == nil {
		fg = s.Fg
	}
	if bg != nil {
		w, h := face.Measure(text)
		r := image.Rect(p.X, p.Y, p.X+w.Ceil(), p.Y+h.Ceil())
		imageutil.FillRectangle(s.Img, r.Intersect(s.clip), bg)
	}
	pen := image.Pt(p.X, p.Y)
	adv := fixed.Int26_6(0)
	prev := rune(-1)
	for _, ru := range text {
		if prev >= 0 {
			adv += face.Face.Kern(prev, ru)
		}
		s.drawRune(face, ru, fg, image.Pt(pen.X+adv.Floor(), pen.Y))
		a, ok := face.Face.GlyphAdvance(ru)
		if !ok {
			prev = -1
			continue
		}
		adv += a
		prev = ru
	}
}

func (s *ImageSink) drawRune(face *fontutil.FontFace, ru rune, fg color.Color, pen image.Point) {
	if ru == 0 {
		return
	}
	gr, mask, maskp, _, ok := face.Face.Glyph(face.BaseLine(), ru)
	if !ok {
		return
	}
	gr = gr.Add(pen)
	if gr.Min.X < s.clip.Min.X {
		maskp.X += s.clip.Min.X - gr.Min.X
	}
	if gr.Min.Y < s.clip.Min.Y {
		maskp.Y += s.clip.Min.Y - gr.Min.Y
	}
	gr = gr.Intersect(s.clip)
	imageutil.DrawUniformMask(s.Img, gr, fg, mask, maskp, draw.Over)
}

//----------

func (s *ImageSink) DrawRect(r image.Rectangle, c color.Color, lineWidth int) {
	r = r.Intersect(s.clip)
	if lineWidth <= 0 {
		imageutil.FillRectangle(s.Img, r, c)
		return
	}
	imageutil.BorderRectangle(s.Img, r, c, lineWidth)
}
