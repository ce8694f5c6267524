package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

func DrawMask(
	dst draw.Image,
	r image.Rectangle,
	src image.Image, srcp image.Point,
	mask image.Image, maskp image.Point,
	op draw.Op,
) {
	draw.DrawMask(dst, r, src, srcp, mask, maskp, op)
}

func DrawUniformMask(
	dst draw.Image,
	r image.Rectangle,
	c color.Color,
	mask image.Image, maskp image.Point,
	op draw.Op,
) {
	if c == nil {
		return
	}
	src := image.NewUniform(c)
	DrawMask(dst, r, src, image.Point{}, mask, maskp, op)
}

func DrawUniform(dst draw.Image, r image.Rectangle, c color.Color, op draw.Op) {
	DrawUniformMask(dst, r, c, nil, image.Point{}, op)
}

//----------

func FillRectangle(img draw.Image, r image.Rectangle, c color.Color) {
	DrawUniform(img, r, c, draw.Src)
}

func BorderRectangle(img draw.Image, r image.Rectangle, c color.Color, size int) {
	b := r.Bounds()
	u := []image.Rectangle{
		{Min: b.Min, Max: image.Point{X: b.Max.X, Y: b.Min.Y + size}},
		{Min: image.Point{X: b.Min.X, Y: b.Max.Y - size}, Max: b.Max},
		{Min: image.Point{X: b.Min.X, Y: b.Min.Y + size},
			Max: image.Point{X: b.Min.X + size, Y: b.Max.Y - size}},
		{Min: image.Point{X: b.Max.X - size, Y: b.Min.Y + size},
			Max: image.Point{X: b.Max.X, Y: b.Max.Y - size}},
	}
	for _, r2 := range u {
		r2 = r2.Intersect(b)
		FillRectangle(img, r2, c)
	}
}
