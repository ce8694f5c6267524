package event

import (
	"image"
	"unicode"
)

type WindowClose struct{}
type WindowResize struct {
	Size image.Point
}

//----------

type MouseDown struct {
	Point  image.Point
	Button MouseButton
}
type MouseUp struct {
	Point  image.Point
	Button MouseButton
}
type MouseMove struct {
	Point   image.Point
	Buttons MouseButtons
}

//----------

type KeyDown struct {
	KeySym KeySym
	Rune   rune
}

func (kd *KeyDown) LowerRune() rune {
	return unicode.ToLower(kd.Rune)
}

type KeyUp struct {
	KeySym KeySym
	Rune   rune
}
