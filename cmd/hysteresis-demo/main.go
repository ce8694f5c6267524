// Headless demo of the text layout engine. Lays out a few pinned
// boxes, feeds them styled fragments and simulated input events, and
// writes the rendered frame to a png.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/VergilTheHuragok/Hysteresis/ui"
	"github.com/VergilTheHuragok/Hysteresis/util/fontutil"
	"github.com/VergilTheHuragok/Hysteresis/util/uiutil/event"
	"github.com/VergilTheHuragok/Hysteresis/util/wraputil"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func main() {
	log.SetFlags(log.Llongfile)
	out := flag.String("o", "demo.png", "output png")
	width := flag.Int("width", 800, "frame width")
	height := flag.Int("height", 600, "frame height")
	fontSize := flag.Float64("fontsize", 14, "font size in points")
	fontPath := flag.String("font", "", "optional ttf file for the ui font")
	flag.Parse()

	if err := run(*out, *width, *height, *fontSize, *fontPath); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(out string, width, height int, fontSize float64, fontPath string) error {
	reg := fontutil.NewRegistry()
	face, err := uiFace(reg, fontSize, fontPath)
	if err != nil {
		return err
	}
	mono := reg.MonoFace(fontSize)

	boxes := ui.NewBoxes()

	// left half: a log view that keeps following its bottom
	logBox := ui.NewTextBox([4]float64{0, 0, .5, 1})
	boxes.Add(logBox)

	// top right: live status line updated through a labeled fragment
	status := ui.NewTextBox([4]float64{.5, 0, 1, .15})
	boxes.Add(status)

	// bottom right: editable input
	input := ui.NewInputBox([4]float64{.5, .15, 1, 1}, face)
	boxes.Add(input)

	size := image.Pt(width, height)
	boxes.Resize(size)

	st := wraputil.NewFragment("status: ", face)
	st.Fg = color.RGBA{G: 0xff, A: 0xff}
	dyn := wraputil.NewFragment("starting", face)
	dyn.Label = "state"
	status.AddText(st, dyn)

	for i := 0; i < 200; i++ {
		f := wraputil.NewFragment(fmt.Sprintf("entry %d lorem ipsum dolor sit amet, consectetur (adipiscing)", i), mono)
		f.ForceNewline = true
		if i%10 == 0 {
			f.Fg = color.RGBA{R: 0xff, G: 0x80, A: 0xff}
		}
		logBox.AddText(f)
	}
	status.ReplaceLabel("state", "running")

	// simulate some typing into the input box
	now := time.Now()
	for _, ru := range "hello, wrapped world" {
		ev := &event.KeyDown{Rune: ru}
		boxes.ApplyEvent(ev, now)
		boxes.ApplyEvent(&event.KeyUp{Rune: ru}, now)
	}
	boxes.ApplyEvent(&event.KeyDown{KeySym: event.KSymReturn}, now)
	boxes.ApplyEvent(&event.KeyUp{KeySym: event.KSymReturn}, now)

	// wheel-scroll the log a little
	p := logBox.Rect(size).Min.Add(image.Pt(5, 5))
	boxes.ApplyEvent(&event.MouseDown{Point: p, Button: event.ButtonWheelUp}, now)

	boxes.Tick(now.Add(20 * time.Millisecond))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	sink := ui.NewImageSink(img)
	boxes.RenderDirty(sink)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// uiFace loads a user supplied truetype file, falling back to the
// bundled regular font.
func uiFace(reg *fontutil.Registry, size float64, path string) (*fontutil.FontFace, error) {
	if path == "" {
		return reg.Face(goregular.TTF, opentype.FaceOptions{Size: size})
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return reg.TruetypeFace(ttf, &truetype.Options{Size: size})
}
