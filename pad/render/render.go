package render

import (
	"github.com/allape/openpad/pad"
	"github.com/allape/openpad/pad/button"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"image"
	"image/color"
	"sync"
)

const (
	DefaultSize = 200
	MinSize     = 60
	MaxSize     = 2048
	margin      = 8
)

var (
	font     *truetype.Font
	fontOnce sync.Once
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		font, fontErr = truetype.Parse(gobold.TTF)
	})
	return font, fontErr
}

func scale(c color.RGBA, factor float64) color.RGBA {
	ch := func(v uint8) uint8 {
		f := float64(v) * factor
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

func darker(c color.RGBA, factor float64) color.RGBA {
	return scale(c, 1/factor)
}

func lighter(c color.RGBA, factor float64) color.RGBA {
	return scale(c, factor)
}

// Center returns where the button is drawn on a canvas of the given size, and its radius.
func Center(id button.ID, size int) (x, y, radius float64) {
	cell := float64(size-2*margin) / 3
	c := id.Metadata().Cell
	x = margin + cell*(float64(c.Column)+0.5)
	y = margin + cell*(float64(c.Row)+0.5)
	return x, y, cell * 0.45
}

func drawBackground(dc *gg.Context, size int) {
	center := float64(size) / 2
	radius := center - 10
	if radius <= 0 {
		return
	}

	dc.SetRGBA255(0, 0, 0, 80)
	dc.DrawCircle(center+3, center+3, radius)
	dc.Fill()

	dc.SetRGB255(45, 45, 45)
	dc.DrawCircle(center, center, radius)
	dc.FillPreserve()
	dc.SetRGB255(80, 80, 80)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawButton(dc *gg.Context, face *truetype.Font, state pad.ButtonState, size int) {
	id := button.ID(state.ID)
	meta := id.Metadata()
	x, y, radius := Center(id, size)
	pressed := state.Down || state.Checked

	if pressed {
		x, y = x+1, y+1
	} else {
		dc.SetRGBA255(0, 0, 0, 60)
		dc.DrawCircle(x+2, y+2, radius+1)
		dc.Fill()
	}

	body := meta.Color
	border := darker(meta.Color, 1.5)
	if pressed {
		body = darker(meta.Color, 1.3)
		border = darker(meta.Color, 1.8)
	}

	dc.SetColor(body)
	dc.DrawCircle(x, y, radius)
	dc.FillPreserve()
	dc.SetColor(border)
	dc.SetLineWidth(2)
	dc.Stroke()

	if pressed {
		dc.SetColor(lighter(meta.Color, 1.7))
		dc.SetLineWidth(3)
		dc.DrawCircle(x, y, radius)
		dc.Stroke()
	}

	dc.SetFontFace(truetype.NewFace(face, &truetype.Options{Size: radius * 0.8}))
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(meta.Label, x, y, 0.5, 0.35)
}

// Draw paints the diamond cluster, a button looks pressed while it is held down or checked.
// size is clamped to [MinSize, MaxSize].
func Draw(snapshot pad.Snapshot, size int) (image.Image, error) {
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	face, err := loadFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(size, size)
	drawBackground(dc, size)
	for _, state := range snapshot.Buttons {
		if !button.ID(state.ID).Valid() {
			continue
		}
		drawButton(dc, face, state, size)
	}

	return dc.Image(), nil
}
