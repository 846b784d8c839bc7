package toolkit

import (
	"image"
	"image/color"
)

// FillType selects how a decoration surface is filled.
type FillType int

const (
	FillSolid FillType = iota
	FillGradientHorizontal
	FillGradientVertical
	FillGradientDiagonal
	FillGradientAntiDiagonal
)

// FillStyle describes a solid or gradient fill.
type FillStyle struct {
	Type FillType
	From color.RGBA
	To   color.RGBA
}

// Render produces the fill as a pixel buffer.
func (f FillStyle) Render(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, f.at(x, y, width, height))
		}
	}
	return img
}

func (f FillStyle) at(x, y, width, height int) color.RGBA {
	var t float64
	switch f.Type {
	case FillSolid:
		return f.From
	case FillGradientHorizontal:
		t = ratio(x, width)
	case FillGradientVertical:
		t = ratio(y, height)
	case FillGradientDiagonal:
		t = ratio(x+y, width+height)
	case FillGradientAntiDiagonal:
		t = ratio((width-1-x)+y, width+height)
	}
	return lerpRGBA(f.From, f.To, t)
}

func ratio(v, max int) float64 {
	if max <= 1 {
		return 0
	}
	return float64(v) / float64(max-1)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// DrawBezel paints the NeXT-style bezel onto img: light on the top and
// left edges, dark on the bottom and right. A sunken bezel swaps the
// two.
func DrawBezel(img *image.RGBA, width int, raised bool) {
	bounds := img.Bounds()
	light := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
	dark := color.RGBA{A: 0x60}
	if !raised {
		light, dark = dark, light
	}
	for i := 0; i < width; i++ {
		for x := bounds.Min.X + i; x < bounds.Max.X-i; x++ {
			blendInto(img, x, bounds.Min.Y+i, light)
			blendInto(img, x, bounds.Max.Y-1-i, dark)
		}
		for y := bounds.Min.Y + i + 1; y < bounds.Max.Y-1-i; y++ {
			blendInto(img, bounds.Min.X+i, y, light)
			blendInto(img, bounds.Max.X-1-i, y, dark)
		}
	}
}

func blendInto(img *image.RGBA, x, y int, c color.RGBA) {
	base := img.RGBAAt(x, y)
	t := float64(c.A) / 0xff
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(base.R)*(1-t) + float64(c.R)*t),
		G: uint8(float64(base.G)*(1-t) + float64(c.G)*t),
		B: uint8(float64(base.B)*(1-t) + float64(c.B)*t),
		A: base.A,
	})
}

// TextRenderer rasterizes decoration text. Rendering primitives live
// outside the toolkit; a nil renderer simply leaves decorations
// text-free.
type TextRenderer func(text string, width, height int, c color.RGBA) image.Image

// TitlebarStyle configures titlebar rendering.
type TitlebarStyle struct {
	Height       int
	BezelWidth   int
	FocusedFill  FillStyle
	BlurredFill  FillStyle
	FocusedText  color.RGBA
	BlurredText  color.RGBA
	TextRenderer TextRenderer
}

// ResizebarStyle configures the resize bar.
type ResizebarStyle struct {
	Height      int
	CornerWidth int
	BezelWidth  int
	Fill        FillStyle
}

// MenuStyle configures menus and their items.
type MenuStyle struct {
	ItemWidth       int
	ItemHeight      int
	BezelWidth      int
	Fill            FillStyle
	HighlightedFill FillStyle
	Text            color.RGBA
	HighlightedText color.RGBA
	DisabledText    color.RGBA
	TextRenderer    TextRenderer
}

// WindowStyle bundles everything a decorated window needs.
type WindowStyle struct {
	Titlebar    TitlebarStyle
	Resizebar   ResizebarStyle
	Menu        MenuStyle
	BorderWidth int
	BorderColor color.RGBA
}

// DefaultWindowStyle is the stock NeXT-ish look used when no
// configuration overrides it.
func DefaultWindowStyle() WindowStyle {
	return WindowStyle{
		Titlebar: TitlebarStyle{
			Height:     22,
			BezelWidth: 1,
			FocusedFill: FillStyle{
				Type: FillGradientHorizontal,
				From: color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff},
				To:   color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff},
			},
			BlurredFill: FillStyle{
				Type: FillSolid,
				From: color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
			},
			FocusedText: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			BlurredText: color.RGBA{A: 0xff},
		},
		Resizebar: ResizebarStyle{
			Height:      7,
			CornerWidth: 29,
			BezelWidth:  1,
			Fill: FillStyle{
				Type: FillSolid,
				From: color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
			},
		},
		Menu: MenuStyle{
			ItemWidth:  200,
			ItemHeight: 20,
			BezelWidth: 1,
			Fill: FillStyle{
				Type: FillGradientHorizontal,
				From: color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
				To:   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
			},
			HighlightedFill: FillStyle{
				Type: FillSolid,
				From: color.RGBA{R: 0x10, G: 0x10, B: 0x40, A: 0xff},
			},
			Text:            color.RGBA{A: 0xff},
			HighlightedText: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			DisabledText:    color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
		},
		BorderWidth: 1,
		BorderColor: color.RGBA{A: 0xff},
	}
}
