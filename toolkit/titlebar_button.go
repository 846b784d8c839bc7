package toolkit

import (
	"image"
	"image/color"
)

// TitlebarButtonKind selects the glyph a titlebar button shows.
type TitlebarButtonKind int

const (
	TitlebarButtonIconify TitlebarButtonKind = iota
	TitlebarButtonClose
)

// TitlebarButton is one of the square buttons at the ends of a
// titlebar. Textures are re-cut from the titlebar's background fill so
// the gradient runs through uninterrupted.
type TitlebarButton struct {
	Button

	kind TitlebarButtonKind
}

// NewTitlebarButton creates an invisible button; Redraw gives it
// textures once the titlebar knows its width.
func NewTitlebarButton(kind TitlebarButtonKind) *TitlebarButton {
	b := &TitlebarButton{kind: kind}
	b.InitElement(b)
	b.PointerLeave.Connect(func(struct{}) {
		if b.down {
			b.down = false
			b.SetImage(b.released)
		}
	})
	return b
}

// Redraw rebuilds both textures from the titlebar background slice.
func (b *TitlebarButton) Redraw(background *image.RGBA, bezel int, glyphColor color.RGBA) {
	released := cloneRGBA(background)
	DrawBezel(released, bezel, true)
	drawButtonGlyph(released, b.kind, glyphColor)

	pressed := cloneRGBA(background)
	DrawBezel(pressed, bezel, false)
	drawButtonGlyph(pressed, b.kind, glyphColor)

	b.SetTextures(released, pressed)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// drawButtonGlyph paints the Window Maker style glyph: a small square
// outline for iconify, a diagonal cross for close.
func drawButtonGlyph(img *image.RGBA, kind TitlebarButtonKind, c color.RGBA) {
	bounds := img.Bounds()
	size := bounds.Dx()
	if bounds.Dy() < size {
		size = bounds.Dy()
	}
	inset := size / 3
	lo := inset
	hi := size - 1 - inset

	switch kind {
	case TitlebarButtonIconify:
		for x := lo; x <= hi; x++ {
			img.SetRGBA(bounds.Min.X+x, bounds.Min.Y+lo, c)
			img.SetRGBA(bounds.Min.X+x, bounds.Min.Y+hi, c)
		}
		for y := lo; y <= hi; y++ {
			img.SetRGBA(bounds.Min.X+lo, bounds.Min.Y+y, c)
			img.SetRGBA(bounds.Min.X+hi, bounds.Min.Y+y, c)
		}
	case TitlebarButtonClose:
		for i := 0; i <= hi-lo; i++ {
			img.SetRGBA(bounds.Min.X+lo+i, bounds.Min.Y+lo+i, c)
			img.SetRGBA(bounds.Min.X+hi-i, bounds.Min.Y+lo+i, c)
		}
	}
}
