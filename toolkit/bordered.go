package toolkit

import (
	"image"
	"image/color"
)

// Bordered frames a single inner element with four border rectangles.
type Bordered struct {
	Container

	inner Element
	width int
	shown bool

	top, bottom, left, right *Rectangle
}

// NewBordered wraps inner with a border of the given width and color.
func NewBordered(inner Element, width int, c color.RGBA) *Bordered {
	b := &Bordered{inner: inner, width: width, shown: true}
	b.InitContainer(b)
	b.top = NewRectangle(0, 0, c)
	b.bottom = NewRectangle(0, 0, c)
	b.left = NewRectangle(0, 0, c)
	b.right = NewRectangle(0, 0, c)
	b.Add(inner)
	b.AddAtop(nil, b.top)
	b.AddAtop(nil, b.bottom)
	b.AddAtop(nil, b.left)
	b.AddAtop(nil, b.right)
	b.layoutChildren()
	return b
}

// Inner returns the framed element.
func (b *Bordered) Inner() Element { return b.inner }

// SetBorderVisible shows or hides all four edges, for fullscreen and
// client-side-decorated windows.
func (b *Bordered) SetBorderVisible(visible bool) {
	if b.shown == visible {
		return
	}
	b.shown = visible
	b.top.SetVisible(visible)
	b.bottom.SetVisible(visible)
	b.left.SetVisible(visible)
	b.right.SetVisible(visible)
	b.UpdateLayout()
}

// SetBorderColor recolors all four edges.
func (b *Bordered) SetBorderColor(c color.RGBA) {
	b.top.SetColor(c)
	b.bottom.SetColor(c)
	b.left.SetColor(c)
	b.right.SetColor(c)
}

func (b *Bordered) layoutChildren() {
	if b.inner == nil {
		return
	}
	dim := b.inner.Dimensions()
	w := b.width
	if !b.shown {
		w = 0
	}
	b.inner.SetPosition(w, w)
	if !b.shown {
		return
	}

	b.top.SetPosition(0, 0)
	b.top.SetSize(dim.Dx()+2*w, w)
	b.bottom.SetPosition(0, w+dim.Dy())
	b.bottom.SetSize(dim.Dx()+2*w, w)
	b.left.SetPosition(0, w)
	b.left.SetSize(w, dim.Dy())
	b.right.SetPosition(w+dim.Dx(), w)
	b.right.SetSize(w, dim.Dy())
}

func (b *Bordered) Dimensions() image.Rectangle {
	if b.inner == nil || !b.inner.Visible() {
		return image.Rectangle{}
	}
	dim := b.inner.Dimensions()
	if !b.shown {
		return image.Rect(0, 0, dim.Dx(), dim.Dy())
	}
	return image.Rect(0, 0, dim.Dx()+2*b.width, dim.Dy()+2*b.width)
}
