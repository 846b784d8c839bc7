package toolkit

import (
	"image"
	"image/color"

	"github.com/mstarongithub/stepwm/scene"
)

// Rectangle is a leaf element drawing a solid color.
type Rectangle struct {
	ElementBase

	width, height int
	color         color.RGBA

	rect scene.Rect
}

// NewRectangle creates a solid-color rectangle of the given size.
func NewRectangle(width, height int, c color.RGBA) *Rectangle {
	r := &Rectangle{width: width, height: height, color: c}
	r.InitElement(r)
	return r
}

func (r *Rectangle) AttachToScene(parent scene.Tree) error {
	rect, err := parent.NewRect(r.width, r.height, r.color)
	if err != nil {
		return err
	}
	r.rect = rect
	r.AdoptSceneNode(rect.Node())
	return nil
}

func (r *Rectangle) DetachFromScene() {
	if r.rect != nil {
		r.rect.Destroy()
		r.rect = nil
		r.node = nil
	}
}

func (r *Rectangle) Dimensions() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// SetSize resizes the rectangle and tells the parent to re-layout.
func (r *Rectangle) SetSize(width, height int) {
	if r.width == width && r.height == height {
		return
	}
	r.width, r.height = width, height
	if r.rect != nil {
		r.rect.SetSize(width, height)
	}
	if r.parent != nil {
		r.parent.childChanged()
	}
}

// SetColor recolors the rectangle.
func (r *Rectangle) SetColor(c color.RGBA) {
	r.color = c
	if r.rect != nil {
		r.rect.SetColor(c)
	}
}
