package toolkit

import (
	"image"

	"github.com/mstarongithub/stepwm/scene"
)

// BufferElement is a leaf element showing a pixel buffer.
type BufferElement struct {
	ElementBase

	img image.Image

	buffer scene.Buffer
}

// NewBufferElement creates a buffer element showing img. A nil image is
// allowed; the element is then empty until SetImage.
func NewBufferElement(img image.Image) *BufferElement {
	b := &BufferElement{img: img}
	b.InitElement(b)
	return b
}

func (b *BufferElement) AttachToScene(parent scene.Tree) error {
	buf, err := parent.NewBuffer(b.img)
	if err != nil {
		return err
	}
	b.buffer = buf
	b.AdoptSceneNode(buf.Node())
	return nil
}

func (b *BufferElement) DetachFromScene() {
	if b.buffer != nil {
		b.buffer.Destroy()
		b.buffer = nil
		b.node = nil
	}
}

func (b *BufferElement) Dimensions() image.Rectangle {
	if b.img == nil {
		return image.Rectangle{}
	}
	bounds := b.img.Bounds()
	return image.Rect(0, 0, bounds.Dx(), bounds.Dy())
}

// SetImage swaps the shown buffer. Re-layouts the parent when the size
// changed.
func (b *BufferElement) SetImage(img image.Image) {
	sizeChanged := b.Dimensions() != boundsOf(img)
	b.img = img
	if b.buffer != nil {
		b.buffer.SetImage(img)
	}
	if sizeChanged && b.parent != nil {
		b.parent.childChanged()
	}
}

// Image returns the currently shown buffer.
func (b *BufferElement) Image() image.Image { return b.img }

func boundsOf(img image.Image) image.Rectangle {
	if img == nil {
		return image.Rectangle{}
	}
	bounds := img.Bounds()
	return image.Rect(0, 0, bounds.Dx(), bounds.Dy())
}
