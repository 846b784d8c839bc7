package toolkit

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageElement shows a decoded picture, for icons and dock tiles.
type ImageElement struct {
	BufferElement
}

// NewImage creates an image element from an already decoded picture.
func NewImage(img image.Image) *ImageElement {
	e := &ImageElement{}
	e.img = img
	e.InitElement(e)
	return e
}

// NewImageFromFile loads and decodes path into an image element.
func NewImageFromFile(path string) (*ImageElement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	return NewImage(img), nil
}
