package toolkit

import (
	"image"
)

// Tile is a fixed-size square container, the building block of docks
// and clips. Content added to the tile is clipped to its pointer area
// only logically; the tile reports its fixed size regardless of
// content.
type Tile struct {
	Container

	size       int
	background *ImageElement
}

// NewTile creates a tile with the given edge length and an optional
// background texture.
func NewTile(size int, background image.Image) *Tile {
	t := &Tile{size: size}
	t.InitContainer(t)
	if background != nil {
		t.background = NewImage(background)
		t.AddAtop(nil, t.background)
	}
	return t
}

// Size returns the tile's edge length.
func (t *Tile) Size() int { return t.size }

// Background returns the background picture element, nil when the tile
// is plain.
func (t *Tile) Background() *ImageElement { return t.background }

// SetBackground swaps the background texture.
func (t *Tile) SetBackground(img image.Image) {
	if t.background == nil {
		t.background = NewImage(img)
		t.AddAtop(nil, t.background)
		return
	}
	t.background.SetImage(img)
}

func (t *Tile) Dimensions() image.Rectangle {
	return image.Rect(0, 0, t.size, t.size)
}
