package toolkit

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(size int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestWorkspaceReservesDockStrip(t *testing.T) {
	ws := NewWorkspace("main", newTestLayout(), 64)

	dock := ws.Dock()
	if dock == nil {
		t.Fatal("workspace with a reserved region has no dock")
	}
	if x, y := dock.Position(); x != 1024-64 || y != 0 {
		t.Errorf("dock position = (%d,%d), want (960,0)", x, y)
	}
	if dim := dock.Dimensions(); dim.Dx() != 64 || dim.Dy() != 64 {
		t.Errorf("empty dock dimensions = %v, want 64x64", dim)
	}

	if NewWorkspace("bare", newTestLayout(), 0).Dock() != nil {
		t.Error("workspace without a reserved region grew a dock")
	}
}

func TestDockTilesPackTopToBottom(t *testing.T) {
	ws := NewWorkspace("main", newTestLayout(), 64)
	dock := ws.Dock()

	first := NewTile(64, solidImage(64, color.RGBA{R: 0xff, A: 0xff}))
	second := NewTile(64, nil)
	third := NewTile(64, nil)
	dock.AddTile(first)
	dock.AddTile(second)
	dock.AddTile(third)

	for i, tile := range dock.Tiles() {
		if _, y := tile.Position(); y != i*64 {
			t.Errorf("tile %d at y=%d, want %d", i, y, i*64)
		}
	}
	if dim := dock.Dimensions(); dim.Dy() != 3*64 {
		t.Errorf("dock height = %d, want %d", dim.Dy(), 3*64)
	}
	// The strip grows downward from the corner, the anchor stays put.
	if x, y := dock.Position(); x != 960 || y != 0 {
		t.Errorf("dock position = (%d,%d), want (960,0)", x, y)
	}

	dock.RemoveTile(second)
	if _, y := third.Position(); y != 64 {
		t.Errorf("tile after removal at y=%d, want 64", y)
	}
	if dim := dock.Dimensions(); dim.Dy() != 2*64 {
		t.Errorf("dock height after removal = %d, want %d", dim.Dy(), 2*64)
	}
}

func TestTileKeepsFixedSize(t *testing.T) {
	tile := NewTile(64, solidImage(16, color.RGBA{G: 0xff, A: 0xff}))

	if dim := tile.Dimensions(); dim.Dx() != 64 || dim.Dy() != 64 {
		t.Errorf("tile dimensions = %v, want 64x64", dim)
	}

	tile.SetBackground(solidImage(128, color.RGBA{B: 0xff, A: 0xff}))
	if dim := tile.Dimensions(); dim.Dx() != 64 || dim.Dy() != 64 {
		t.Errorf("tile dimensions after background swap = %v, want 64x64", dim)
	}
	if bg := tile.Background(); bg == nil || bg.Image().Bounds().Dx() != 128 {
		t.Error("background swap did not land on the image element")
	}

	plain := NewTile(32, nil)
	if plain.Background() != nil {
		t.Error("plain tile has a background element")
	}
	plain.SetBackground(solidImage(32, color.RGBA{A: 0xff}))
	if plain.Background() == nil {
		t.Error("SetBackground on a plain tile did not create the element")
	}
}

func TestImageElementShowsPicture(t *testing.T) {
	img := solidImage(24, color.RGBA{R: 0x80, A: 0xff})
	e := NewImage(img)

	if dim := e.Dimensions(); dim.Dx() != 24 || dim.Dy() != 24 {
		t.Errorf("image dimensions = %v, want 24x24", dim)
	}

	attach(t, e)
	if e.SceneNode() == nil {
		t.Fatal("image element has no scene node after attach")
	}

	e.SetImage(solidImage(48, color.RGBA{B: 0xff, A: 0xff}))
	if dim := e.Dimensions(); dim.Dx() != 48 || dim.Dy() != 48 {
		t.Errorf("image dimensions after swap = %v, want 48x48", dim)
	}

	e.DetachFromScene()
	if e.SceneNode() != nil {
		t.Error("image element keeps a scene node after detach")
	}
}
