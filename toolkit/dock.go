package toolkit

// Dock is a strip of fixed-size tiles pinned to an output corner, one
// tile wide and growing along the edge as tiles are added.
type Dock struct {
	Panel

	tileSize int
	tiles    []*Tile
}

// NewDock creates an empty dock in the top right corner. size is both
// the tile edge length and the width of the reserved strip.
func NewDock(size int) *Dock {
	d := &Dock{tileSize: size}
	d.InitPanel(d, PanelPositioner{
		Anchor:        AnchorTop | AnchorRight,
		Width:         size,
		Height:        size,
		ExclusiveZone: size,
	})
	return d
}

// TileSize returns the edge length of the dock's tiles.
func (d *Dock) TileSize() int { return d.tileSize }

// Tiles returns the attached tiles, top to bottom.
func (d *Dock) Tiles() []*Tile { return d.tiles }

// AddTile appends tile at the bottom of the strip.
func (d *Dock) AddTile(tile *Tile) {
	d.tiles = append(d.tiles, tile)
	d.AddAtop(nil, tile)
	d.packTiles()
}

// RemoveTile detaches tile and closes the gap.
func (d *Dock) RemoveTile(tile *Tile) {
	for i, have := range d.tiles {
		if have == tile {
			d.tiles = append(d.tiles[:i], d.tiles[i+1:]...)
			break
		}
	}
	d.Remove(tile)
	d.packTiles()
}

// packTiles stacks the tiles top to bottom and grows the strip to fit.
func (d *Dock) packTiles() {
	for i, tile := range d.tiles {
		tile.SetPosition(0, i*d.tileSize)
	}
	pos := d.Positioner()
	pos.Height = d.tileSize * max(1, len(d.tiles))
	d.SetPositioner(pos)
	if d.parent != nil {
		if layer, ok := d.parent.self.(*Layer); ok {
			layer.Reflow()
		}
	}
}
