package toolkit

// Orientation selects the axis a Box lays its children out on.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Box is a container that positions its visible children on a line.
// Layout order is insertion order when children are appended with
// AddAtop(nil, ...): first added sits leftmost (topmost for vertical).
type Box struct {
	Container

	orientation Orientation
	margin      int
}

// NewBox creates an empty box with the given orientation and margin
// between children.
func NewBox(orientation Orientation, margin int) *Box {
	b := &Box{orientation: orientation, margin: margin}
	b.InitContainer(b)
	return b
}

// InitBox wires an embedded box to the outermost type.
func (b *Box) InitBox(self Element, orientation Orientation, margin int) {
	b.orientation = orientation
	b.margin = margin
	b.InitContainer(self)
}

// Append adds child at the end of the layout (bottom of the z-order).
func (b *Box) Append(child Element) {
	b.AddAtop(nil, child)
}

func (b *Box) layoutChildren() {
	pos := 0
	for e := b.children.Front(); e != nil; e = e.Next() {
		child := e.Value.(Element)
		if !child.Visible() {
			continue
		}
		dim := child.Dimensions()
		if b.orientation == Vertical {
			child.SetPosition(0, pos)
			pos += dim.Dy() + b.margin
		} else {
			child.SetPosition(pos, 0)
			pos += dim.Dx() + b.margin
		}
	}
}
