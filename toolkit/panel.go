package toolkit

import (
	"image"
)

// Anchor is the edge bitmask a panel pins itself to.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// PanelPositioner carries a panel's placement wishes, mirroring the
// layer-shell surface state.
type PanelPositioner struct {
	Anchor Anchor

	MarginTop    int
	MarginBottom int
	MarginLeft   int
	MarginRight  int

	// Width and Height of 0 mean "span the full extent along that
	// axis", valid when both opposing edges are anchored.
	Width  int
	Height int

	// ExclusiveZone > 0 reserves that many pixels along the anchored
	// edge, shrinking the region later panels are placed in.
	ExclusiveZone int
}

// Panel is a positioned element within a layer: a container for the
// panel's content plus a popup layer above it.
type Panel struct {
	Container

	popups     *Container
	positioner PanelPositioner

	// output pins the panel to one output; nil means the primary.
	output Output

	width, height int
}

// NewPanel creates a panel with the given positioner.
func NewPanel(positioner PanelPositioner) *Panel {
	p := &Panel{positioner: positioner}
	p.InitPanel(p, positioner)
	return p
}

// InitPanel wires an embedded panel to the outermost type.
func (p *Panel) InitPanel(self Element, positioner PanelPositioner) {
	p.positioner = positioner
	p.InitContainer(self)
	p.popups = NewContainer()
	p.Add(p.popups)
}

// Positioner returns the panel's current placement wishes.
func (p *Panel) Positioner() PanelPositioner { return p.positioner }

// SetPositioner updates the placement wishes; the owning layer picks
// them up on its next layout pass.
func (p *Panel) SetPositioner(positioner PanelPositioner) {
	p.positioner = positioner
}

// SetOutput pins the panel to an output; nil selects the primary.
func (p *Panel) SetOutput(output Output) { p.output = output }

// Output returns the pinned output, nil for the primary.
func (p *Panel) Output() Output { return p.output }

// AddPopup stacks popup above the panel content.
func (p *Panel) AddPopup(popup Element) { p.popups.Add(popup) }

// RemovePopup detaches popup again.
func (p *Panel) RemovePopup(popup Element) { p.popups.Remove(popup) }

// ConfirmDimensions lets the panel adjust the size the layer computed
// for it. The default accepts the placement as-is; auto-fitting shells
// override this and return their preferred box.
func (p *Panel) ConfirmDimensions(usable, placed image.Rectangle) image.Rectangle {
	return placed
}

// applyDimensions records the final placement, chosen by the layer.
func (p *Panel) applyDimensions(r image.Rectangle) {
	p.SetPosition(r.Min.X, r.Min.Y)
	p.width = r.Dx()
	p.height = r.Dy()
}

func (p *Panel) Dimensions() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// dimensionConfirmer is the virtual hook for ConfirmDimensions.
type dimensionConfirmer interface {
	ConfirmDimensions(usable, placed image.Rectangle) image.Rectangle
}
