package toolkit

// Pane pairs a principal element with a popup layer stacked above it.
// Panels and window contents use it to keep client popups above the
// element they belong to.
type Pane struct {
	Container

	element Element
	popups  *Container
}

// NewPane creates a pane around element.
func NewPane(element Element) *Pane {
	p := &Pane{element: element}
	p.InitContainer(p)
	p.popups = NewContainer()
	p.AddAtop(nil, element)
	p.Add(p.popups)
	return p
}

// Element returns the principal element.
func (p *Pane) Element() Element { return p.element }

// AddPopup stacks popup above the pane's element.
func (p *Pane) AddPopup(popup Element) {
	p.popups.Add(popup)
}

// RemovePopup detaches popup again.
func (p *Pane) RemovePopup(popup Element) {
	p.popups.Remove(popup)
}
