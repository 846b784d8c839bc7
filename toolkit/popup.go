package toolkit

// Popup positions a client popup content relative to its parent. The
// parent content keeps the back-reference; positioning is the popup's
// own responsibility, fed from the client's positioner.
type Popup struct {
	Container

	content *Content
}

// NewPopup wraps content into a popup at the given parent-relative
// position.
func NewPopup(content *Content, x, y int) *Popup {
	p := &Popup{content: content}
	p.InitContainer(p)
	p.Add(content)
	p.SetPosition(x, y)
	return p
}

// Content returns the wrapped content.
func (p *Popup) Content() *Content { return p.content }
