package toolkit

import (
	"image"
)

// Output describes one display in the layout. Implementations are
// compared by identity; the toolkit never copies them.
type Output interface {
	Name() string
	// Box is the output's rectangle in layout coordinates.
	Box() image.Rectangle
	Scale() float64
	// Transform is the wl_output transform enum, passed through.
	Transform() int
}

// OutputLayout is the arrangement of all outputs. The first output in
// layout order serves as the primary.
type OutputLayout interface {
	Outputs() []Output
	Changed() *Signal[struct{}]
}

// LayoutExtents is the bounding box of all outputs.
func LayoutExtents(layout OutputLayout) image.Rectangle {
	var extents image.Rectangle
	for _, out := range layout.Outputs() {
		extents = extents.Union(out.Box())
	}
	return extents
}

// PrimaryOutput is the first output in layout order, nil without
// outputs.
func PrimaryOutput(layout OutputLayout) Output {
	outs := layout.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[0]
}

type trackedOutput struct {
	output Output
	token  any
}

// OutputTracker observes an output layout and translates its change
// events into per-output create/update/destroy callbacks. Outputs are
// keyed by identity.
type OutputTracker struct {
	layout  OutputLayout
	create  func(Output) any
	update  func(Output, any)
	destroy func(Output, any)

	known    []trackedOutput
	listener *Listener[struct{}]
}

// NewOutputTracker starts tracking layout. The create callback returns
// a token handed back on update and destroy. Runs an initial pass over
// the current outputs.
func NewOutputTracker(layout OutputLayout, create func(Output) any, update func(Output, any), destroy func(Output, any)) *OutputTracker {
	t := &OutputTracker{
		layout:  layout,
		create:  create,
		update:  update,
		destroy: destroy,
	}
	t.listener = layout.Changed().Connect(func(struct{}) { t.Refresh() })
	t.Refresh()
	return t
}

// Refresh diffs the layout's current outputs against the known set.
func (t *OutputTracker) Refresh() {
	current := t.layout.Outputs()

	next := make([]trackedOutput, 0, len(current))
	for _, out := range current {
		if known, ok := t.lookup(out); ok {
			t.update(out, known.token)
			next = append(next, known)
			continue
		}
		next = append(next, trackedOutput{output: out, token: t.create(out)})
	}

	for _, known := range t.known {
		if !containsOutput(current, known.output) {
			t.destroy(known.output, known.token)
		}
	}
	t.known = next
}

// Destroy stops tracking and emits destroy for all remaining outputs.
func (t *OutputTracker) Destroy() {
	if t.listener != nil {
		t.listener.Disconnect()
		t.listener = nil
	}
	for _, known := range t.known {
		t.destroy(known.output, known.token)
	}
	t.known = nil
}

func (t *OutputTracker) lookup(out Output) (trackedOutput, bool) {
	for _, known := range t.known {
		if known.output == out {
			return known, true
		}
	}
	return trackedOutput{}, false
}

func containsOutput(outs []Output, out Output) bool {
	for _, o := range outs {
		if o == out {
			return true
		}
	}
	return false
}
