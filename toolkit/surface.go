package toolkit

import (
	"image"

	"github.com/mstarongithub/stepwm/scene"
)

// Surface is a leaf element backed by a client surface. Its dimensions
// are the client's committed size, never a requested one. Input events
// reaching the surface are forwarded to the client.
type Surface struct {
	ElementBase

	// Mapped fires when the client surface becomes ready to show.
	Mapped Signal[*Surface]
	// Unmapped fires when the client surface goes away again.
	Unmapped Signal[*Surface]
	// Committed fires after every client commit.
	Committed Signal[*Surface]

	client    scene.ClientSurface
	activated bool
}

// NewSurface wraps a client surface into an element.
func NewSurface(client scene.ClientSurface) *Surface {
	s := &Surface{client: client}
	s.InitElement(s)
	client.OnMap(func() { s.Mapped.Emit(s) })
	client.OnUnmap(func() { s.Unmapped.Emit(s) })
	client.OnCommit(func() {
		if s.parent != nil {
			s.parent.childChanged()
		}
		s.Committed.Emit(s)
	})
	// The client tracks pointer focus itself. Tell it when the pointer
	// moves off the surface so that focus doesn't go stale.
	s.PointerLeave.Connect(func(struct{}) { s.client.PointerLeave() })
	return s
}

// Client returns the wrapped client surface.
func (s *Surface) Client() scene.ClientSurface { return s.client }

func (s *Surface) AttachToScene(parent scene.Tree) error {
	node, err := parent.NewSurfaceNode(s.client)
	if err != nil {
		return err
	}
	s.AdoptSceneNode(node)
	return nil
}

// Dimensions is the committed size of the client surface.
func (s *Surface) Dimensions() image.Rectangle {
	w, h := s.client.CommittedSize()
	return image.Rect(0, 0, w, h)
}

// PointerMotion forwards surface-local coordinates to the client.
func (s *Surface) PointerMotion(ev PointerMotionEvent) bool {
	if !s.ElementBase.PointerMotion(ev) {
		return false
	}
	return s.client.PointerMotion(ev.X, ev.Y, ev.TimeMsec)
}

func (s *Surface) PointerButton(ev ButtonEvent) bool {
	switch ev.State {
	case ButtonPressed:
		s.client.PointerButton(ev.Code, true, ev.TimeMsec)
	case ButtonReleased:
		s.client.PointerButton(ev.Code, false, ev.TimeMsec)
	case ButtonClick:
		// Clients see press and release; synthesized clicks are a
		// toolkit-internal concept.
		return false
	}
	return true
}

func (s *Surface) PointerAxis(ev AxisEvent) bool {
	s.client.PointerAxis(ev.Orientation, ev.Delta, ev.DeltaDiscrete, ev.Source, ev.TimeMsec)
	return true
}

// Keyboard forwards untranslated keys to the client.
func (s *Surface) Keyboard(ev KeyEvent) bool {
	s.client.KeyboardKey(ev.Code, ev.Pressed, ev.TimeMsec)
	return true
}

// SetActivated flags the surface as holding keyboard focus.
func (s *Surface) SetActivated(activated bool) {
	if s.activated == activated {
		return
	}
	s.activated = activated
	if activated {
		s.client.KeyboardEnter()
		if s.parent != nil {
			s.parent.SetKeyboardFocus(s, true)
		}
	} else if s.parent != nil {
		s.parent.SetKeyboardFocus(s, false)
	}
}

// Activated reports whether the surface holds activation.
func (s *Surface) Activated() bool { return s.activated }

func (s *Surface) KeyboardBlur() {
	s.SetActivated(false)
}

func (s *Surface) Destroy() {
	s.Mapped.DisconnectAll()
	s.Unmapped.DisconnectAll()
	s.Committed.DisconnectAll()
	s.ElementBase.Destroy()
}
