package toolkit

import (
	"image"
)

// Button is a leaf element with released and pressed textures. It
// tracks pointer-inside and button-down state; a left-button release
// inside the hit area raises the Clicked signal.
type Button struct {
	BufferElement

	// Clicked fires on a completed click inside the button area.
	Clicked Signal[*Button]

	released image.Image
	pressed  image.Image

	down bool
}

// NewButton creates a button with its two textures. Both may share the
// same size; the released texture defines the hit area.
func NewButton(released, pressed image.Image) *Button {
	b := &Button{released: released, pressed: pressed}
	b.img = released
	b.InitElement(b)
	b.PointerLeave.Connect(func(struct{}) {
		if b.down {
			b.down = false
			b.SetImage(b.released)
		}
	})
	return b
}

// SetTextures swaps both textures, keeping the current visual state.
func (b *Button) SetTextures(released, pressed image.Image) {
	b.released = released
	b.pressed = pressed
	if b.down {
		b.SetImage(pressed)
	} else {
		b.SetImage(released)
	}
}

func (b *Button) PointerButton(ev ButtonEvent) bool {
	if ev.Code != BtnLeft {
		return false
	}
	switch ev.State {
	case ButtonPressed:
		b.down = true
		b.SetImage(b.pressed)
		return true

	case ButtonReleased:
		if b.down {
			b.down = false
			b.SetImage(b.released)
		}
		return true

	case ButtonClick:
		// The synthesized click reaches this element even when focus
		// moved away; only act when the release happened inside.
		if b.PointerInside() {
			b.Clicked.Emit(b)
			return true
		}
	}
	return false
}

func (b *Button) Destroy() {
	b.Clicked.DisconnectAll()
	b.BufferElement.Destroy()
}
