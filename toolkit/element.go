// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image"

	"github.com/mstarongithub/stepwm/scene"
)

// Element is the base contract of every node in the toolkit tree.
// Concrete widgets embed ElementBase, which provides defaults for the
// whole interface, and override the methods they care about.
type Element interface {
	// Destroy releases the element's resources. The caller must have
	// removed it from its parent container first.
	Destroy()

	// AttachToScene builds the element's scene-graph node below parent.
	// An element has a scene node if and only if its parent has one.
	AttachToScene(parent scene.Tree) error
	// DetachFromScene tears the scene-graph node down again.
	DetachFromScene()
	SceneNode() scene.Node

	Parent() *Container
	Position() (x, y int)
	SetPosition(x, y int)
	Visible() bool
	SetVisible(visible bool)

	// Dimensions is the element-relative bounding box.
	Dimensions() image.Rectangle
	// PointerArea is the element-relative input hit box. Defaults to
	// Dimensions.
	PointerArea() image.Rectangle

	// PointerMotion reports whether the position falls within the
	// element's input area. The base behavior caches the event and
	// tests it against PointerArea.
	PointerMotion(ev PointerMotionEvent) bool
	// PointerButton handles a button transition; reports whether the
	// event was consumed.
	PointerButton(ev ButtonEvent) bool
	PointerAxis(ev AxisEvent) bool
	// PointerGrabCancel is invoked when a grab held by this element is
	// taken away. Mandatory for any element that ever requests a grab.
	PointerGrabCancel()

	// Keyboard passes an untranslated key event through to the element.
	Keyboard(ev KeyEvent) bool
	// KeyboardSym delivers a translated keysym to toolkit widgets.
	KeyboardSym(sym KeySym, pressed bool, mods Modifiers) bool
	// KeyboardBlur recursively deactivates keyboard focus below the
	// element.
	KeyboardBlur()

	base() *ElementBase
}

// ElementBase carries the state shared by all elements and implements
// the Element defaults. Embedders must call InitElement with the
// outermost type so overridden methods are reached from the base
// implementations.
type ElementBase struct {
	// PointerEnter fires when the pointer first enters the input area.
	PointerEnter Signal[PointerMotionEvent]
	// PointerLeave fires on departure, obstruction or destruction.
	PointerLeave Signal[struct{}]

	self    Element
	x, y    int
	visible bool
	node    scene.Node
	parent  *Container

	lastPointer    PointerMotionEvent
	hasLastPointer bool
	pointerInside  bool
}

// InitElement wires the base to the outermost element type.
func (b *ElementBase) InitElement(self Element) {
	b.self = self
	b.visible = true
}

func (b *ElementBase) base() *ElementBase { return b }

// Destroy disconnects the element's signals and drops its scene node.
// Panics if the element is still parented; detaching is the caller's
// job.
func (b *ElementBase) Destroy() {
	if b.parent != nil {
		panic("toolkit: Destroy on element that still has a parent")
	}
	b.PointerEnter.DisconnectAll()
	b.PointerLeave.DisconnectAll()
	if b.node != nil {
		b.self.DetachFromScene()
	}
}

// AttachToScene by default creates a plain subtree node: enough for
// logic-only elements that render nothing themselves.
func (b *ElementBase) AttachToScene(parent scene.Tree) error {
	tree, err := parent.NewTree()
	if err != nil {
		return err
	}
	b.AdoptSceneNode(tree.Node())
	return nil
}

func (b *ElementBase) DetachFromScene() {
	if b.node == nil {
		return
	}
	b.node.Destroy()
	b.node = nil
}

// AdoptSceneNode registers a freshly created scene node with the base
// and syncs position and visibility onto it. Overriding AttachToScene
// implementations call this with whatever leaf node they built.
func (b *ElementBase) AdoptSceneNode(node scene.Node) {
	b.node = node
	node.SetPosition(b.x, b.y)
	node.SetVisible(b.visible)
}

func (b *ElementBase) SceneNode() scene.Node { return b.node }

func (b *ElementBase) Parent() *Container { return b.parent }

// Position reads through to the scene graph when attached; the cached
// fields can be stale if an outer layer moved the node directly.
func (b *ElementBase) Position() (int, int) {
	if b.node != nil {
		return b.node.Position()
	}
	return b.x, b.y
}

// SetPosition updates the cached position and the scene node together.
func (b *ElementBase) SetPosition(x, y int) {
	b.x, b.y = x, y
	if b.node != nil {
		b.node.SetPosition(x, y)
	}
}

func (b *ElementBase) Visible() bool { return b.visible }

// SetVisible toggles the scene node and, on change, asks the parent to
// re-evaluate layout and pointer focus.
func (b *ElementBase) SetVisible(visible bool) {
	if b.visible == visible {
		return
	}
	b.visible = visible
	if b.node != nil {
		b.node.SetVisible(visible)
	}
	if b.parent != nil {
		b.parent.childChanged()
	}
}

// Dimensions defaults to an empty box; leaves with real extent
// override it.
func (b *ElementBase) Dimensions() image.Rectangle { return image.Rectangle{} }

// PointerArea defaults to the element's dimensions.
func (b *ElementBase) PointerArea() image.Rectangle { return b.self.Dimensions() }

func (b *ElementBase) PointerMotion(ev PointerMotionEvent) bool {
	b.lastPointer = ev
	b.hasLastPointer = true
	return image.Pt(int(ev.X), int(ev.Y)).In(b.self.PointerArea())
}

func (b *ElementBase) PointerButton(ev ButtonEvent) bool { return false }

func (b *ElementBase) PointerAxis(ev AxisEvent) bool { return false }

// PointerGrabCancel panics in the base: an element requesting grabs
// without overriding it is a programming error.
func (b *ElementBase) PointerGrabCancel() {
	panic("toolkit: PointerGrabCancel not implemented by grabbing element")
}

func (b *ElementBase) Keyboard(ev KeyEvent) bool { return false }

func (b *ElementBase) KeyboardSym(sym KeySym, pressed bool, mods Modifiers) bool {
	return false
}

func (b *ElementBase) KeyboardBlur() {}

// LastPointerMotion returns the most recent motion event seen by the
// element's base dispatch, and whether one was seen at all.
func (b *ElementBase) LastPointerMotion() (PointerMotionEvent, bool) {
	return b.lastPointer, b.hasLastPointer
}

// notifyPointerEnter flips the inside flag and emits PointerEnter. The
// container drives this on focus transitions.
func (b *ElementBase) notifyPointerEnter(ev PointerMotionEvent) {
	if b.pointerInside {
		return
	}
	b.pointerInside = true
	b.PointerEnter.Emit(ev)
}

// notifyPointerLeave clears the inside flag and emits PointerLeave.
func (b *ElementBase) notifyPointerLeave() {
	if !b.pointerInside {
		return
	}
	b.pointerInside = false
	b.PointerLeave.Emit(struct{}{})
}

// PointerInside reports whether the element currently holds pointer
// focus of its container.
func (b *ElementBase) PointerInside() bool { return b.pointerInside }
