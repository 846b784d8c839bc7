// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"container/list"
	"image"

	"github.com/mstarongithub/stepwm/scene"
	"github.com/sirupsen/logrus"
)

// layouter is implemented by containers that compute child geometry.
// UpdateLayout dispatches through it so embedding types get their
// layout pass run even when invoked through a plain *Container.
type layouter interface {
	layoutChildren()
}

// Container is an element that owns an ordered list of children. The
// head of the list is topmost in z-order and receives pointer events
// first.
type Container struct {
	ElementBase

	children *list.List // of Element, head = topmost

	tree scene.Tree

	pointerFocus   Element
	pointerGrab    Element
	leftButtonElem Element
	keyboardFocus  Element

	lastClickElem Element
	lastClickMsec uint32

	inLayout bool
}

// InitContainer wires the container and its element base to the
// outermost type.
func (c *Container) InitContainer(self Element) {
	c.InitElement(self)
	c.children = list.New()
}

// NewContainer creates a plain container.
func NewContainer() *Container {
	c := &Container{}
	c.InitContainer(c)
	return c
}

// Children returns the child elements, topmost first.
func (c *Container) Children() []Element {
	out := make([]Element, 0, c.children.Len())
	for e := c.children.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Element))
	}
	return out
}

// Contains reports whether child is a current member of the container.
func (c *Container) Contains(child Element) bool {
	return c.entryOf(child) != nil
}

func (c *Container) entryOf(child Element) *list.Element {
	for e := c.children.Front(); e != nil; e = e.Next() {
		if e.Value.(Element) == child {
			return e
		}
	}
	return nil
}

// Add inserts child at the head of the list, topmost. The child must
// not have a parent yet.
func (c *Container) Add(child Element) {
	if child.base().parent != nil {
		panic("toolkit: Add requires an unparented element")
	}
	c.children.PushFront(child)
	child.base().parent = c
	c.attachChild(child)
	c.syncSceneOrder(child)
	c.UpdateLayout()
}

// AddAtop inserts child immediately below reference in z-order. A nil
// reference pushes the child to the tail, bottom-most.
func (c *Container) AddAtop(reference, child Element) {
	if child.base().parent != nil {
		panic("toolkit: AddAtop requires an unparented element")
	}
	if reference == nil {
		c.children.PushBack(child)
	} else {
		ref := c.entryOf(reference)
		if ref == nil {
			panic("toolkit: AddAtop reference is not a child")
		}
		c.children.InsertAfter(child, ref)
	}
	child.base().parent = c
	c.attachChild(child)
	c.syncSceneOrder(child)
	c.UpdateLayout()
}

// Remove takes child out of the container. A held grab is cancelled,
// pointer focus and pending click state are cleared.
func (c *Container) Remove(child Element) {
	entry := c.entryOf(child)
	if entry == nil || child.base().parent != c {
		panic("toolkit: Remove on element that is not a child")
	}
	if c.pointerGrab == child {
		child.PointerGrabCancel()
		if c.pointerGrab == child {
			c.PointerGrabRelease(child)
		}
	}
	if c.pointerFocus == child {
		child.base().notifyPointerLeave()
		c.pointerFocus = nil
	}
	if c.leftButtonElem == child {
		c.leftButtonElem = nil
	}
	if c.lastClickElem == child {
		c.lastClickElem = nil
	}
	if c.keyboardFocus == child {
		child.KeyboardBlur()
		c.keyboardFocus = nil
	}
	c.children.Remove(entry)
	child.base().parent = nil
	if child.SceneNode() != nil {
		child.DetachFromScene()
	}
	c.UpdateLayout()
}

// RaiseToTop moves child to the head of the list.
func (c *Container) RaiseToTop(child Element) {
	entry := c.entryOf(child)
	if entry == nil {
		panic("toolkit: RaiseToTop on element that is not a child")
	}
	c.children.MoveToFront(entry)
	if node := child.SceneNode(); node != nil {
		node.RaiseToTop()
	}
	c.childChanged()
}

// UpdateLayout runs the container's layout pass and propagates to the
// parent. A reentrancy inhibitor guarantees at most one active pass.
func (c *Container) UpdateLayout() {
	if c.inLayout {
		return
	}
	c.inLayout = true
	if l, ok := c.self.(layouter); ok {
		l.layoutChildren()
	}
	c.inLayout = false
	if c.parent != nil {
		c.parent.UpdateLayout()
	}
}

// childChanged is called when a child's visibility or geometry changed:
// re-run layout and re-evaluate pointer focus from the top of the tree.
func (c *Container) childChanged() {
	c.UpdateLayout()
	top := c
	for top.parent != nil {
		top = top.parent
	}
	if ev, ok := top.LastPointerMotion(); ok {
		top.self.PointerMotion(ev)
	}
}

func (c *Container) attachChild(child Element) {
	if c.tree == nil {
		return
	}
	if err := child.AttachToScene(c.tree); err != nil {
		logrus.WithError(err).Errorln("Failed to attach child to scene")
	}
}

// syncSceneOrder places the child's scene node according to its list
// position.
func (c *Container) syncSceneOrder(child Element) {
	node := child.SceneNode()
	if node == nil {
		return
	}
	entry := c.entryOf(child)
	if entry.Prev() == nil {
		node.RaiseToTop()
		return
	}
	if above := entry.Prev().Value.(Element).SceneNode(); above != nil {
		node.PlaceBelow(above)
	}
}

// AttachToScene builds a subtree and attaches all children, bottom
// first so scene stacking matches list order.
func (c *Container) AttachToScene(parent scene.Tree) error {
	tree, err := parent.NewTree()
	if err != nil {
		return err
	}
	c.tree = tree
	c.AdoptSceneNode(tree.Node())
	for e := c.children.Back(); e != nil; e = e.Prev() {
		child := e.Value.(Element)
		if err := child.AttachToScene(tree); err != nil {
			return err
		}
	}
	return nil
}

// DetachFromScene detaches all children, then the container's own
// subtree.
func (c *Container) DetachFromScene() {
	for e := c.children.Front(); e != nil; e = e.Next() {
		child := e.Value.(Element)
		if child.SceneNode() != nil {
			child.DetachFromScene()
		}
	}
	if c.tree != nil {
		c.tree.Destroy()
		c.tree = nil
		c.node = nil
	}
}

// Destroy destroys all remaining children, then the container itself.
func (c *Container) Destroy() {
	for c.children.Len() > 0 {
		child := c.children.Front().Value.(Element)
		c.Remove(child)
		child.Destroy()
	}
	c.ElementBase.Destroy()
}

// Dimensions is the union of all visible children's dimensions, offset
// by their positions.
func (c *Container) Dimensions() image.Rectangle {
	var union image.Rectangle
	for e := c.children.Front(); e != nil; e = e.Next() {
		child := e.Value.(Element)
		if !child.Visible() {
			continue
		}
		x, y := child.Position()
		union = union.Union(child.Dimensions().Add(image.Pt(x, y)))
	}
	return union
}

// PointerMotion dispatches motion to the grab holder, or head to tail
// to the first visible child whose pointer area contains the position.
func (c *Container) PointerMotion(ev PointerMotionEvent) bool {
	c.ElementBase.PointerMotion(ev)

	if c.pointerGrab != nil {
		return c.pointerGrab.PointerMotion(c.translate(c.pointerGrab, ev))
	}

	var hit Element
	var hitEv PointerMotionEvent
	for e := c.children.Front(); e != nil; e = e.Next() {
		child := e.Value.(Element)
		if !child.Visible() {
			continue
		}
		childEv := c.translate(child, ev)
		// Hit-test before dispatching, same as in PointerButton. Children
		// off the pointer's position must never see the event.
		if !image.Pt(int(childEv.X), int(childEv.Y)).In(child.PointerArea()) {
			continue
		}
		if child.PointerMotion(childEv) {
			hit = child
			hitEv = childEv
			break
		}
	}

	if hit != c.pointerFocus {
		if c.pointerFocus != nil {
			c.pointerFocus.base().notifyPointerLeave()
		}
		c.pointerFocus = hit
		if hit != nil {
			hit.base().notifyPointerEnter(hitEv)
		}
	}
	return hit != nil
}

// PointerButton routes button transitions to the grab holder or the
// pointer-focus child. A left-button press records the receiving child;
// the matching release synthesizes a CLICK for that same child.
func (c *Container) PointerButton(ev ButtonEvent) bool {
	target := c.pointerFocus
	if c.pointerGrab != nil {
		target = c.pointerGrab
	}

	consumed := false
	switch ev.State {
	case ButtonPressed:
		if target != nil {
			consumed = target.PointerButton(ev)
		}
		if ev.Code == BtnLeft {
			c.leftButtonElem = target
		}

	case ButtonReleased:
		if target != nil {
			consumed = target.PointerButton(ev)
		}
		if ev.Code == BtnLeft && c.leftButtonElem != nil {
			clicked := c.leftButtonElem
			click := ButtonEvent{Code: ev.Code, State: ButtonClick, TimeMsec: ev.TimeMsec}
			if clicked.PointerButton(click) {
				consumed = true
			}
			if clicked == c.lastClickElem && ev.TimeMsec-c.lastClickMsec <= DoubleClickIntervalMsec {
				double := ButtonEvent{Code: ev.Code, State: ButtonDoubleClick, TimeMsec: ev.TimeMsec}
				if clicked.PointerButton(double) {
					consumed = true
				}
				c.lastClickElem = nil
			} else {
				c.lastClickElem = clicked
				c.lastClickMsec = ev.TimeMsec
			}
			c.leftButtonElem = nil
		}

	case ButtonClick, ButtonDoubleClick:
		// Each container synthesizes these for its own press target; a
		// click arriving from an outer container stops here.
	}
	return consumed
}

// PointerAxis routes axis events to the grab holder or the
// pointer-focus child.
func (c *Container) PointerAxis(ev AxisEvent) bool {
	target := c.pointerFocus
	if c.pointerGrab != nil {
		target = c.pointerGrab
	}
	if target == nil {
		return false
	}
	return target.PointerAxis(ev)
}

// PointerGrab makes child the only receiver of pointer events within
// this container and propagates the grab to the parent. A different
// existing grab is cancelled first.
func (c *Container) PointerGrab(child Element) {
	if c.pointerGrab == child {
		return
	}
	if c.pointerGrab != nil {
		old := c.pointerGrab
		c.pointerGrab = nil
		old.PointerGrabCancel()
	}
	c.pointerGrab = child
	// Enter/leave to other elements is suppressed for the duration.
	if c.pointerFocus != nil && c.pointerFocus != child {
		c.pointerFocus.base().notifyPointerLeave()
		c.pointerFocus = child
	}
	if c.parent != nil {
		c.parent.PointerGrab(c.self)
	}
}

// PointerGrabRelease ends child's grab. A no-op if child is not the
// grab holder.
func (c *Container) PointerGrabRelease(child Element) {
	if c.pointerGrab != child {
		return
	}
	c.pointerGrab = nil
	if c.parent != nil {
		c.parent.PointerGrabRelease(c.self)
	}
}

// PointerGrabCancel revokes a grab held below this container.
func (c *Container) PointerGrabCancel() {
	if c.pointerGrab == nil {
		return
	}
	grab := c.pointerGrab
	c.pointerGrab = nil
	grab.PointerGrabCancel()
}

// PointerGrabElement returns the current grab holder, if any.
func (c *Container) PointerGrabElement() Element { return c.pointerGrab }

// PointerFocusElement returns the current pointer-focus child, if any.
func (c *Container) PointerFocusElement() Element { return c.pointerFocus }

// SetKeyboardFocus directs (or clears) keyboard focus to child and
// propagates the chain toward the root.
func (c *Container) SetKeyboardFocus(child Element, enabled bool) {
	if enabled {
		if c.keyboardFocus == child {
			return
		}
		if c.keyboardFocus != nil {
			c.keyboardFocus.KeyboardBlur()
		}
		c.keyboardFocus = child
		if c.parent != nil {
			c.parent.SetKeyboardFocus(c.self, true)
		}
		return
	}
	if c.keyboardFocus != child {
		return
	}
	c.keyboardFocus = nil
	if c.parent != nil {
		c.parent.SetKeyboardFocus(c.self, false)
	}
}

// KeyboardFocusElement returns the focused child, if any.
func (c *Container) KeyboardFocusElement() Element { return c.keyboardFocus }

// Keyboard forwards the key event along the focus chain.
func (c *Container) Keyboard(ev KeyEvent) bool {
	if c.keyboardFocus == nil {
		return false
	}
	return c.keyboardFocus.Keyboard(ev)
}

// KeyboardSym forwards the translated keysym along the focus chain.
func (c *Container) KeyboardSym(sym KeySym, pressed bool, mods Modifiers) bool {
	if c.keyboardFocus == nil {
		return false
	}
	return c.keyboardFocus.KeyboardSym(sym, pressed, mods)
}

// KeyboardBlur deactivates the whole focus chain below the container.
func (c *Container) KeyboardBlur() {
	if c.keyboardFocus == nil {
		return
	}
	focus := c.keyboardFocus
	c.keyboardFocus = nil
	focus.KeyboardBlur()
}

func (c *Container) translate(child Element, ev PointerMotionEvent) PointerMotionEvent {
	x, y := child.Position()
	return PointerMotionEvent{
		X:        ev.X - float64(x),
		Y:        ev.Y - float64(y),
		TimeMsec: ev.TimeMsec,
	}
}
