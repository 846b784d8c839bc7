// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"container/list"
	"image"

	"github.com/sirupsen/logrus"
)

type dragState int

const (
	dragPassthrough dragState = iota
	dragMove
	dragResize
)

type dragEvent int

const (
	dragBeginMove dragEvent = iota
	dragBeginResize
	dragMotion
	dragReleased
	dragReset
)

// Workspace groups windows with the four shell layers over the shared
// output layout. It runs the interactive move/resize state machine.
type Workspace struct {
	Container

	// WindowMappedEvent fires when a window is mapped onto this
	// workspace.
	WindowMappedEvent Signal[*Window]
	// WindowUnmappedEvent fires when a window leaves it again.
	WindowUnmappedEvent Signal[*Window]

	name    string
	index   int
	enabled bool

	layers         [4]*Layer
	windows        *Container
	fullscreenArea *Container
	dock           *Dock

	// windowList orders windows by recency, head = most recently
	// raised. Cycling walks it without reordering.
	windowList        *list.List
	activated         *Window
	formerlyActivated *Window

	layout   OutputLayout
	reserved int

	drag    *Machine[dragState, dragEvent]
	grabbed *Window

	// seedWindow and seedEdges stage the FSM begin transitions.
	seedWindow *Window
	seedEdges  Edges

	curX, curY         float64
	anchorX, anchorY   float64
	initialX, initialY int
	initialW, initialH int
	resizeEdges        Edges
}

// NewWorkspace creates an enabled workspace over layout. reserved is
// the tile-sized region kept free of maximized windows for the dock
// and clip.
func NewWorkspace(name string, layout OutputLayout, reserved int) *Workspace {
	ws := &Workspace{
		name:     name,
		enabled:  true,
		layout:   layout,
		reserved: reserved,

		windowList: list.New(),
	}
	ws.InitContainer(ws)

	ws.layers[LayerOverlay] = NewLayer(LayerOverlay, layout)
	ws.fullscreenArea = NewContainer()
	ws.layers[LayerTop] = NewLayer(LayerTop, layout)
	ws.windows = NewContainer()
	ws.layers[LayerBottom] = NewLayer(LayerBottom, layout)
	ws.layers[LayerBackground] = NewLayer(LayerBackground, layout)

	// Stacking, top to bottom: overlay, fullscreen, top, windows,
	// bottom, background.
	ws.AddAtop(nil, ws.layers[LayerOverlay])
	ws.AddAtop(nil, ws.fullscreenArea)
	ws.AddAtop(nil, ws.layers[LayerTop])
	ws.AddAtop(nil, ws.windows)
	ws.AddAtop(nil, ws.layers[LayerBottom])
	ws.AddAtop(nil, ws.layers[LayerBackground])

	if reserved > 0 {
		ws.dock = NewDock(reserved)
		ws.layers[LayerTop].AddPanel(&ws.dock.Panel)
	}

	ws.drag = NewMachine(dragPassthrough, []Transition[dragState, dragEvent]{
		{From: dragPassthrough, Event: dragBeginMove, To: dragMove, Act: ws.dragStartMove},
		{From: dragMove, Event: dragMotion, To: dragMove, Act: ws.dragDoMove},
		{From: dragMove, Event: dragReleased, To: dragPassthrough, Act: ws.dragClear},
		{From: dragMove, Event: dragReset, To: dragPassthrough, Act: ws.dragClear},
		{From: dragPassthrough, Event: dragBeginResize, To: dragResize, Act: ws.dragStartResize},
		{From: dragResize, Event: dragMotion, To: dragResize, Act: ws.dragDoResize},
		{From: dragResize, Event: dragReleased, To: dragPassthrough, Act: ws.dragClear},
		{From: dragResize, Event: dragReset, To: dragPassthrough, Act: ws.dragClear},
	})

	ws.PointerLeave.Connect(func(struct{}) { ws.drag.Handle(dragReset) })
	return ws
}

// Name returns the workspace name.
func (ws *Workspace) Name() string { return ws.name }

// Index returns the position within the root's workspace order.
func (ws *Workspace) Index() int { return ws.index }

// Dock returns the workspace's tile dock, nil when no region is
// reserved for one.
func (ws *Workspace) Dock() *Dock { return ws.dock }

// Enabled reports whether this is the shown, input-receiving
// workspace.
func (ws *Workspace) Enabled() bool { return ws.enabled }

// Layer returns the workspace's layer of the given kind.
func (ws *Workspace) Layer(kind LayerKind) *Layer { return ws.layers[kind] }

// SetEnabled shows/hides the workspace. Disabling parks the activated
// window as the restore target; enabling restores it.
func (ws *Workspace) SetEnabled(enabled bool) {
	if ws.enabled == enabled {
		return
	}
	ws.enabled = enabled
	ws.SetVisible(enabled)
	if !enabled {
		ws.drag.Handle(dragReset)
		former := ws.activated
		if former != nil {
			former.SetActivated(false)
			ws.activated = nil
			ws.formerlyActivated = former
		}
		return
	}
	if ws.formerlyActivated != nil {
		ws.Activate(ws.formerlyActivated)
	}
}

// Windows returns the window list, most recently raised first.
func (ws *Workspace) Windows() []*Window {
	out := make([]*Window, 0, ws.windowList.Len())
	for e := ws.windowList.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Window))
	}
	return out
}

// ActivatedWindow returns the currently activated window, if any.
func (ws *Workspace) ActivatedWindow() *Window { return ws.activated }

// MapWindow inserts w topmost and activates it.
func (ws *Workspace) MapWindow(w *Window) {
	if w.workspace != nil {
		panic("toolkit: MapWindow on window already mapped")
	}
	w.workspace = ws
	ws.windowList.PushFront(w)
	ws.windows.Add(w)
	ws.Activate(w)
	logrus.WithFields(logrus.Fields{
		"workspace": ws.name,
		"window":    w.ID(),
	}).Debugln("Mapped window")
	ws.WindowMappedEvent.Emit(w)
}

// UnmapWindow removes w. If it held the activation, the head of the
// remaining list takes over; a grabbed w resets the drag machine.
func (ws *Workspace) UnmapWindow(w *Window) {
	if w.workspace != ws {
		panic("toolkit: UnmapWindow on window of a different workspace")
	}
	if ws.grabbed == w {
		ws.drag.Handle(dragReset)
	}
	entry := ws.entryFor(w)
	if entry != nil {
		ws.windowList.Remove(entry)
	}
	wasActivated := ws.activated == w
	if wasActivated {
		w.SetActivated(false)
		ws.activated = nil
	}
	if ws.formerlyActivated == w {
		ws.formerlyActivated = nil
	}
	if w.Parent() == ws.fullscreenArea {
		ws.fullscreenArea.Remove(w)
	} else {
		ws.windows.Remove(w)
	}
	w.workspace = nil
	if wasActivated && ws.windowList.Len() > 0 {
		ws.Activate(ws.windowList.Front().Value.(*Window))
	}
	logrus.WithFields(logrus.Fields{
		"workspace": ws.name,
		"window":    w.ID(),
	}).Debugln("Unmapped window")
	ws.WindowUnmappedEvent.Emit(w)
}

// Activate makes w the workspace's activated window and remembers it
// as the restore target.
func (ws *Workspace) Activate(w *Window) {
	if !ws.enabled {
		ws.formerlyActivated = w
		return
	}
	if ws.activated == w {
		return
	}
	if ws.activated != nil {
		ws.activated.SetActivated(false)
	}
	ws.activated = w
	if w != nil {
		w.SetActivated(true)
		ws.formerlyActivated = w
	}
}

// ActivateNext cycles activation toward older windows without
// reordering the list.
func (ws *Workspace) ActivateNext() {
	ws.activateNeighbor(func(e *list.Element) *list.Element {
		if e.Next() != nil {
			return e.Next()
		}
		return ws.windowList.Front()
	})
}

// ActivatePrevious cycles activation toward newer windows without
// reordering the list.
func (ws *Workspace) ActivatePrevious() {
	ws.activateNeighbor(func(e *list.Element) *list.Element {
		if e.Prev() != nil {
			return e.Prev()
		}
		return ws.windowList.Back()
	})
}

func (ws *Workspace) activateNeighbor(step func(*list.Element) *list.Element) {
	if ws.windowList.Len() == 0 {
		return
	}
	current := ws.windowList.Front()
	if ws.activated != nil {
		if e := ws.entryFor(ws.activated); e != nil {
			current = e
		}
	}
	ws.Activate(step(current).Value.(*Window))
}

// Raise moves w to the head of both the recency list and the stacking
// order.
func (ws *Workspace) Raise(w *Window) {
	entry := ws.entryFor(w)
	if entry == nil {
		panic("toolkit: Raise on window not in workspace")
	}
	ws.windowList.MoveToFront(entry)
	if w.Parent() == ws.windows {
		ws.windows.RaiseToTop(w)
	}
}

// WindowToFullscreen reparents w between the windows container and the
// fullscreen container above the top layer.
func (ws *Workspace) WindowToFullscreen(w *Window, fullscreen bool) {
	if w.workspace != ws {
		panic("toolkit: WindowToFullscreen on window of a different workspace")
	}
	if fullscreen {
		if w.Parent() == ws.fullscreenArea {
			return
		}
		ws.windows.Remove(w)
		ws.fullscreenArea.Add(w)
	} else {
		if w.Parent() == ws.windows {
			return
		}
		ws.fullscreenArea.Remove(w)
		ws.windows.Add(w)
	}
}

// Extents is the union of all output boxes.
func (ws *Workspace) Extents() image.Rectangle {
	return LayoutExtents(ws.layout)
}

// MaximizeExtents is the output's box minus the tile-reserved dock and
// clip regions. A nil output selects the primary.
func (ws *Workspace) MaximizeExtents(output Output) image.Rectangle {
	box := ws.outputBox(output)
	box.Max.X -= ws.reserved
	box.Max.Y -= ws.reserved
	return box
}

// FullscreenExtents is the output's full box. A nil output selects the
// primary.
func (ws *Workspace) FullscreenExtents(output Output) image.Rectangle {
	return ws.outputBox(output)
}

func (ws *Workspace) outputBox(output Output) image.Rectangle {
	if output == nil {
		output = PrimaryOutput(ws.layout)
	}
	if output == nil {
		return image.Rectangle{}
	}
	return output.Box()
}

// ConfineWithin clamps w's position so its pointer area stays inside
// the workspace extents.
func (ws *Workspace) ConfineWithin(w *Window) {
	extents := ws.Extents()
	if extents.Empty() {
		return
	}
	x, y := w.Position()
	area := w.PointerArea()

	maxX := extents.Max.X - area.Dx()
	maxY := extents.Max.Y - area.Dy()
	if x > maxX {
		x = maxX
	}
	if x < extents.Min.X {
		x = extents.Min.X
	}
	if y > maxY {
		y = maxY
	}
	if y < extents.Min.Y {
		y = extents.Min.Y
	}
	w.SetPosition(x, y)
}

// BeginWindowMove seeds the drag machine with a move of w, anchored at
// the current pointer position.
func (ws *Workspace) BeginWindowMove(w *Window) {
	ws.seedWindow = w
	ws.drag.Handle(dragBeginMove)
}

// BeginWindowResize seeds the drag machine with a resize of w along
// edges.
func (ws *Workspace) BeginWindowResize(w *Window, edges Edges) {
	ws.seedWindow = w
	ws.seedEdges = edges
	ws.drag.Handle(dragBeginResize)
}

// GrabbedWindow returns the window currently being moved or resized.
func (ws *Workspace) GrabbedWindow() *Window { return ws.grabbed }

// ResetDrag aborts any interactive move or resize.
func (ws *Workspace) ResetDrag() { ws.drag.Handle(dragReset) }

// PointerMotion always feeds the drag machine first, so a move keeps
// tracking over other elements' pointer areas.
func (ws *Workspace) PointerMotion(ev PointerMotionEvent) bool {
	ws.curX, ws.curY = ev.X, ev.Y
	if ws.drag.State() != dragPassthrough {
		ws.ElementBase.PointerMotion(ev)
		ws.drag.Handle(dragMotion)
		return true
	}
	return ws.Container.PointerMotion(ev)
}

// PointerButton ends a drag on left-button release.
func (ws *Workspace) PointerButton(ev ButtonEvent) bool {
	if ev.Code == BtnLeft && ev.State == ButtonReleased && ws.drag.State() != dragPassthrough {
		ws.drag.Handle(dragReleased)
		return true
	}
	return ws.Container.PointerButton(ev)
}

func (ws *Workspace) dragStartMove() {
	ws.grabbed = ws.seedWindow
	ws.seedWindow = nil
	ws.anchorX, ws.anchorY = ws.curX, ws.curY
	ws.initialX, ws.initialY = ws.grabbed.Position()
	ws.grabPointer()
	logrus.WithField("window", ws.grabbed.ID()).Debugln("Begin window move")
}

func (ws *Workspace) dragDoMove() {
	ws.grabbed.SetPosition(
		ws.initialX+int(ws.curX-ws.anchorX),
		ws.initialY+int(ws.curY-ws.anchorY),
	)
}

func (ws *Workspace) dragStartResize() {
	ws.grabbed = ws.seedWindow
	ws.seedWindow = nil
	ws.resizeEdges = ws.seedEdges
	ws.anchorX, ws.anchorY = ws.curX, ws.curY
	ws.initialX, ws.initialY = ws.grabbed.Position()
	ws.initialW, ws.initialH = ws.grabbed.ContentSize()
	ws.grabPointer()
	logrus.WithFields(logrus.Fields{
		"window": ws.grabbed.ID(),
		"edges":  ws.resizeEdges,
	}).Debugln("Begin window resize")
}

func (ws *Workspace) dragDoResize() {
	dx := int(ws.curX - ws.anchorX)
	dy := int(ws.curY - ws.anchorY)

	x, y := ws.initialX, ws.initialY
	width, height := ws.initialW, ws.initialH

	if ws.resizeEdges&EdgeLeft != 0 {
		x += dx
		width -= dx
	} else if ws.resizeEdges&EdgeRight != 0 {
		width += dx
	}
	if ws.resizeEdges&EdgeTop != 0 {
		y += dy
		height -= dy
	} else if ws.resizeEdges&EdgeBottom != 0 {
		height += dy
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	// The window applies the position once the client commits the
	// matching size.
	ws.grabbed.RequestPositionAndSize(x, y, width, height)
}

func (ws *Workspace) dragClear() {
	ws.grabbed = nil
	ws.seedWindow = nil
	if ws.parent != nil {
		ws.parent.PointerGrabRelease(ws)
	}
}

// grabPointer claims the pointer for the duration of the drag so motion
// keeps arriving even when the pointer leaves the workspace's own area.
func (ws *Workspace) grabPointer() {
	if ws.parent != nil {
		ws.parent.PointerGrab(ws)
	}
}

// PointerGrabCancel aborts a running drag when an outer element takes
// the pointer away. Outside a drag the cancel goes down to whichever
// child holds the grab.
func (ws *Workspace) PointerGrabCancel() {
	if ws.drag.State() != dragPassthrough {
		ws.drag.Handle(dragReset)
		return
	}
	ws.Container.PointerGrabCancel()
}

func (ws *Workspace) entryFor(w *Window) *list.Element {
	for e := ws.windowList.Front(); e != nil; e = e.Next() {
		if e.Value.(*Window) == w {
			return e
		}
	}
	return nil
}

func (ws *Workspace) Destroy() {
	ws.drag.Handle(dragReset)
	ws.WindowMappedEvent.DisconnectAll()
	ws.WindowUnmappedEvent.DisconnectAll()
	ws.Container.Destroy()
}
