// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/mstarongithub/stepwm/scene"
)

// Root is the topmost container. It owns the workspaces, binds the
// output layout and carries the session lock curtain.
type Root struct {
	Container

	// WorkspaceChanged fires after the current workspace switches.
	WorkspaceChanged Signal[*Workspace]
	// UnlockEvent fires once per successful unlock.
	UnlockEvent Signal[struct{}]
	// WindowMapped and WindowUnmapped re-emit the events of every
	// workspace.
	WindowMapped   Signal[*Window]
	WindowUnmapped Signal[*Window]
	// UnclaimedButtonEvent fires for button releases no element
	// consumed. Open right-click menus close on it.
	UnclaimedButtonEvent Signal[ButtonEvent]

	env    *Env
	layout OutputLayout

	workspaces []*Workspace
	current    *Workspace

	curtain     *Rectangle
	locked      bool
	lockElement Element

	reserved int

	tracker *OutputTracker
}

// NewRoot builds the root container over the scene tree and output
// layout. reserved is the tile size kept free of maximized windows.
func NewRoot(tree scene.Tree, layout OutputLayout, env *Env, reserved int) (*Root, error) {
	r := &Root{
		env:      env,
		layout:   layout,
		reserved: reserved,
		curtain:  NewRectangle(1, 1, color.RGBA{A: 0xff}),
	}
	r.InitContainer(r)
	if err := r.AttachToScene(tree); err != nil {
		return nil, err
	}

	r.curtain.SetVisible(false)
	r.Add(r.curtain)

	r.tracker = NewOutputTracker(layout,
		func(Output) any { r.fitCurtain(); return nil },
		func(Output, any) { r.fitCurtain() },
		func(Output, any) { r.fitCurtain() },
	)
	return r, nil
}

// Env returns the environment shared with all descendants.
func (r *Root) Env() *Env { return r.env }

// Layout returns the bound output layout.
func (r *Root) Layout() OutputLayout { return r.layout }

// Workspaces returns the workspaces in insertion order.
func (r *Root) Workspaces() []*Workspace { return r.workspaces }

// CurrentWorkspace returns the visible, input-receiving workspace.
func (r *Root) CurrentWorkspace() *Workspace { return r.current }

// Locked reports whether a session lock is active.
func (r *Root) Locked() bool { return r.locked }

// AddWorkspace appends a workspace. The first one added becomes
// current.
func (r *Root) AddWorkspace(name string) *Workspace {
	ws := NewWorkspace(name, r.layout, r.reserved)
	r.workspaces = append(r.workspaces, ws)
	r.renumber()

	ws.WindowMappedEvent.Connect(func(w *Window) { r.WindowMapped.Emit(w) })
	ws.WindowUnmappedEvent.Connect(func(w *Window) { r.WindowUnmapped.Emit(w) })

	// Always below the curtain and any lock element.
	r.AddAtop(nil, ws)
	if r.current == nil {
		ws.SetEnabled(true)
		r.current = ws
		r.WorkspaceChanged.Emit(ws)
	} else {
		ws.SetEnabled(false)
	}
	logrus.WithField("workspace", name).Debugln("Added workspace")
	return ws
}

// WorkspaceByName returns the workspace with the given name, or nil.
func (r *Root) WorkspaceByName(name string) *Workspace {
	for _, ws := range r.workspaces {
		if ws.Name() == name {
			return ws
		}
	}
	return nil
}

// RemoveWorkspace detaches ws. If it was current, the head of the
// remaining list takes over.
func (r *Root) RemoveWorkspace(ws *Workspace) {
	idx := -1
	for i, candidate := range r.workspaces {
		if candidate == ws {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("toolkit: RemoveWorkspace on unknown workspace")
	}
	r.workspaces = append(r.workspaces[:idx], r.workspaces[idx+1:]...)
	r.renumber()
	r.Remove(ws)

	if r.current == ws {
		r.current = nil
		if len(r.workspaces) > 0 {
			r.SwitchToWorkspace(r.workspaces[0])
		}
	}
	ws.Destroy()
}

// SwitchToWorkspace makes ws the current workspace.
func (r *Root) SwitchToWorkspace(ws *Workspace) {
	if ws == r.current {
		return
	}
	if ws.Parent() != &r.Container {
		panic("toolkit: SwitchToWorkspace on workspace not held by root")
	}
	if r.current != nil {
		r.current.SetEnabled(false)
	}
	r.current = ws
	ws.SetEnabled(true)
	logrus.WithField("workspace", ws.Name()).Debugln("Switched workspace")
	r.WorkspaceChanged.Emit(ws)
}

// SwitchToNextWorkspace cycles forward through the workspace order.
func (r *Root) SwitchToNextWorkspace() { r.switchBy(1) }

// SwitchToPreviousWorkspace cycles backward through the workspace
// order.
func (r *Root) SwitchToPreviousWorkspace() { r.switchBy(-1) }

func (r *Root) switchBy(delta int) {
	if len(r.workspaces) < 2 || r.current == nil {
		return
	}
	idx := (r.current.Index() + delta + len(r.workspaces)) % len(r.workspaces)
	r.SwitchToWorkspace(r.workspaces[idx])
}

func (r *Root) renumber() {
	for i, ws := range r.workspaces {
		ws.index = i
	}
}

// Lock starts a session lock with lockElement as the sole input
// target. Only an unreferenced lock may be taken over.
func (r *Root) Lock(lockElement Element) {
	if r.locked && r.lockElement != nil {
		panic("toolkit: Lock while already locked")
	}
	if r.current != nil {
		r.current.SetEnabled(false)
	}
	r.fitCurtain()
	r.curtain.SetVisible(true)
	r.RaiseToTop(r.curtain)
	r.Add(lockElement)
	r.lockElement = lockElement
	r.locked = true
	logrus.Infoln("Session locked")
}

// Unlock ends the session lock. Only the element that locked may
// unlock.
func (r *Root) Unlock(lockElement Element) {
	if !r.locked || r.lockElement != lockElement {
		panic("toolkit: Unlock with mismatched lock element")
	}
	r.Remove(lockElement)
	r.lockElement = nil
	r.locked = false
	r.curtain.SetVisible(false)
	if r.current != nil {
		r.current.SetEnabled(true)
	}
	logrus.Infoln("Session unlocked")
	r.UnlockEvent.Emit(struct{}{})
}

// LockUnreference drops the lock element but keeps the session
// locked. Used when the lock client dies.
func (r *Root) LockUnreference(lockElement Element) {
	if r.lockElement != lockElement {
		panic("toolkit: LockUnreference with mismatched lock element")
	}
	r.Remove(lockElement)
	r.lockElement = nil
	logrus.Warnln("Lock client gone, session stays locked")
}

// PointerMotion routes exclusively to the lock element while locked.
func (r *Root) PointerMotion(ev PointerMotionEvent) bool {
	if r.locked {
		r.ElementBase.PointerMotion(ev)
		if r.lockElement == nil {
			return true
		}
		return r.lockElement.PointerMotion(r.translate(r.lockElement, ev))
	}
	return r.Container.PointerMotion(ev)
}

// PointerButton routes to the lock element while locked. Unconsumed
// button releases raise UnclaimedButtonEvent.
func (r *Root) PointerButton(ev ButtonEvent) bool {
	if r.locked {
		if r.lockElement == nil {
			return true
		}
		return r.lockElement.PointerButton(ev)
	}
	consumed := r.Container.PointerButton(ev)
	if !consumed && ev.State == ButtonReleased {
		r.UnclaimedButtonEvent.Emit(ev)
	}
	return consumed
}

func (r *Root) PointerAxis(ev AxisEvent) bool {
	if r.locked {
		if r.lockElement == nil {
			return true
		}
		return r.lockElement.PointerAxis(ev)
	}
	return r.Container.PointerAxis(ev)
}

func (r *Root) Keyboard(ev KeyEvent) bool {
	if r.locked {
		if r.lockElement == nil {
			return true
		}
		return r.lockElement.Keyboard(ev)
	}
	return r.Container.Keyboard(ev)
}

func (r *Root) KeyboardSym(sym KeySym, pressed bool, mods Modifiers) bool {
	if r.locked {
		if r.lockElement == nil {
			return true
		}
		return r.lockElement.KeyboardSym(sym, pressed, mods)
	}
	return r.Container.KeyboardSym(sym, pressed, mods)
}

// RefreshOutputs re-reads the layout and fans the change out.
func (r *Root) RefreshOutputs() {
	r.tracker.Refresh()
	for _, ws := range r.workspaces {
		for kind := LayerBackground; kind <= LayerOverlay; kind++ {
			ws.Layer(kind).Reflow()
		}
		for _, w := range ws.Windows() {
			ws.ConfineWithin(w)
		}
	}
}

func (r *Root) fitCurtain() {
	extents := LayoutExtents(r.layout)
	if extents.Empty() {
		return
	}
	r.curtain.SetPosition(extents.Min.X, extents.Min.Y)
	r.curtain.SetSize(extents.Dx(), extents.Dy())
}

func (r *Root) Destroy() {
	r.tracker.Destroy()
	r.WorkspaceChanged.DisconnectAll()
	r.UnlockEvent.DisconnectAll()
	r.WindowMapped.DisconnectAll()
	r.WindowUnmapped.DisconnectAll()
	r.UnclaimedButtonEvent.DisconnectAll()
	r.Container.Destroy()
}
