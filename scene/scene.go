// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package scene defines the contract between the toolkit and whatever
// scene graph is used to draw it. The compositor binds these interfaces
// to wlroots scene nodes; tests bind them to the in-memory fakes in
// scenetest.
package scene

import (
	"image"
	"image/color"
)

// Node is a positioned, toggleable handle inside the scene graph.
// All toolkit z-order and placement operations go through it.
type Node interface {
	// SetPosition moves the node relative to its parent tree.
	SetPosition(x, y int)
	// Position reads the position back from the graph. The graph is
	// authoritative; a caller that moved the node directly bypasses any
	// cached value the toolkit holds.
	Position() (x, y int)
	SetVisible(visible bool)
	Visible() bool
	// RaiseToTop stacks the node above all of its siblings.
	RaiseToTop()
	// PlaceBelow stacks the node directly below the given sibling.
	PlaceBelow(sibling Node)
	Destroy()
}

// Tree is a branch of the scene graph. Child trees and leaf nodes are
// created through it; destroying a tree destroys everything below it.
type Tree interface {
	Node() Node
	NewTree() (Tree, error)
	NewRect(width, height int, c color.RGBA) (Rect, error)
	NewBuffer(img image.Image) (Buffer, error)
	// NewSurfaceNode binds a client surface (and its sub-surface tree)
	// into the graph below this tree.
	NewSurfaceNode(surface ClientSurface) (Node, error)
	Destroy()
}

// Rect is a solid-color leaf node.
type Rect interface {
	Node() Node
	SetSize(width, height int)
	SetColor(c color.RGBA)
	Destroy()
}

// Buffer is an image-backed leaf node.
type Buffer interface {
	Node() Node
	SetImage(img image.Image)
	Destroy()
}

// ClientSurface is the client-facing half of a mapped surface. The
// toolkit never talks wire protocol; it observes commits and forwards
// input coordinates.
type ClientSurface interface {
	// CommittedSize is the size of the most recently committed buffer.
	CommittedSize() (width, height int)
	// CommittedSerial is the configure serial the most recent commit
	// acknowledged. Zero when the client never acked a configure.
	CommittedSerial() uint32
	// OnMap registers a callback for the surface becoming ready to show.
	OnMap(fn func())
	OnUnmap(fn func())
	// OnCommit fires after every surface commit.
	OnCommit(fn func())
	// PointerMotion forwards surface-local pointer coordinates to the
	// client. Reports whether the client accepts pointer input there.
	PointerMotion(x, y float64, timeMsec uint32) bool
	PointerLeave()
	PointerButton(code uint32, pressed bool, timeMsec uint32)
	PointerAxis(orientation uint32, delta float64, deltaDiscrete int32, source uint32, timeMsec uint32)
	KeyboardEnter()
	KeyboardKey(code uint32, pressed bool, timeMsec uint32)
}
