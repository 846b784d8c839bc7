// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

// Linux evdev button codes for the buttons the toolkit cares about.
const (
	BtnLeft   uint32 = 0x110
	BtnRight  uint32 = 0x111
	BtnMiddle uint32 = 0x112
)

// ButtonState is the transition a ButtonEvent reports.
type ButtonState int

const (
	ButtonPressed ButtonState = iota
	ButtonReleased
	// ButtonClick is synthesized by a container when the element that
	// received the left-button press also sees the matching release.
	ButtonClick
	// ButtonDoubleClick is synthesized when a second click lands on the
	// same element within the double-click interval.
	ButtonDoubleClick
)

// DoubleClickIntervalMsec is the longest pause between two clicks that
// still counts as a double click.
const DoubleClickIntervalMsec uint32 = 400

// PointerMotionEvent is a pointer position in the coordinates of the
// element receiving it.
type PointerMotionEvent struct {
	X, Y     float64
	TimeMsec uint32
}

// ButtonEvent is a button transition. Position is not carried; button
// events are routed by the pointer focus established through motion.
type ButtonEvent struct {
	Code     uint32
	State    ButtonState
	TimeMsec uint32
}

// AxisEvent is a wheel-class event. Field meanings follow the wlroots
// pointer axis event.
type AxisEvent struct {
	Orientation   uint32
	Delta         float64
	DeltaDiscrete int32
	Source        uint32
	TimeMsec      uint32
}

// KeyEvent is an untranslated key transition, passed through to client
// surfaces holding keyboard focus.
type KeyEvent struct {
	Code     uint32
	Pressed  bool
	TimeMsec uint32
}

// KeySym is a translated keysym, delivered to toolkit widgets. Values
// follow xkbcommon.
type KeySym uint32

// Modifiers is the xkb modifier bitmask accompanying a KeySym.
type Modifiers uint32

// Edges is the bitmask naming which window edges take part in a resize.
// Values match wlroots' wlr_edges.
type Edges uint32

const (
	EdgeNone   Edges = 0
	EdgeTop    Edges = 1
	EdgeBottom Edges = 2
	EdgeLeft   Edges = 4
	EdgeRight  Edges = 8
)

// CursorShape names the pointer images the toolkit asks the
// environment to show.
type CursorShape int

const (
	CursorDefault CursorShape = iota
	CursorResizeSouth
	CursorResizeSouthEast
	CursorResizeSouthWest
)

// XCursorName returns the xcursor theme name for the shape.
func (c CursorShape) XCursorName() string {
	switch c {
	case CursorResizeSouth:
		return "s-resize"
	case CursorResizeSouthEast:
		return "se-resize"
	case CursorResizeSouthWest:
		return "sw-resize"
	default:
		return "default"
	}
}
