// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image"

	"github.com/sirupsen/logrus"
)

// ContentClient is the request half of the client protocol contract. An
// xdg toplevel binding implements it against the wire protocol; tests
// implement it with counters. Every request that configures the client
// returns the configure serial the client will acknowledge.
type ContentClient interface {
	RequestSize(width, height int) uint32
	RequestClose()
	RequestMaximized(maximized bool) uint32
	RequestFullscreen(fullscreen bool) uint32
	SetActivated(activated bool)
	AppID() string
	PID() int
}

type pendingFlag struct {
	serial uint32
	value  bool
}

// Content pairs a client surface with the configure/ack contract.
// Geometry and state changes requested from the client only take
// effect once a commit acknowledges their serial.
type Content struct {
	Container

	// SerialCommitted fires whenever a commit acknowledges a serial.
	SerialCommitted Signal[uint32]
	// CommittedMaximized fires when a maximize request got committed.
	CommittedMaximized Signal[bool]
	// CommittedFullscreen fires when a fullscreen request got
	// committed.
	CommittedFullscreen Signal[bool]
	// TitleChanged fires when the client updates its title.
	TitleChanged Signal[string]

	surface *Surface
	client  ContentClient

	// pane keeps client popups stacked above the surface.
	pane *Pane

	lastSerial      uint32
	committedSerial uint32

	pendingMaximized  []pendingFlag
	pendingFullscreen []pendingFlag
	maximized         bool
	fullscreen        bool

	title string

	parentContent *Content
	popups        []*Content
	popupWraps    map[*Content]*Popup
}

// NewContent wraps surface and client into a content element. The
// content owns the surface.
func NewContent(surface *Surface, client ContentClient) *Content {
	c := &Content{surface: surface, client: client, popupWraps: map[*Content]*Popup{}}
	c.InitContainer(c)
	c.pane = NewPane(surface)
	c.Add(c.pane)
	surface.Committed.Connect(func(s *Surface) {
		c.CommitSerial(s.Client().CommittedSerial())
	})
	return c
}

// Surface returns the owned surface.
func (c *Content) Surface() *Surface { return c.surface }

// Client returns the request interface.
func (c *Content) Client() ContentClient { return c.client }

// Dimensions is the committed size of the wrapped surface; popups do
// not extend the content's box.
func (c *Content) Dimensions() image.Rectangle {
	return c.surface.Dimensions()
}

// RequestSize asks the client to resize and returns the configure
// serial.
func (c *Content) RequestSize(width, height int) uint32 {
	serial := c.client.RequestSize(width, height)
	c.lastSerial = serial
	return serial
}

// RequestClose forwards a close request to the client.
func (c *Content) RequestClose() {
	c.client.RequestClose()
}

// RequestMaximized asks the client to (un)maximize. The state is
// pending until committed.
func (c *Content) RequestMaximized(maximized bool) uint32 {
	serial := c.client.RequestMaximized(maximized)
	c.lastSerial = serial
	c.pendingMaximized = append(c.pendingMaximized, pendingFlag{serial, maximized})
	return serial
}

// RequestFullscreen asks the client to (un)fullscreen. The state is
// pending until committed.
func (c *Content) RequestFullscreen(fullscreen bool) uint32 {
	serial := c.client.RequestFullscreen(fullscreen)
	c.lastSerial = serial
	c.pendingFullscreen = append(c.pendingFullscreen, pendingFlag{serial, fullscreen})
	return serial
}

// SetActivated propagates activation to the client and the surface.
func (c *Content) SetActivated(activated bool) {
	c.client.SetActivated(activated)
	c.surface.SetActivated(activated)
}

// CommitSerial applies all pending state whose request serial is
// covered by the acknowledged serial. Superseded entries of the same
// kind are discarded.
func (c *Content) CommitSerial(serial uint32) {
	if serial < c.committedSerial {
		// Clients must ack in order; accept what they send anyway.
		logrus.WithFields(logrus.Fields{
			"serial":    serial,
			"committed": c.committedSerial,
		}).Debugln("Commit serial went backwards")
	}
	c.committedSerial = serial

	if value, ok := takeCommitted(&c.pendingMaximized, serial); ok {
		c.maximized = value
		c.CommittedMaximized.Emit(value)
	}
	if value, ok := takeCommitted(&c.pendingFullscreen, serial); ok {
		c.fullscreen = value
		c.CommittedFullscreen.Emit(value)
	}
	c.SerialCommitted.Emit(serial)
}

// takeCommitted removes all entries with serial <= committed and
// returns the value of the most recent one.
func takeCommitted(pending *[]pendingFlag, committed uint32) (bool, bool) {
	var (
		value bool
		found bool
	)
	rest := (*pending)[:0]
	for _, p := range *pending {
		if p.serial <= committed {
			value = p.value
			found = true
		} else {
			rest = append(rest, p)
		}
	}
	*pending = rest
	return value, found
}

// LastSerial is the serial of the most recent request.
func (c *Content) LastSerial() uint32 { return c.lastSerial }

// CommittedSerial is the most recently acknowledged serial.
func (c *Content) CommittedSerial() uint32 { return c.committedSerial }

// Maximized reports the committed maximize state.
func (c *Content) Maximized() bool { return c.maximized }

// Fullscreen reports the committed fullscreen state.
func (c *Content) Fullscreen() bool { return c.fullscreen }

// SetTitle records the client's title and notifies observers.
func (c *Content) SetTitle(title string) {
	if c.title == title {
		return
	}
	c.title = title
	c.TitleChanged.Emit(title)
}

// Title returns the client's current title.
func (c *Content) Title() string { return c.title }

// AppID returns the client's application identifier.
func (c *Content) AppID() string { return c.client.AppID() }

// PID returns the client's process id, 0 when unknown.
func (c *Content) PID() int { return c.client.PID() }

// AddPopup attaches child as a popup of this content at the given
// parent-relative position, stacked above the surface.
func (c *Content) AddPopup(child *Content, x, y int) {
	if child.parentContent != nil {
		panic("toolkit: AddPopup on content that already has a parent")
	}
	child.parentContent = c
	c.popups = append(c.popups, child)
	wrap := NewPopup(child, x, y)
	c.popupWraps[child] = wrap
	c.pane.AddPopup(wrap)
}

// RemovePopup detaches child again.
func (c *Content) RemovePopup(child *Content) {
	if child.parentContent != c {
		panic("toolkit: RemovePopup on content with a different parent")
	}
	child.parentContent = nil
	for i, p := range c.popups {
		if p == child {
			c.popups = append(c.popups[:i], c.popups[i+1:]...)
			break
		}
	}
	wrap := c.popupWraps[child]
	delete(c.popupWraps, child)
	c.pane.RemovePopup(wrap)
	wrap.Remove(child)
	wrap.Destroy()
}

// ParentContent returns the content this popup hangs off, if any.
func (c *Content) ParentContent() *Content { return c.parentContent }

// Popups returns the attached popup contents.
func (c *Content) Popups() []*Content { return c.popups }

func (c *Content) Destroy() {
	c.SerialCommitted.DisconnectAll()
	c.CommittedMaximized.DisconnectAll()
	c.CommittedFullscreen.DisconnectAll()
	c.TitleChanged.DisconnectAll()
	c.Container.Destroy()
}
