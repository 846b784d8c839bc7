// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WindowProperties is the bitmask of per-window behavior switches.
type WindowProperties uint32

const (
	WindowPropertyResizable WindowProperties = 1 << iota
	WindowPropertyIconifiable
	WindowPropertyClosable
	// WindowPropertyRightclick lets a right button press on the
	// decorations open the window menu.
	WindowPropertyRightclick
)

// WindowPropertiesDefault is what freshly mapped toplevels get.
const WindowPropertiesDefault = WindowPropertyResizable |
	WindowPropertyIconifiable |
	WindowPropertyClosable |
	WindowPropertyRightclick

type pendingPosition struct {
	serial uint32
	x, y   int
}

// Window is the decorated, stateful toplevel: a content wrapped in a
// titlebar, resize bar and border, plus a window menu.
//
// Geometry requested from the client only takes effect when the client
// commits a surface acknowledging the configure serial.
type Window struct {
	Container

	// StateChanged fires after maximize/fullscreen/shade transitions.
	StateChanged Signal[*Window]
	// ActivatedChanged fires when activation is set or cleared.
	ActivatedChanged Signal[*Window]
	// RequestCloseEvent fires when the window asked its client to
	// close, for taskbar-style observers.
	RequestCloseEvent Signal[*Window]
	// RequestIconify fires when the iconify button was clicked; the
	// outer shell decides what iconification means.
	RequestIconify Signal[*Window]

	id    uuid.UUID
	env   *Env
	style WindowStyle

	content   *Content
	titlebar  *Titlebar
	resizebar *Resizebar
	box       *Box
	bordered  *Bordered
	menu      *Menu

	workspace *Workspace

	properties      WindowProperties
	activated       bool
	maximized       bool
	fullscreen      bool
	shaded          bool
	decorated       bool
	preferredOutput Output

	savedRect   image.Rectangle
	pendingPos  []pendingPosition
	pendingMax  uint32
	pendingFull uint32
}

// NewWindow decorates content into a window.
func NewWindow(content *Content, style WindowStyle, env *Env) *Window {
	w := &Window{
		id:         uuid.New(),
		env:        env,
		style:      style,
		content:    content,
		properties: WindowPropertiesDefault,
		decorated:  true,
	}
	w.InitContainer(w)

	w.titlebar = NewTitlebar(style.Titlebar)
	w.resizebar = NewResizebar(style.Resizebar, env)

	w.box = NewBox(Vertical, 0)
	w.box.Append(w.titlebar)
	w.box.Append(content)
	w.box.Append(w.resizebar)

	w.bordered = NewBordered(w.box, style.BorderWidth, style.BorderColor)
	w.Add(w.bordered)

	w.menu = NewMenu(style.Menu)
	w.Add(w.menu)

	w.titlebar.CloseClicked.Connect(func(struct{}) { w.RequestClose() })
	w.titlebar.IconifyClicked.Connect(func(struct{}) { w.RequestIconify.Emit(w) })
	w.titlebar.DragStarted.Connect(func(struct{}) {
		if w.workspace != nil {
			w.workspace.BeginWindowMove(w)
		}
	})
	w.titlebar.ShadeToggled.Connect(func(struct{}) { w.RequestShaded(!w.shaded) })
	w.resizebar.ResizeStarted.Connect(func(edges Edges) {
		if w.workspace != nil && w.properties&WindowPropertyResizable != 0 {
			w.workspace.BeginWindowResize(w, edges)
		}
	})

	content.SerialCommitted.Connect(w.commitPosition)
	content.CommittedMaximized.Connect(w.commitMaximized)
	content.CommittedFullscreen.Connect(w.commitFullscreen)
	content.TitleChanged.Connect(w.titlebar.SetTitle)
	content.Surface().Committed.Connect(func(*Surface) { w.syncDecorationWidths() })

	w.syncDecorationWidths()
	return w
}

// ID is the window's stable identity, used by the inspection surfaces.
func (w *Window) ID() uuid.UUID { return w.id }

// Content returns the wrapped content.
func (w *Window) Content() *Content { return w.content }

// Workspace returns the workspace the window is mapped on, nil when
// unmapped.
func (w *Window) Workspace() *Workspace { return w.workspace }

// Title returns the client's title.
func (w *Window) Title() string { return w.content.Title() }

// Activated reports whether the window holds activation.
func (w *Window) Activated() bool { return w.activated }

// Maximized reports the committed maximize state.
func (w *Window) Maximized() bool { return w.maximized }

// Fullscreen reports the committed fullscreen state.
func (w *Window) Fullscreen() bool { return w.fullscreen }

// Shaded reports whether the window is rolled up to its titlebar.
func (w *Window) Shaded() bool { return w.shaded }

// SetPreferredOutput pins maximize/fullscreen extents to an output.
func (w *Window) SetPreferredOutput(output Output) { w.preferredOutput = output }

// PreferredOutput returns the pinned output, nil for the primary.
func (w *Window) PreferredOutput() Output { return w.preferredOutput }

// SetActivated propagates activation to the content and the titlebar
// visuals.
func (w *Window) SetActivated(activated bool) {
	if w.activated == activated {
		return
	}
	w.activated = activated
	w.content.SetActivated(activated)
	w.titlebar.SetActivated(activated)
	w.ActivatedChanged.Emit(w)
}

// RequestClose forwards the close request to the client.
func (w *Window) RequestClose() {
	if w.properties&WindowPropertyClosable == 0 {
		return
	}
	w.content.RequestClose()
	w.RequestCloseEvent.Emit(w)
}

// RequestSize asks the client for a new content size. Decorations
// follow once the client commits.
func (w *Window) RequestSize(width, height int) uint32 {
	return w.content.RequestSize(width, height)
}

// RequestPositionAndSize asks for a new content size and applies the
// position once the matching commit arrives. Used by resizes from the
// top or left edges, where moving early would detach the grabbed
// border from the pointer.
func (w *Window) RequestPositionAndSize(x, y, width, height int) uint32 {
	serial := w.content.RequestSize(width, height)
	w.pendingPos = append(w.pendingPos, pendingPosition{serial: serial, x: x, y: y})
	return serial
}

// RequestMaximized asks the client to maximize onto the workspace's
// maximize extents, or to restore the saved rectangle.
func (w *Window) RequestMaximized(maximized bool) {
	if w.maximized == maximized || w.fullscreen {
		return
	}
	if maximized {
		w.saveRect()
		extents := w.maximizeExtents()
		inner := w.innerSizeFor(extents)
		w.pendingPos = append(w.pendingPos,
			pendingPosition{serial: w.content.RequestSize(inner.Dx(), inner.Dy()), x: extents.Min.X, y: extents.Min.Y})
		w.pendingMax = w.content.RequestMaximized(true)
	} else {
		inner := w.innerSizeFor(w.savedRect)
		w.pendingPos = append(w.pendingPos,
			pendingPosition{serial: w.content.RequestSize(inner.Dx(), inner.Dy()), x: w.savedRect.Min.X, y: w.savedRect.Min.Y})
		w.pendingMax = w.content.RequestMaximized(false)
	}
}

// RequestFullscreen asks the client to cover the output. On commit the
// workspace promotes the window into its fullscreen container and the
// decorations disappear.
func (w *Window) RequestFullscreen(fullscreen bool) {
	if w.fullscreen == fullscreen {
		return
	}
	if fullscreen {
		if !w.maximized {
			w.saveRect()
		}
		extents := w.fullscreenExtents()
		w.pendingPos = append(w.pendingPos,
			pendingPosition{serial: w.content.RequestSize(extents.Dx(), extents.Dy()), x: extents.Min.X, y: extents.Min.Y})
		w.pendingFull = w.content.RequestFullscreen(true)
	} else {
		inner := w.innerSizeFor(w.savedRect)
		w.pendingPos = append(w.pendingPos,
			pendingPosition{serial: w.content.RequestSize(inner.Dx(), inner.Dy()), x: w.savedRect.Min.X, y: w.savedRect.Min.Y})
		w.pendingFull = w.content.RequestFullscreen(false)
	}
}

// RequestShaded rolls the window up to its titlebar, or unrolls it.
// Purely server-side; no client round trip.
func (w *Window) RequestShaded(shaded bool) {
	if w.shaded == shaded || w.fullscreen || !w.decorated {
		return
	}
	w.shaded = shaded
	w.content.SetVisible(!shaded)
	w.resizebar.SetVisible(!shaded && w.resizebarWanted())
	w.StateChanged.Emit(w)
}

// SetProperties re-evaluates which decorations are present.
func (w *Window) SetProperties(properties WindowProperties) {
	w.properties = properties
	w.titlebar.SetButtonsVisible(
		properties&WindowPropertyIconifiable != 0,
		properties&WindowPropertyClosable != 0,
	)
	w.resizebar.SetVisible(w.resizebarWanted() && !w.shaded)
}

// Properties returns the current property mask.
func (w *Window) Properties() WindowProperties { return w.properties }

// SetServerSideDecorated toggles the whole decoration set.
func (w *Window) SetServerSideDecorated(decorated bool) {
	if w.decorated == decorated {
		return
	}
	w.decorated = decorated
	w.titlebar.SetVisible(decorated && !w.fullscreen)
	w.resizebar.SetVisible(decorated && w.resizebarWanted() && !w.shaded)
	w.bordered.SetBorderVisible(decorated && !w.fullscreen)
}

// ServerSideDecorated reports whether decorations are shown.
func (w *Window) ServerSideDecorated() bool { return w.decorated }

// MenuSetEnabled shows the window menu at the last pointer position,
// in rightclick mode, or hides it again.
func (w *Window) MenuSetEnabled(enabled bool) {
	if enabled {
		if ev, ok := w.LastPointerMotion(); ok {
			w.menu.SetPosition(int(ev.X), int(ev.Y))
		}
		w.menu.SetMode(MenuModeRightclick)
		w.RaiseToTop(w.menu)
	}
	w.menu.SetOpen(enabled)
}

// Menu returns the window menu so shells can populate it.
func (w *Window) Menu() *Menu { return w.menu }

// PointerButton opens the window menu on a right button press when the
// rightclick property is set.
func (w *Window) PointerButton(ev ButtonEvent) bool {
	if ev.Code == BtnRight && ev.State == ButtonPressed &&
		w.properties&WindowPropertyRightclick != 0 && !w.menu.Open() {
		w.MenuSetEnabled(true)
		return true
	}
	return w.Container.PointerButton(ev)
}

// commitPosition applies the most recent pending position whose
// request serial the client acknowledged.
func (w *Window) commitPosition(serial uint32) {
	var (
		pos   pendingPosition
		found bool
	)
	rest := w.pendingPos[:0]
	for _, p := range w.pendingPos {
		if p.serial <= serial {
			pos = p
			found = true
		} else {
			rest = append(rest, p)
		}
	}
	w.pendingPos = rest
	if found {
		w.SetPosition(pos.x, pos.y)
	}
}

func (w *Window) commitMaximized(maximized bool) {
	if w.maximized == maximized {
		return
	}
	w.maximized = maximized
	logrus.WithFields(logrus.Fields{
		"window":    w.id,
		"maximized": maximized,
	}).Debugln("Window maximize committed")
	w.StateChanged.Emit(w)
}

func (w *Window) commitFullscreen(fullscreen bool) {
	if w.fullscreen == fullscreen {
		return
	}
	w.fullscreen = fullscreen
	w.titlebar.SetVisible(!fullscreen && w.decorated)
	w.resizebar.SetVisible(!fullscreen && w.decorated && w.resizebarWanted() && !w.shaded)
	w.bordered.SetBorderVisible(!fullscreen && w.decorated)
	if w.workspace != nil {
		w.workspace.WindowToFullscreen(w, fullscreen)
	}
	logrus.WithFields(logrus.Fields{
		"window":     w.id,
		"fullscreen": fullscreen,
	}).Debugln("Window fullscreen committed")
	w.StateChanged.Emit(w)
}

// Geometry is the window's current placement: position plus the size
// of its decorated bounding box.
func (w *Window) Geometry() image.Rectangle {
	x, y := w.Position()
	dim := w.bordered.Dimensions()
	return image.Rect(x, y, x+dim.Dx(), y+dim.Dy())
}

// ContentSize is the committed size of the client content.
func (w *Window) ContentSize() (int, int) {
	dim := w.content.Dimensions()
	return dim.Dx(), dim.Dy()
}

func (w *Window) saveRect() {
	w.savedRect = w.Geometry()
}

// innerSizeFor converts an outer extents box into the content size
// that, once decorated, fills it.
func (w *Window) innerSizeFor(extents image.Rectangle) image.Rectangle {
	width := extents.Dx()
	height := extents.Dy()
	if w.decorated {
		width -= 2 * w.style.BorderWidth
		height -= 2*w.style.BorderWidth + w.style.Titlebar.Height
		if w.resizebarWanted() {
			height -= w.style.Resizebar.Height
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return image.Rect(0, 0, width, height)
}

func (w *Window) resizebarWanted() bool {
	return w.properties&WindowPropertyResizable != 0 && !w.fullscreen
}

func (w *Window) maximizeExtents() image.Rectangle {
	if w.workspace != nil {
		return w.workspace.MaximizeExtents(w.preferredOutput)
	}
	return w.Geometry()
}

func (w *Window) fullscreenExtents() image.Rectangle {
	if w.workspace != nil {
		return w.workspace.FullscreenExtents(w.preferredOutput)
	}
	return w.Geometry()
}

// syncDecorationWidths keeps titlebar and resizebar as wide as the
// content.
func (w *Window) syncDecorationWidths() {
	width := w.content.Dimensions().Dx()
	w.titlebar.SetWidth(width)
	w.resizebar.SetWidth(width)
}

func (w *Window) Destroy() {
	w.StateChanged.DisconnectAll()
	w.ActivatedChanged.DisconnectAll()
	w.RequestCloseEvent.DisconnectAll()
	w.RequestIconify.DisconnectAll()
	w.Container.Destroy()
}
