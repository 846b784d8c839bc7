// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mstarongithub/stepwm/scene"
	"github.com/mstarongithub/stepwm/toolkit"
	"github.com/swaywm/go-wlroots/wlroots"
)

// sceneNode adapts a wlroots scene node to the toolkit node contract.
type sceneNode struct {
	node    wlroots.SceneNode
	visible bool
}

func (n *sceneNode) init(node wlroots.SceneNode) {
	n.node = node
	n.visible = true
}

func (n *sceneNode) SetPosition(x, y int) {
	n.node.SetPosition(float64(x), float64(y))
}

func (n *sceneNode) Position() (int, int) {
	return n.node.X(), n.node.Y()
}

func (n *sceneNode) SetVisible(visible bool) {
	n.visible = visible
	n.node.SetEnabled(visible)
}

func (n *sceneNode) Visible() bool { return n.visible }

func (n *sceneNode) RaiseToTop() { n.node.RaiseToTop() }

func (n *sceneNode) PlaceBelow(sibling scene.Node) {
	n.node.PlaceBelow(sibling.(*sceneNode).node)
}

func (n *sceneNode) Destroy() { n.node.Destroy() }

// sceneTree adapts a wlroots scene tree.
type sceneTree struct {
	tree wlroots.SceneTree
	node sceneNode
}

func wrapSceneTree(tree wlroots.SceneTree) *sceneTree {
	t := &sceneTree{tree: tree}
	t.node.init(tree.Node())
	return t
}

func (t *sceneTree) Node() scene.Node { return &t.node }

func (t *sceneTree) NewTree() (scene.Tree, error) {
	return wrapSceneTree(t.tree.NewSceneTree()), nil
}

func (t *sceneTree) NewRect(width, height int, c color.RGBA) (scene.Rect, error) {
	rect := &sceneRect{rect: t.tree.NewSceneRect(width, height, rgbaToF32(c))}
	rect.node.init(rect.rect.Node())
	return rect, nil
}

func (t *sceneTree) NewBuffer(img image.Image) (scene.Buffer, error) {
	rect, err := t.NewRect(0, 0, color.RGBA{})
	if err != nil {
		return nil, err
	}
	buf := &sceneImage{rect: rect.(*sceneRect)}
	buf.SetImage(img)
	return buf, nil
}

func (t *sceneTree) NewSurfaceNode(surface scene.ClientSurface) (scene.Node, error) {
	handle, ok := surface.(*xdgHandle)
	if !ok {
		return nil, fmt.Errorf("surface %T is not backed by an xdg surface", surface)
	}
	child := t.tree.NewXDGSurface(handle.xdg)
	node := &sceneNode{}
	node.init(child.Node())
	return node, nil
}

func (t *sceneTree) Destroy() { t.node.Destroy() }

// sceneRect adapts a wlroots scene rect.
type sceneRect struct {
	rect wlroots.SceneRect
	node sceneNode
}

func (r *sceneRect) Node() scene.Node { return &r.node }

func (r *sceneRect) SetSize(width, height int) { r.rect.SetSize(width, height) }

func (r *sceneRect) SetColor(c color.RGBA) { r.rect.SetColor(rgbaToF32(c)) }

func (r *sceneRect) Destroy() { r.node.Destroy() }

// sceneImage stands in for an image-backed node with a solid rect of
// the image's mean color.
// TODO: render the real pixels once go-wlroots grows a
// buffer-from-pixels path.
type sceneImage struct {
	rect *sceneRect
	img  image.Image
}

func (b *sceneImage) Node() scene.Node { return &b.rect.node }

func (b *sceneImage) SetImage(img image.Image) {
	b.img = img
	if img == nil {
		b.rect.SetSize(0, 0)
		return
	}
	bounds := img.Bounds()
	b.rect.SetSize(bounds.Dx(), bounds.Dy())
	b.rect.SetColor(meanColor(img))
}

func (b *sceneImage) Destroy() { b.rect.Destroy() }

func rgbaToF32(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 0xff,
		float32(c.G) / 0xff,
		float32(c.B) / 0xff,
		float32(c.A) / 0xff,
	}
}

func meanColor(img image.Image) color.RGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return color.RGBA{}
	}
	var r, g, b, a, n uint64
	// Sample a coarse grid, full iteration is wasted work for a mean.
	stepX := max(1, bounds.Dx()/16)
	stepY := max(1, bounds.Dy()/16)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
			n++
		}
	}
	return color.RGBA{
		R: uint8(r / n >> 8),
		G: uint8(g / n >> 8),
		B: uint8(b / n >> 8),
		A: uint8(a / n >> 8),
	}
}

// xdgHandle binds one xdg toplevel to the toolkit. It is both the
// client surface the toolkit observes and the request channel the
// toolkit configures the client through.
type xdgHandle struct {
	server   *Server
	xdg      wlroots.XDGSurface
	topLevel wlroots.XDGTopLevel

	// The bindings do not expose the acked configure serial, so the
	// handle hands out its own serials and treats every commit as
	// acknowledging the last one issued.
	issued uint32

	mapFns    []func()
	unmapFns  []func()
	commitFns []func()
}

func newXDGHandle(server *Server, xdg wlroots.XDGSurface) *xdgHandle {
	h := &xdgHandle{
		server:   server,
		xdg:      xdg,
		topLevel: xdg.TopLevel(),
	}
	xdg.OnMap(func(wlroots.XDGSurface) {
		for _, fn := range h.mapFns {
			fn()
		}
	})
	xdg.OnUnmap(func(wlroots.XDGSurface) {
		for _, fn := range h.unmapFns {
			fn()
		}
	})
	xdg.Surface().OnCommit(func(wlroots.Surface) {
		for _, fn := range h.commitFns {
			fn()
		}
	})
	return h
}

func (h *xdgHandle) nextSerial() uint32 {
	h.issued++
	return h.issued
}

// scene.ClientSurface

func (h *xdgHandle) CommittedSize() (int, int) {
	box := h.xdg.Geometry()
	return box.Width, box.Height
}

func (h *xdgHandle) CommittedSerial() uint32 { return h.issued }

func (h *xdgHandle) OnMap(fn func())    { h.mapFns = append(h.mapFns, fn) }
func (h *xdgHandle) OnUnmap(fn func())  { h.unmapFns = append(h.unmapFns, fn) }
func (h *xdgHandle) OnCommit(fn func()) { h.commitFns = append(h.commitFns, fn) }

func (h *xdgHandle) PointerMotion(x, y float64, timeMsec uint32) bool {
	surface := h.xdg.Surface()
	h.server.seat.NotifyPointerEnter(surface, x, y)
	h.server.seat.NotifyPointerMotion(timeMsec, x, y)
	return true
}

func (h *xdgHandle) PointerLeave() {
	h.server.seat.ClearPointerFocus()
}

func (h *xdgHandle) PointerButton(code uint32, pressed bool, timeMsec uint32) {
	state := wlroots.ButtonStateReleased
	if pressed {
		state = wlroots.ButtonStatePressed
	}
	h.server.seat.NotifyPointerButton(timeMsec, code, state)
}

func (h *xdgHandle) PointerAxis(orientation uint32, delta float64, deltaDiscrete int32, source uint32, timeMsec uint32) {
	h.server.seat.NotifyPointerAxis(timeMsec, wlroots.AxisOrientation(orientation), delta, deltaDiscrete, wlroots.AxisSource(source))
}

func (h *xdgHandle) KeyboardEnter() {
	h.server.seat.NotifyKeyboardEnter(h.xdg.Surface(), h.server.seat.Keyboard())
}

func (h *xdgHandle) KeyboardKey(code uint32, pressed bool, timeMsec uint32) {
	state := wlroots.KeyStateReleased
	if pressed {
		state = wlroots.KeyStatePressed
	}
	h.server.seat.NotifyKeyboardKey(timeMsec, code, state)
}

// toolkit.ContentClient

func (h *xdgHandle) RequestSize(width, height int) uint32 {
	h.topLevel.Base().TopLevelSetSize(uint32(width), uint32(height))
	return h.nextSerial()
}

func (h *xdgHandle) RequestClose() {
	h.topLevel.SendClose()
}

func (h *xdgHandle) RequestMaximized(maximized bool) uint32 {
	h.topLevel.SetMaximized(maximized)
	return h.nextSerial()
}

func (h *xdgHandle) RequestFullscreen(fullscreen bool) uint32 {
	h.topLevel.SetFullscreen(fullscreen)
	return h.nextSerial()
}

func (h *xdgHandle) SetActivated(activated bool) {
	h.topLevel.SetActivated(activated)
}

func (h *xdgHandle) AppID() string { return h.topLevel.AppID() }

func (h *xdgHandle) PID() int {
	// Client credentials are not exposed by the bindings.
	return 0
}

// serverOutput is one display in the server's layout. Boxes are
// assigned left to right in the order outputs appear, mirroring what
// AddOutputAuto does on the wlroots side.
type serverOutput struct {
	out *wlroots.Output
	box image.Rectangle
}

func (o *serverOutput) Name() string { return o.out.Name() }

func (o *serverOutput) Box() image.Rectangle { return o.box }

// Outputs run at scale 1; HiDPI scaling is not configured anywhere.
func (o *serverOutput) Scale() float64 { return 1 }

func (o *serverOutput) Transform() int { return 0 }

// serverLayout implements the toolkit's output layout over the
// server's set of enabled outputs.
type serverLayout struct {
	outputs []*serverOutput
	changed toolkit.Signal[struct{}]
}

func (l *serverLayout) Outputs() []toolkit.Output {
	outs := make([]toolkit.Output, len(l.outputs))
	for i, o := range l.outputs {
		outs[i] = o
	}
	return outs
}

func (l *serverLayout) Changed() *toolkit.Signal[struct{}] { return &l.changed }

func (l *serverLayout) add(out *wlroots.Output, width, height int) {
	l.outputs = append(l.outputs, &serverOutput{out: out})
	l.place(width, height)
	l.changed.Emit(struct{}{})
}

func (l *serverLayout) remove(out *wlroots.Output) {
	for i, o := range l.outputs {
		if o.out == out {
			l.outputs = append(l.outputs[:i], l.outputs[i+1:]...)
			l.place(0, 0)
			l.changed.Emit(struct{}{})
			return
		}
	}
}

// place lays the outputs out left to right. The newest output, if any,
// gets the passed size; the others keep theirs.
func (l *serverLayout) place(newWidth, newHeight int) {
	x := 0
	for i, o := range l.outputs {
		w, h := o.box.Dx(), o.box.Dy()
		if i == len(l.outputs)-1 && newWidth > 0 {
			w, h = newWidth, newHeight
		}
		o.box = image.Rect(x, 0, x+w, 0+h)
		x += w
	}
}

// cursorSink applies toolkit cursor shape requests to the xcursor
// manager.
type cursorSink struct {
	server *Server
}

func (c *cursorSink) SetCursorShape(shape toolkit.CursorShape) {
	c.server.cursor.SetXCursor(c.server.cursorMgr, shape.XCursorName())
}
