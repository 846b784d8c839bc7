// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image"
	"image/draw"
)

// Titlebar is the decoration bar above a window's content: an iconify
// button, the title area and a close button, drawn over one continuous
// fill. It re-renders on width, activation or title changes.
type Titlebar struct {
	Box

	// IconifyClicked fires when the iconify button is clicked.
	IconifyClicked Signal[struct{}]
	// CloseClicked fires when the close button is clicked.
	CloseClicked Signal[struct{}]
	// DragStarted fires when a left button goes down on the title
	// area; the window translates it into a move.
	DragStarted Signal[struct{}]
	// ShadeToggled fires on a double click on the title area.
	ShadeToggled Signal[struct{}]

	style TitlebarStyle

	iconify *TitlebarButton
	area    *titlebarArea
	close   *TitlebarButton

	width     int
	activated bool
	title     string

	showIconify bool
	showClose   bool
}

// NewTitlebar creates a titlebar with both buttons shown.
func NewTitlebar(style TitlebarStyle) *Titlebar {
	t := &Titlebar{
		style:       style,
		showIconify: true,
		showClose:   true,
	}
	t.InitBox(t, Horizontal, 0)

	t.iconify = NewTitlebarButton(TitlebarButtonIconify)
	t.area = newTitlebarArea(t)
	t.close = NewTitlebarButton(TitlebarButtonClose)
	t.Append(t.iconify)
	t.Append(t.area)
	t.Append(t.close)

	t.iconify.Clicked.Connect(func(*Button) { t.IconifyClicked.Emit(struct{}{}) })
	t.close.Clicked.Connect(func(*Button) { t.CloseClicked.Emit(struct{}{}) })
	return t
}

// SetWidth resizes the bar and re-renders the decoration.
func (t *Titlebar) SetWidth(width int) {
	if t.width == width {
		return
	}
	t.width = width
	t.redraw()
}

// SetActivated switches between the focused and blurred looks.
func (t *Titlebar) SetActivated(activated bool) {
	if t.activated == activated {
		return
	}
	t.activated = activated
	t.redraw()
}

// SetTitle updates the shown title text.
func (t *Titlebar) SetTitle(title string) {
	if t.title == title {
		return
	}
	t.title = title
	t.redraw()
}

// SetButtonsVisible controls which buttons are present; driven by the
// window's property mask.
func (t *Titlebar) SetButtonsVisible(iconify, close bool) {
	t.showIconify = iconify
	t.showClose = close
	t.iconify.SetVisible(iconify)
	t.close.SetVisible(close)
	t.redraw()
}

func (t *Titlebar) Dimensions() image.Rectangle {
	return image.Rect(0, 0, t.width, t.style.Height)
}

func (t *Titlebar) redraw() {
	if t.width <= 0 {
		return
	}
	height := t.style.Height
	fill := t.style.BlurredFill
	text := t.style.BlurredText
	if t.activated {
		fill = t.style.FocusedFill
		text = t.style.FocusedText
	}
	background := fill.Render(t.width, height)

	areaX0, areaX1 := 0, t.width
	if t.showIconify && t.width >= height {
		t.iconify.Redraw(cropRGBA(background, image.Rect(0, 0, height, height)), t.style.BezelWidth, text)
		areaX0 = height
	}
	if t.showClose && t.width >= 2*height {
		t.close.Redraw(cropRGBA(background, image.Rect(t.width-height, 0, t.width, height)), t.style.BezelWidth, text)
		areaX1 = t.width - height
	}
	if areaX1 < areaX0 {
		areaX1 = areaX0
	}

	area := cropRGBA(background, image.Rect(areaX0, 0, areaX1, height))
	DrawBezel(area, t.style.BezelWidth, true)
	if t.style.TextRenderer != nil && t.title != "" {
		if rendered := t.style.TextRenderer(t.title, areaX1-areaX0, height, text); rendered != nil {
			draw.Draw(area, area.Bounds(), rendered, image.Point{}, draw.Over)
		}
	}
	t.area.SetImage(area)
	t.UpdateLayout()
}

// cropRGBA copies the given region of src into a fresh buffer anchored
// at the origin.
func cropRGBA(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// titlebarArea is the text area between the titlebar buttons. Dragging
// it moves the window; double clicking shades it.
type titlebarArea struct {
	BufferElement

	bar *Titlebar
}

func newTitlebarArea(bar *Titlebar) *titlebarArea {
	a := &titlebarArea{bar: bar}
	a.InitElement(a)
	return a
}

func (a *titlebarArea) PointerButton(ev ButtonEvent) bool {
	if ev.Code != BtnLeft {
		return false
	}
	switch ev.State {
	case ButtonPressed:
		a.bar.DragStarted.Emit(struct{}{})
		return true
	case ButtonReleased:
		return true
	case ButtonDoubleClick:
		a.bar.ShadeToggled.Emit(struct{}{})
		return true
	}
	return false
}

func (t *Titlebar) Destroy() {
	t.IconifyClicked.DisconnectAll()
	t.CloseClicked.DisconnectAll()
	t.DragStarted.DisconnectAll()
	t.ShadeToggled.DisconnectAll()
	t.Box.Destroy()
}
