// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

import (
	"image"
)

// LayerKind names the four stacking layers a workspace carries, bottom
// to top.
type LayerKind int

const (
	LayerBackground LayerKind = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// Layer holds the panels of one layer-shell layer across all outputs.
// Panels are laid out per output, in insertion order, each one possibly
// shrinking the usable region for those after it.
type Layer struct {
	Container

	kind    LayerKind
	layout  OutputLayout
	panels  []*Panel
	tracker *OutputTracker
}

// NewLayer creates the layer and starts tracking the output layout.
func NewLayer(kind LayerKind, layout OutputLayout) *Layer {
	l := &Layer{kind: kind, layout: layout}
	l.InitContainer(l)
	l.tracker = NewOutputTracker(layout,
		func(out Output) any { l.reflow(); return nil },
		func(out Output, token any) { l.reflow() },
		func(out Output, token any) { l.evacuate(out) },
	)
	return l
}

// Kind returns which of the four layers this is.
func (l *Layer) Kind() LayerKind { return l.kind }

// AddPanel places panel into the layer and runs a layout pass.
func (l *Layer) AddPanel(panel *Panel) {
	l.panels = append(l.panels, panel)
	l.Add(panel)
	l.reflow()
}

// RemovePanel detaches panel and reflows the remaining ones.
func (l *Layer) RemovePanel(panel *Panel) {
	for i, p := range l.panels {
		if p == panel {
			l.panels = append(l.panels[:i], l.panels[i+1:]...)
			break
		}
	}
	l.Remove(panel)
	l.reflow()
}

// Panels returns the layer's panels in layout order.
func (l *Layer) Panels() []*Panel { return l.panels }

// Reflow recomputes every panel's placement. Called on output layout
// changes and panel membership changes.
func (l *Layer) Reflow() { l.reflow() }

func (l *Layer) reflow() {
	primary := PrimaryOutput(l.layout)
	for _, out := range l.layout.Outputs() {
		usable := out.Box()
		for _, panel := range l.panels {
			target := panel.output
			if target == nil {
				target = primary
			}
			if target != out {
				continue
			}
			usable = l.placePanel(panel, usable)
		}
	}
}

// placePanel positions one panel inside the usable region and returns
// the region left for panels after it.
func (l *Layer) placePanel(panel *Panel, usable image.Rectangle) image.Rectangle {
	pos := panel.positioner

	inner := image.Rect(
		usable.Min.X+pos.MarginLeft,
		usable.Min.Y+pos.MarginTop,
		usable.Max.X-pos.MarginRight,
		usable.Max.Y-pos.MarginBottom,
	)

	width := pos.Width
	if width == 0 {
		width = inner.Dx()
	}
	height := pos.Height
	if height == 0 {
		height = inner.Dy()
	}

	var x, y int
	switch {
	case pos.Anchor&AnchorLeft != 0 && pos.Anchor&AnchorRight != 0:
		x = inner.Min.X + (inner.Dx()-width)/2
	case pos.Anchor&AnchorLeft != 0:
		x = inner.Min.X
	case pos.Anchor&AnchorRight != 0:
		x = inner.Max.X - width
	default:
		x = inner.Min.X + (inner.Dx()-width)/2
	}
	switch {
	case pos.Anchor&AnchorTop != 0 && pos.Anchor&AnchorBottom != 0:
		y = inner.Min.Y + (inner.Dy()-height)/2
	case pos.Anchor&AnchorTop != 0:
		y = inner.Min.Y
	case pos.Anchor&AnchorBottom != 0:
		y = inner.Max.Y - height
	default:
		y = inner.Min.Y + (inner.Dy()-height)/2
	}

	placed := image.Rect(x, y, x+width, y+height)
	if confirmer, ok := panel.self.(dimensionConfirmer); ok {
		placed = confirmer.ConfirmDimensions(usable, placed)
	}
	panel.applyDimensions(placed)

	if pos.ExclusiveZone > 0 {
		usable = shrinkExclusive(usable, pos.Anchor, pos.ExclusiveZone)
	}
	return usable
}

// shrinkExclusive removes the exclusive zone from the usable region
// along the panel's anchored edge.
func shrinkExclusive(usable image.Rectangle, anchor Anchor, zone int) image.Rectangle {
	switch {
	case anchor&AnchorTop != 0 && anchor&AnchorBottom == 0:
		usable.Min.Y += zone
	case anchor&AnchorBottom != 0 && anchor&AnchorTop == 0:
		usable.Max.Y -= zone
	case anchor&AnchorLeft != 0 && anchor&AnchorRight == 0:
		usable.Min.X += zone
	case anchor&AnchorRight != 0 && anchor&AnchorLeft == 0:
		usable.Max.X -= zone
	}
	return usable
}

// evacuate reassigns panels of a removed output to the primary.
func (l *Layer) evacuate(out Output) {
	for _, panel := range l.panels {
		if panel.output == out {
			panel.output = nil
		}
	}
	l.reflow()
}

func (l *Layer) Destroy() {
	if l.tracker != nil {
		l.tracker.Destroy()
		l.tracker = nil
	}
	l.Container.Destroy()
}
