package toolkit

import (
	"image"
	"testing"
)

func TestLayerTopAnchoredBar(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)},
	}}
	layer := NewLayer(LayerTop, layout)

	bar := NewPanel(PanelPositioner{
		Anchor: AnchorTop | AnchorLeft | AnchorRight,
		Height: 30,
	})
	layer.AddPanel(bar)

	x, y := bar.Position()
	if x != 0 || y != 0 {
		t.Errorf("bar position = (%d,%d), want (0,0)", x, y)
	}
	dim := bar.Dimensions()
	if dim.Dx() != 1000 || dim.Dy() != 30 {
		t.Errorf("bar size = %dx%d, want 1000x30", dim.Dx(), dim.Dy())
	}
}

func TestLayerExclusiveZoneShrinksLaterPanels(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)},
	}}
	layer := NewLayer(LayerTop, layout)

	bar := NewPanel(PanelPositioner{
		Anchor:        AnchorTop | AnchorLeft | AnchorRight,
		Height:        30,
		ExclusiveZone: 30,
	})
	fill := NewPanel(PanelPositioner{
		Anchor: AnchorTop | AnchorBottom | AnchorLeft | AnchorRight,
	})
	layer.AddPanel(bar)
	layer.AddPanel(fill)

	_, y := fill.Position()
	if y != 30 {
		t.Errorf("second panel y = %d, want 30 below the exclusive bar", y)
	}
	dim := fill.Dimensions()
	if dim.Dx() != 1000 || dim.Dy() != 570 {
		t.Errorf("second panel size = %dx%d, want 1000x570", dim.Dx(), dim.Dy())
	}
}

func TestLayerMarginsAndCorner(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)},
	}}
	layer := NewLayer(LayerBottom, layout)

	dock := NewPanel(PanelPositioner{
		Anchor:       AnchorBottom | AnchorRight,
		Width:        64,
		Height:       64,
		MarginRight:  10,
		MarginBottom: 5,
	})
	layer.AddPanel(dock)

	x, y := dock.Position()
	if x != 1000-10-64 || y != 600-5-64 {
		t.Errorf("dock position = (%d,%d), want (926,531)", x, y)
	}
}

func TestLayerCentersUnanchoredAxis(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)},
	}}
	layer := NewLayer(LayerOverlay, layout)

	osd := NewPanel(PanelPositioner{
		Anchor: AnchorBottom,
		Width:  200,
		Height: 50,
	})
	layer.AddPanel(osd)

	x, y := osd.Position()
	if x != 400 {
		t.Errorf("osd x = %d, want horizontally centered at 400", x)
	}
	if y != 550 {
		t.Errorf("osd y = %d, want 550", y)
	}
}

func TestLayerPanelPinnedToSecondOutput(t *testing.T) {
	o1 := &fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)}
	o2 := &fakeOutput{name: "O2", box: image.Rect(1000, 0, 1800, 600)}
	layout := &fakeLayout{outs: []Output{o1, o2}}
	layer := NewLayer(LayerTop, layout)

	bar := NewPanel(PanelPositioner{
		Anchor: AnchorTop | AnchorLeft | AnchorRight,
		Height: 20,
	})
	bar.SetOutput(o2)
	layer.AddPanel(bar)

	x, y := bar.Position()
	if x != 1000 || y != 0 {
		t.Errorf("pinned bar position = (%d,%d), want (1000,0)", x, y)
	}
	if dim := bar.Dimensions(); dim.Dx() != 800 {
		t.Errorf("pinned bar width = %d, want 800", dim.Dx())
	}
}

func TestLayerEvacuatesRemovedOutput(t *testing.T) {
	o1 := &fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)}
	o2 := &fakeOutput{name: "O2", box: image.Rect(1000, 0, 1800, 600)}
	layout := &fakeLayout{outs: []Output{o1, o2}}
	layer := NewLayer(LayerTop, layout)

	bar := NewPanel(PanelPositioner{
		Anchor: AnchorTop | AnchorLeft | AnchorRight,
		Height: 20,
	})
	bar.SetOutput(o2)
	layer.AddPanel(bar)

	layout.set(o1)
	if bar.Output() != nil {
		t.Error("panel still pinned to the removed output")
	}
	x, _ := bar.Position()
	if x != 0 {
		t.Errorf("evacuated bar x = %d, want 0 on the primary", x)
	}
}

func TestLayerRemovePanelReflows(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 1000, 600)},
	}}
	layer := NewLayer(LayerTop, layout)

	bar := NewPanel(PanelPositioner{
		Anchor:        AnchorTop | AnchorLeft | AnchorRight,
		Height:        30,
		ExclusiveZone: 30,
	})
	fill := NewPanel(PanelPositioner{
		Anchor: AnchorTop | AnchorBottom | AnchorLeft | AnchorRight,
	})
	layer.AddPanel(bar)
	layer.AddPanel(fill)

	layer.RemovePanel(bar)
	_, y := fill.Position()
	if y != 0 {
		t.Errorf("remaining panel y = %d, want 0 after the bar left", y)
	}
	if dim := fill.Dimensions(); dim.Dy() != 600 {
		t.Errorf("remaining panel height = %d, want 600", dim.Dy())
	}
}
