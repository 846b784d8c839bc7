package toolkit

import (
	"image"
)

// Resizebar is the bar below a window's content. Its three hit zones
// map to resize edge masks: left corner to LEFT|BOTTOM, center to
// BOTTOM, right corner to RIGHT|BOTTOM.
type Resizebar struct {
	Box

	// ResizeStarted fires when a left button goes down on a zone,
	// carrying the zone's edge mask.
	ResizeStarted Signal[Edges]

	style ResizebarStyle
	env   *Env

	left   *resizebarArea
	center *resizebarArea
	right  *resizebarArea

	width int
}

// NewResizebar creates the bar. env provides the cursor sink for the
// per-zone resize cursors.
func NewResizebar(style ResizebarStyle, env *Env) *Resizebar {
	r := &Resizebar{style: style, env: env}
	r.InitBox(r, Horizontal, 0)

	r.left = newResizebarArea(r, EdgeLeft|EdgeBottom, CursorResizeSouthWest)
	r.center = newResizebarArea(r, EdgeBottom, CursorResizeSouth)
	r.right = newResizebarArea(r, EdgeRight|EdgeBottom, CursorResizeSouthEast)
	r.Append(r.left)
	r.Append(r.center)
	r.Append(r.right)
	return r
}

// SetWidth resizes the bar and re-renders its zones.
func (r *Resizebar) SetWidth(width int) {
	if r.width == width {
		return
	}
	r.width = width
	r.redraw()
}

func (r *Resizebar) Dimensions() image.Rectangle {
	return image.Rect(0, 0, r.width, r.style.Height)
}

func (r *Resizebar) redraw() {
	if r.width <= 0 {
		return
	}
	height := r.style.Height
	corner := r.style.CornerWidth
	if 2*corner > r.width {
		corner = r.width / 2
	}
	background := r.style.Fill.Render(r.width, height)

	renderZone := func(x0, x1 int) *image.RGBA {
		zone := cropRGBA(background, image.Rect(x0, 0, x1, height))
		DrawBezel(zone, r.style.BezelWidth, true)
		return zone
	}
	r.left.SetImage(renderZone(0, corner))
	r.center.SetImage(renderZone(corner, r.width-corner))
	r.right.SetImage(renderZone(r.width-corner, r.width))
	r.UpdateLayout()
}

// resizebarArea is one hit zone of the bar.
type resizebarArea struct {
	BufferElement

	bar    *Resizebar
	edges  Edges
	cursor CursorShape
}

func newResizebarArea(bar *Resizebar, edges Edges, cursor CursorShape) *resizebarArea {
	a := &resizebarArea{bar: bar, edges: edges, cursor: cursor}
	a.InitElement(a)
	a.PointerEnter.Connect(func(PointerMotionEvent) {
		bar.env.SetCursorShape(cursor)
	})
	a.PointerLeave.Connect(func(struct{}) {
		bar.env.SetCursorShape(CursorDefault)
	})
	return a
}

func (a *resizebarArea) PointerButton(ev ButtonEvent) bool {
	if ev.Code != BtnLeft {
		return false
	}
	switch ev.State {
	case ButtonPressed:
		a.bar.ResizeStarted.Emit(a.edges)
		return true
	case ButtonReleased, ButtonClick:
		return true
	}
	return false
}

func (r *Resizebar) Destroy() {
	r.ResizeStarted.DisconnectAll()
	r.Box.Destroy()
}
