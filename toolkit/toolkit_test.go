package toolkit

import (
	"image"

	"github.com/mstarongithub/stepwm/scene/scenetest"
)

// probe is a fixed-size element recording every event delivered to it.
type probe struct {
	ElementBase
	width, height int

	motions     []PointerMotionEvent
	buttons     []ButtonEvent
	axes        []AxisEvent
	keys        []KeyEvent
	enters      int
	leaves      int
	grabCancels int
	blurs       int

	consumeButtons bool
	consumeKeys    bool
}

func newProbe(width, height int) *probe {
	p := &probe{width: width, height: height}
	p.InitElement(p)
	p.PointerEnter.Connect(func(PointerMotionEvent) { p.enters++ })
	p.PointerLeave.Connect(func(struct{}) { p.leaves++ })
	return p
}

func (p *probe) Dimensions() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

func (p *probe) PointerMotion(ev PointerMotionEvent) bool {
	inside := p.ElementBase.PointerMotion(ev)
	p.motions = append(p.motions, ev)
	return inside
}

func (p *probe) PointerButton(ev ButtonEvent) bool {
	p.buttons = append(p.buttons, ev)
	return p.consumeButtons
}

func (p *probe) PointerAxis(ev AxisEvent) bool {
	p.axes = append(p.axes, ev)
	return p.consumeButtons
}

func (p *probe) PointerGrabCancel() { p.grabCancels++ }

func (p *probe) Keyboard(ev KeyEvent) bool {
	p.keys = append(p.keys, ev)
	return p.consumeKeys
}

func (p *probe) KeyboardBlur() { p.blurs++ }

func motionAt(x, y float64) PointerMotionEvent {
	return PointerMotionEvent{X: x, Y: y}
}

type fakeOutput struct {
	name string
	box  image.Rectangle
}

func (o *fakeOutput) Name() string         { return o.name }
func (o *fakeOutput) Box() image.Rectangle { return o.box }
func (o *fakeOutput) Scale() float64       { return 1 }
func (o *fakeOutput) Transform() int       { return 0 }

type fakeLayout struct {
	outs    []Output
	changed Signal[struct{}]
}

func (l *fakeLayout) Outputs() []Output         { return l.outs }
func (l *fakeLayout) Changed() *Signal[struct{}] { return &l.changed }

func (l *fakeLayout) set(outs ...Output) {
	l.outs = outs
	l.changed.Emit(struct{}{})
}

// attach hangs the element off a fresh fake scene and returns the
// tree for stacking assertions.
func attach(t interface{ Fatalf(string, ...any) }, e Element) *scenetest.Tree {
	tree := scenetest.NewTree()
	if err := e.AttachToScene(tree); err != nil {
		t.Fatalf("AttachToScene: %v", err)
	}
	return tree
}
