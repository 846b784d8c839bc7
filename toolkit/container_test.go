package toolkit

import (
	"testing"
)

func TestContainerAddSetsParentOnce(t *testing.T) {
	c := NewContainer()
	p := newProbe(10, 10)
	c.Add(p)

	if p.Parent() != c {
		t.Error("child's parent is not the container")
	}
	count := 0
	for _, child := range c.Children() {
		if child == Element(p) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("child appears %d times in the list, want 1", count)
	}
}

func TestContainerAddParentedPanics(t *testing.T) {
	a := NewContainer()
	b := NewContainer()
	p := newProbe(10, 10)
	a.Add(p)

	defer func() {
		if recover() == nil {
			t.Error("adding an already parented element must panic")
		}
	}()
	b.Add(p)
}

func TestContainerRemoveClearsParent(t *testing.T) {
	c := NewContainer()
	p := newProbe(10, 10)
	c.Add(p)
	c.Remove(p)

	if p.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	if c.Contains(p) {
		t.Error("container still lists the removed child")
	}
}

func TestContainerZOrder(t *testing.T) {
	c := NewContainer()
	a := newProbe(10, 10)
	b := newProbe(10, 10)
	d := newProbe(10, 10)

	c.Add(a)
	c.Add(b) // b above a
	c.AddAtop(b, d)

	children := c.Children()
	if len(children) != 3 {
		t.Fatalf("len(children) = %d, want 3", len(children))
	}
	if children[0] != Element(b) || children[1] != Element(d) || children[2] != Element(a) {
		t.Error("expected order [b d a] topmost first")
	}

	c.RaiseToTop(a)
	children = c.Children()
	if children[0] != Element(a) {
		t.Error("RaiseToTop did not move the child to the head")
	}
}

func TestContainerSceneStackingMatchesListOrder(t *testing.T) {
	c := NewContainer()
	a := newProbe(10, 10)
	b := newProbe(10, 10)
	c.Add(a)
	c.Add(b)
	tree := attach(t, c)

	if !tree.Above(b.SceneNode(), a.SceneNode()) {
		t.Error("topmost child is not above its sibling in the scene")
	}

	c.RaiseToTop(a)
	if !tree.Above(a.SceneNode(), b.SceneNode()) {
		t.Error("raised child is not above its previous sibling")
	}
}

func TestContainerAddAtopNilGoesToBottom(t *testing.T) {
	c := NewContainer()
	a := newProbe(10, 10)
	b := newProbe(10, 10)
	c.Add(a)
	c.AddAtop(nil, b)

	children := c.Children()
	if children[len(children)-1] != Element(b) {
		t.Error("AddAtop(nil) must push to the tail")
	}
}

func TestContainerPointerMotionPicksTopmostHit(t *testing.T) {
	c := NewContainer()
	bottom := newProbe(20, 20)
	top := newProbe(10, 10)
	c.Add(bottom)
	c.Add(top)

	if !c.PointerMotion(motionAt(5, 5)) {
		t.Fatal("motion inside both children must be consumed")
	}
	if top.enters != 1 {
		t.Errorf("top child enters = %d, want 1", top.enters)
	}
	if bottom.enters != 0 {
		t.Errorf("obstructed child enters = %d, want 0", bottom.enters)
	}
}

func TestContainerMotionSkipsChildrenOffThePoint(t *testing.T) {
	c := NewContainer()
	near := newProbe(10, 10)
	far := newProbe(10, 10)
	far.SetPosition(50, 0)
	c.Add(near)
	c.Add(far)

	c.PointerMotion(motionAt(5, 5))
	if len(far.motions) != 0 {
		t.Errorf("element off the pointer position saw %d motions, want 0", len(far.motions))
	}
	if len(near.motions) != 1 {
		t.Errorf("element under the pointer saw %d motions, want 1", len(near.motions))
	}
}

func TestContainerEnterLeaveOnObstruction(t *testing.T) {
	// An element turning invisible under the pointer yields leave on
	// it and enter on whatever it revealed.
	c := NewContainer()
	under := newProbe(20, 20)
	over := newProbe(20, 20)
	c.Add(under)
	c.Add(over)

	c.PointerMotion(motionAt(5, 5))
	if over.enters != 1 || under.enters != 0 {
		t.Fatalf("unexpected initial focus: over=%d under=%d", over.enters, under.enters)
	}

	over.SetVisible(false)
	if over.leaves != 1 {
		t.Errorf("hidden element leaves = %d, want 1", over.leaves)
	}
	if under.enters != 1 {
		t.Errorf("revealed element enters = %d, want 1", under.enters)
	}
}

func TestContainerLeavePrecedesEnter(t *testing.T) {
	c := NewContainer()
	left := newProbe(10, 10)
	right := newProbe(10, 10)
	right.SetPosition(10, 0)
	c.Add(left)
	c.Add(right)

	order := []string{}
	left.PointerLeave.Connect(func(struct{}) { order = append(order, "leave") })
	right.PointerEnter.Connect(func(PointerMotionEvent) { order = append(order, "enter") })

	c.PointerMotion(motionAt(5, 5))
	c.PointerMotion(motionAt(15, 5))

	if len(order) != 2 || order[0] != "leave" || order[1] != "enter" {
		t.Errorf("transition order = %v, want [leave enter]", order)
	}
}

func TestContainerMotionTranslatesToChildCoords(t *testing.T) {
	c := NewContainer()
	p := newProbe(10, 10)
	p.SetPosition(100, 50)
	c.Add(p)

	c.PointerMotion(motionAt(105, 53))
	if len(p.motions) == 0 {
		t.Fatal("child saw no motion")
	}
	last := p.motions[len(p.motions)-1]
	if last.X != 5 || last.Y != 3 {
		t.Errorf("child got (%v,%v), want (5,3)", last.X, last.Y)
	}
}

func TestContainerGrabExclusivity(t *testing.T) {
	c := NewContainer()
	grabber := newProbe(10, 10)
	other := newProbe(10, 10)
	other.SetPosition(50, 0)
	c.Add(grabber)
	c.Add(other)

	c.PointerMotion(motionAt(5, 5))
	c.PointerGrab(grabber)

	// Motion over the other element still reaches the grab holder,
	// translated, and the other element sees nothing.
	c.PointerMotion(motionAt(55, 5))
	if len(other.motions) != 0 {
		t.Error("non-grabbing element received motion during grab")
	}
	last := grabber.motions[len(grabber.motions)-1]
	if last.X != 55 || last.Y != 5 {
		t.Errorf("grab holder got (%v,%v), want (55,5)", last.X, last.Y)
	}
	if other.enters != 0 {
		t.Error("enter emitted on other element during grab")
	}

	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed})
	if len(grabber.buttons) == 0 {
		t.Error("grab holder missed the button event")
	}
	if len(other.buttons) != 0 {
		t.Error("non-grabbing element received a button during grab")
	}
}

func TestContainerGrabCancelOnCompetingGrab(t *testing.T) {
	c := NewContainer()
	first := newProbe(10, 10)
	second := newProbe(10, 10)
	c.Add(first)
	c.Add(second)

	c.PointerGrab(first)
	c.PointerGrab(second)
	if first.grabCancels != 1 {
		t.Errorf("previous grab holder cancels = %d, want 1", first.grabCancels)
	}
	if c.PointerGrabElement() != Element(second) {
		t.Error("grab did not move to the new holder")
	}
}

func TestContainerGrabPropagatesToParent(t *testing.T) {
	outer := NewContainer()
	inner := NewContainer()
	p := newProbe(10, 10)
	inner.Add(p)
	outer.Add(inner)

	inner.PointerGrab(p)
	if outer.PointerGrabElement() != Element(inner) {
		t.Error("grab did not propagate to the outer container")
	}

	inner.PointerGrabRelease(p)
	if outer.PointerGrabElement() != nil {
		t.Error("grab release did not propagate to the outer container")
	}
}

func TestContainerClickSynthesis(t *testing.T) {
	c := NewContainer()
	target := newProbe(10, 10)
	other := newProbe(10, 10)
	other.SetPosition(50, 0)
	c.Add(target)
	c.Add(other)

	c.PointerMotion(motionAt(5, 5))
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: 100})
	// Pointer wanders to the other element before release.
	c.PointerMotion(motionAt(55, 5))
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: 150})

	var clicks int
	for _, ev := range target.buttons {
		if ev.State == ButtonClick {
			clicks++
		}
	}
	if clicks != 1 {
		t.Errorf("press target saw %d CLICK events, want 1", clicks)
	}
	for _, ev := range other.buttons {
		if ev.State == ButtonClick {
			t.Error("CLICK went to the new pointer focus instead of the press target")
		}
	}
}

func TestContainerDoubleClickSynthesis(t *testing.T) {
	c := NewContainer()
	target := newProbe(10, 10)
	c.Add(target)
	c.PointerMotion(motionAt(5, 5))

	press := func(ts uint32) {
		c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: ts})
		c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: ts})
	}
	press(1000)
	press(1000 + DoubleClickIntervalMsec)

	var doubles int
	for _, ev := range target.buttons {
		if ev.State == ButtonDoubleClick {
			doubles++
		}
	}
	if doubles != 1 {
		t.Errorf("double clicks = %d, want 1", doubles)
	}

	// A third click right after must not chain into another double.
	press(1000 + 2*DoubleClickIntervalMsec)
	doubles = 0
	for _, ev := range target.buttons {
		if ev.State == ButtonDoubleClick {
			doubles++
		}
	}
	if doubles != 1 {
		t.Errorf("double clicks after third press = %d, want 1", doubles)
	}
}

func TestContainerSlowClicksDoNotDouble(t *testing.T) {
	c := NewContainer()
	target := newProbe(10, 10)
	c.Add(target)
	c.PointerMotion(motionAt(5, 5))

	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: 1000})
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: 1000})
	late := 1000 + DoubleClickIntervalMsec + 1
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: late})
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: late})

	for _, ev := range target.buttons {
		if ev.State == ButtonDoubleClick {
			t.Error("clicks beyond the interval must not synthesize DOUBLE_CLICK")
		}
	}
}

func TestContainerKeyboardFocusChain(t *testing.T) {
	outer := NewContainer()
	inner := NewContainer()
	p := newProbe(10, 10)
	q := newProbe(10, 10)
	p.consumeKeys = true
	inner.Add(p)
	inner.Add(q)
	outer.Add(inner)

	inner.SetKeyboardFocus(p, true)
	if outer.KeyboardFocusElement() != Element(inner) {
		t.Error("focus chain did not propagate to the outer container")
	}

	if !outer.Keyboard(KeyEvent{Code: 30, Pressed: true}) {
		t.Error("key event did not reach the focused leaf")
	}
	if len(p.keys) != 1 {
		t.Errorf("focused leaf keys = %d, want 1", len(p.keys))
	}
	if len(q.keys) != 0 {
		t.Error("unfocused sibling received a key event")
	}

	// Blur tears the whole chain down.
	outer.KeyboardBlur()
	if p.blurs != 1 {
		t.Errorf("leaf blurs = %d, want 1", p.blurs)
	}
	if outer.Keyboard(KeyEvent{Code: 30, Pressed: true}) {
		t.Error("key event delivered after blur")
	}
}

func TestContainerDimensionsUnion(t *testing.T) {
	c := NewContainer()
	a := newProbe(10, 10)
	b := newProbe(10, 10)
	b.SetPosition(20, 5)
	c.Add(a)
	c.Add(b)

	dim := c.Dimensions()
	if dim.Min.X != 0 || dim.Min.Y != 0 || dim.Max.X != 30 || dim.Max.Y != 15 {
		t.Errorf("dimensions = %v, want (0,0)-(30,15)", dim)
	}

	b.SetVisible(false)
	dim = c.Dimensions()
	if dim.Max.X != 10 || dim.Max.Y != 10 {
		t.Errorf("dimensions with hidden child = %v, want (0,0)-(10,10)", dim)
	}
}

func TestContainerRemoveCancelsGrabAndFocus(t *testing.T) {
	c := NewContainer()
	p := newProbe(10, 10)
	c.Add(p)

	c.PointerMotion(motionAt(5, 5))
	c.PointerGrab(p)
	c.Remove(p)

	if p.grabCancels != 1 {
		t.Errorf("removed grab holder cancels = %d, want 1", p.grabCancels)
	}
	if c.PointerGrabElement() != nil {
		t.Error("container still holds a grab for the removed child")
	}
	if p.leaves != 1 {
		t.Errorf("removed focus child leaves = %d, want 1", p.leaves)
	}
}
