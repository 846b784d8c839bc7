package toolkit

import (
	"testing"
)

func newTestMenu(mode MenuMode, labels ...string) (*Container, *Menu, []*MenuItem) {
	c := NewContainer()
	m := NewMenu(DefaultWindowStyle().Menu)
	c.Add(m)
	m.SetMode(mode)

	items := make([]*MenuItem, 0, len(labels))
	for _, label := range labels {
		it := NewMenuItem(label)
		m.AddItem(it)
		items = append(items, it)
	}
	return c, m, items
}

func TestMenuHighlightIsUnique(t *testing.T) {
	c, m, items := newTestMenu(MenuModeRightclick, "one", "two")
	m.SetPosition(100, 100)
	m.SetOpen(true)
	itemHeight := m.Style().ItemHeight

	c.PointerMotion(motionAt(105, 105))
	if m.HighlightedItem() != items[0] {
		t.Fatal("first item not highlighted under the pointer")
	}

	c.PointerMotion(motionAt(105, 105+float64(itemHeight)))
	if m.HighlightedItem() != items[1] {
		t.Error("second item did not take the highlight")
	}
	if items[0].State() == MenuItemHighlighted {
		t.Error("first item kept its highlight")
	}
}

func TestMenuRightclickReleaseTriggersItem(t *testing.T) {
	c, m, items := newTestMenu(MenuModeRightclick, "one", "two")
	m.SetPosition(100, 100)
	m.SetOpen(true)
	itemHeight := m.Style().ItemHeight

	var triggered []*MenuItem
	items[1].Triggered.Connect(func(it *MenuItem) { triggered = append(triggered, it) })
	var openStates []bool
	m.OpenChanged.Connect(func(open bool) { openStates = append(openStates, open) })

	c.PointerMotion(motionAt(105, 105+float64(itemHeight)))
	c.PointerButton(ButtonEvent{Code: BtnRight, State: ButtonReleased})

	if len(triggered) != 1 || triggered[0] != items[1] {
		t.Errorf("triggered = %v, want the second item once", triggered)
	}
	if len(openStates) != 1 || openStates[0] {
		t.Errorf("open emissions = %v, want [false]", openStates)
	}
	if m.Open() {
		t.Error("menu still open after the trigger")
	}
}

func TestMenuRightclickReleaseOutsideItemsCloses(t *testing.T) {
	_, m, _ := newTestMenu(MenuModeRightclick, "one")
	m.SetOpen(true)

	var closes int
	m.RequestClose.Connect(func(struct{}) { closes++ })

	// No item holds pointer focus; the release lands on the menu
	// itself.
	if !m.PointerButton(ButtonEvent{Code: BtnRight, State: ButtonReleased}) {
		t.Error("release must be consumed by the closing menu")
	}
	if m.Open() {
		t.Error("menu still open")
	}
	if closes != 1 {
		t.Errorf("close requests = %d, want 1", closes)
	}
}

func TestMenuNormalModeClickTriggers(t *testing.T) {
	c, m, items := newTestMenu(MenuModeNormal, "one")
	m.SetOpen(true)

	var triggered int
	items[0].Triggered.Connect(func(*MenuItem) { triggered++ })

	c.PointerMotion(motionAt(5, 5))
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: 10})
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: 20})

	if triggered != 1 {
		t.Errorf("triggered = %d, want 1 from the synthesized click", triggered)
	}
}

func TestMenuDisabledItemIgnoresInput(t *testing.T) {
	c, m, items := newTestMenu(MenuModeNormal, "one")
	m.SetOpen(true)
	items[0].SetEnabled(false)

	var triggered int
	items[0].Triggered.Connect(func(*MenuItem) { triggered++ })

	c.PointerMotion(motionAt(5, 5))
	if m.HighlightedItem() != nil {
		t.Error("disabled item took the highlight")
	}
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed, TimeMsec: 10})
	c.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased, TimeMsec: 20})
	if triggered != 0 {
		t.Errorf("disabled item triggered %d times", triggered)
	}
}

func TestMenuCloseClearsHighlight(t *testing.T) {
	c, m, items := newTestMenu(MenuModeNormal, "one")
	m.SetOpen(true)
	c.PointerMotion(motionAt(5, 5))
	if m.HighlightedItem() != items[0] {
		t.Fatal("item not highlighted")
	}

	m.SetOpen(false)
	if m.HighlightedItem() != nil {
		t.Error("closed menu kept a highlighted item")
	}
	if items[0].State() == MenuItemHighlighted {
		t.Error("item still highlighted after close")
	}
}

func TestMenuSubmenuFollowsHighlight(t *testing.T) {
	c, m, items := newTestMenu(MenuModeNormal, "parent", "plain")
	m.SetPosition(100, 100)
	m.SetOpen(true)
	style := m.Style()

	sub := NewMenu(style)
	sub.AddItem(NewMenuItem("child"))
	items[0].SetSubmenu(sub)

	c.PointerMotion(motionAt(105, 105))
	if !sub.Open() {
		t.Fatal("submenu did not open on highlight")
	}
	x, y := sub.Position()
	if x != 100+style.ItemWidth || y != 100 {
		t.Errorf("submenu position = (%d,%d), want (%d,100)", x, y, 100+style.ItemWidth)
	}
	if sub.Parent() != c {
		t.Error("submenu not placed into the menu's parent container")
	}

	// Moving to a plain item closes the submenu again.
	c.PointerMotion(motionAt(105, 105+float64(style.ItemHeight)))
	if sub.Open() {
		t.Error("submenu stayed open after the highlight moved")
	}
	if sub.Parent() != nil {
		t.Error("closed submenu still parented")
	}
}
