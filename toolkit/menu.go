// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

// MenuMode selects how a menu reacts to buttons.
type MenuMode int

const (
	// MenuModeNormal: left click triggers the highlighted item.
	MenuModeNormal MenuMode = iota
	// MenuModeRightclick: the menu was opened on a right button press;
	// releasing the right button triggers the item under the cursor,
	// or closes the menu if there is none.
	MenuModeRightclick
)

// Menu is a vertical stack of menu items. At most one item is
// highlighted at a time.
type Menu struct {
	Box

	// OpenChanged fires when the menu is shown or hidden.
	OpenChanged Signal[bool]
	// RequestClose fires when the menu wants its holder to hide it.
	RequestClose Signal[struct{}]

	style MenuStyle
	mode  MenuMode

	items       []*MenuItem
	highlighted *MenuItem
	open        bool

	// parentItem is set when this menu is a submenu; the chain of
	// parent items forms a single spine.
	parentItem *MenuItem
}

// NewMenu creates an empty menu in normal mode.
func NewMenu(style MenuStyle) *Menu {
	m := &Menu{style: style}
	m.InitBox(m, Vertical, 0)
	m.SetVisible(false)
	return m
}

// Style returns the menu's style, shared with its items.
func (m *Menu) Style() MenuStyle { return m.style }

// Mode returns the current interaction mode.
func (m *Menu) Mode() MenuMode { return m.mode }

// SetMode switches between normal and rightclick interaction.
func (m *Menu) SetMode(mode MenuMode) { m.mode = mode }

// AddItem appends item to the bottom of the menu.
func (m *Menu) AddItem(item *MenuItem) {
	item.menu = m
	m.items = append(m.items, item)
	m.Append(item)
	item.redraw()
}

// RemoveItem detaches item from the menu.
func (m *Menu) RemoveItem(item *MenuItem) {
	if item.menu != m {
		panic("toolkit: RemoveItem on item of a different menu")
	}
	if m.highlighted == item {
		m.highlighted = nil
	}
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.Remove(item)
	item.menu = nil
}

// Items returns the menu's items, top to bottom.
func (m *Menu) Items() []*MenuItem { return m.items }

// RequestItemHighlight highlights item, un-highlighting whichever item
// held the highlight before. A nil item clears the highlight.
func (m *Menu) RequestItemHighlight(item *MenuItem) {
	if m.highlighted == item {
		return
	}
	if m.highlighted != nil {
		m.highlighted.setHighlighted(false)
	}
	m.highlighted = item
	if item != nil {
		item.setHighlighted(true)
	}
}

// HighlightedItem returns the currently highlighted item, if any.
func (m *Menu) HighlightedItem() *MenuItem { return m.highlighted }

// SetOpen shows or hides the menu and notifies observers. Closing
// clears the highlight and closes any open submenu along the spine.
func (m *Menu) SetOpen(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	m.SetVisible(open)
	if !open {
		m.RequestItemHighlight(nil)
	}
	m.OpenChanged.Emit(open)
}

// Open reports whether the menu is currently shown.
func (m *Menu) Open() bool { return m.open }

// PointerButton handles the rightclick mode: releasing the right
// button with no item under the cursor closes the menu.
func (m *Menu) PointerButton(ev ButtonEvent) bool {
	consumed := m.Container.PointerButton(ev)
	if m.mode == MenuModeRightclick && ev.Code == BtnRight && ev.State == ButtonReleased && !consumed {
		m.SetOpen(false)
		m.RequestClose.Emit(struct{}{})
		consumed = true
	}
	return consumed
}

func (m *Menu) Destroy() {
	m.OpenChanged.DisconnectAll()
	m.RequestClose.DisconnectAll()
	m.Box.Destroy()
}
