package toolkit

import (
	"image"
	"image/draw"
)

// MenuItemState is the interaction state of a menu item.
type MenuItemState int

const (
	MenuItemEnabled MenuItemState = iota
	MenuItemHighlighted
	MenuItemDisabled
)

// MenuItem is one row of a menu. Hovering it requests the highlight;
// triggering it fires the Triggered signal. An item may own a submenu
// that opens while the item is highlighted.
type MenuItem struct {
	BufferElement

	// Triggered fires when the item is activated.
	Triggered Signal[*MenuItem]

	menu  *Menu
	state MenuItemState
	text  string

	submenu *Menu
}

// NewMenuItem creates an enabled item with the given label.
func NewMenuItem(text string) *MenuItem {
	it := &MenuItem{text: text, state: MenuItemEnabled}
	it.InitElement(it)
	it.PointerEnter.Connect(func(PointerMotionEvent) {
		if it.state == MenuItemDisabled || it.menu == nil {
			return
		}
		it.menu.RequestItemHighlight(it)
	})
	return it
}

// Text returns the item's label.
func (it *MenuItem) Text() string { return it.text }

// SetText relabels the item.
func (it *MenuItem) SetText(text string) {
	if it.text == text {
		return
	}
	it.text = text
	it.redraw()
}

// State returns the item's interaction state.
func (it *MenuItem) State() MenuItemState { return it.state }

// SetEnabled enables or disables the item. Disabling drops an active
// highlight.
func (it *MenuItem) SetEnabled(enabled bool) {
	if enabled && it.state == MenuItemDisabled {
		it.state = MenuItemEnabled
		it.redraw()
	} else if !enabled && it.state != MenuItemDisabled {
		if it.state == MenuItemHighlighted && it.menu != nil {
			it.menu.RequestItemHighlight(nil)
		}
		it.state = MenuItemDisabled
		it.redraw()
	}
}

// SetSubmenu attaches a submenu that opens while the item is
// highlighted. The submenu records this item as its parent, keeping
// the spine a single chain.
func (it *MenuItem) SetSubmenu(submenu *Menu) {
	it.submenu = submenu
	if submenu != nil {
		submenu.parentItem = it
	}
}

// Submenu returns the attached submenu, if any.
func (it *MenuItem) Submenu() *Menu { return it.submenu }

// setHighlighted flips the highlight state; called by the menu so the
// highlight stays unique.
func (it *MenuItem) setHighlighted(highlighted bool) {
	if it.state == MenuItemDisabled {
		return
	}
	if highlighted {
		it.state = MenuItemHighlighted
	} else {
		it.state = MenuItemEnabled
	}
	it.syncSubmenu(highlighted)
	it.redraw()
}

func (it *MenuItem) syncSubmenu(open bool) {
	if it.submenu == nil || it.menu == nil {
		return
	}
	if open {
		// Submenus open to the right of their item, aligned to its top
		// row, into the same parent container as the menu.
		if parent := it.menu.Parent(); parent != nil && it.submenu.Parent() == nil {
			parent.Add(it.submenu)
		}
		mx, my := it.menu.Position()
		_, iy := it.Position()
		it.submenu.SetPosition(mx+it.menu.style.ItemWidth, my+iy)
		it.submenu.SetMode(it.menu.mode)
		it.submenu.SetOpen(true)
		return
	}
	it.submenu.SetOpen(false)
	if parent := it.submenu.Parent(); parent != nil {
		parent.Remove(it.submenu)
	}
}

func (it *MenuItem) Dimensions() image.Rectangle {
	if it.menu == nil {
		return it.BufferElement.Dimensions()
	}
	return image.Rect(0, 0, it.menu.style.ItemWidth, it.menu.style.ItemHeight)
}

// PointerButton triggers the item: by synthesized click in normal
// mode, by right-button release in rightclick mode.
func (it *MenuItem) PointerButton(ev ButtonEvent) bool {
	if it.menu == nil || it.state == MenuItemDisabled {
		return false
	}
	switch it.menu.mode {
	case MenuModeNormal:
		if ev.Code == BtnLeft {
			switch ev.State {
			case ButtonPressed, ButtonReleased:
				return true
			case ButtonClick:
				it.trigger()
				return true
			}
		}
	case MenuModeRightclick:
		if ev.Code == BtnRight && ev.State == ButtonReleased {
			it.trigger()
			return true
		}
	}
	return false
}

func (it *MenuItem) trigger() {
	menu := it.menu
	it.Triggered.Emit(it)
	if menu != nil && menu.Open() {
		menu.SetOpen(false)
		menu.RequestClose.Emit(struct{}{})
	}
}

func (it *MenuItem) redraw() {
	if it.menu == nil {
		return
	}
	style := it.menu.style
	fill := style.Fill
	text := style.Text
	switch it.state {
	case MenuItemHighlighted:
		fill = style.HighlightedFill
		text = style.HighlightedText
	case MenuItemDisabled:
		text = style.DisabledText
	}
	img := fill.Render(style.ItemWidth, style.ItemHeight)
	DrawBezel(img, style.BezelWidth, it.state != MenuItemHighlighted)
	if style.TextRenderer != nil && it.text != "" {
		if rendered := style.TextRenderer(it.text, style.ItemWidth, style.ItemHeight, text); rendered != nil {
			draw.Draw(img, img.Bounds(), rendered, image.Point{}, draw.Over)
		}
	}
	it.SetImage(img)
}

func (it *MenuItem) Destroy() {
	it.Triggered.DisconnectAll()
	it.BufferElement.Destroy()
}
