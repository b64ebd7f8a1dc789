package ui

// Base is embedded by pages and popups for the size and focus state every
// component tracks. Its pointer methods satisfy router.Page's SetSize and
// actionbutton's focus contract.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

// SetSize records the area the component may draw in.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int { return b.width }

func (b Base) Height() int { return b.height }

// Sized reports whether the component has been given a drawable area.
func (b Base) Sized() bool { return b.width > 0 && b.height > 0 }
