package widgets

// Base provides identity for widgets.
type Base struct {
	id string
}

// ID returns the widget identifier.
func (b *Base) ID() string { return b.id }
