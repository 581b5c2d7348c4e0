package widgets

// Widget is a drawable element.
type Widget struct {
	Base

	// Color is the fill color.
	Color string
}

// Draw renders the widget.
func (w *Widget) Draw() {}

// Point is a plain coordinate pair.
type Point struct {
	X int
	Y int
}

// New creates a Widget with the given color.
func New(color string) *Widget {
	return &Widget{Color: color}
}

// Stream emits widgets as they are created.
func Stream() <-chan Widget {
	return nil
}

func undocumented() {}
