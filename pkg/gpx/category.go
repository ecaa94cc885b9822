// category.go names the element families a document is split into.
package gpx

// Category is one of the element families routed to its own output.
type Category int

const (
	Waypoints Category = iota
	Routes
	Tracks
)

// Destination is where a token is written: one category, or Shared for all of them.
type Destination int

// Shared marks tokens written to every category output.
const Shared Destination = -1

// Categories lists every category in output order.
func Categories() []Category {
	return []Category{Waypoints, Routes, Tracks}
}

// Element returns the GPX element name of the category.
func (c Category) Element() string {
	switch c {
	case Waypoints:
		return "wpt"
	case Routes:
		return "rte"
	case Tracks:
		return "trk"
	default:
		return ""
	}
}

// Suffix is the file name suffix used for the category's output.
func (c Category) Suffix() string {
	return "_" + c.Element() + ".gpx"
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Waypoints:
		return "waypoints"
	case Routes:
		return "routes"
	case Tracks:
		return "tracks"
	default:
		return "unknown"
	}
}

// Category returns the destination's category and false for Shared.
func (d Destination) Category() (Category, bool) {
	if d == Shared {
		return 0, false
	}
	return Category(d), true
}

// String returns the destination name.
func (d Destination) String() string {
	if c, ok := d.Category(); ok {
		return c.String()
	}
	return "shared"
}

// Route decides the destination of tok. Opening and self-closing tags naming a
// category start that category's capture; everything else is shared.
func Route(tok Token) Destination {
	info, ok := tok.Tag()
	if !ok || info.Closing {
		return Shared
	}
	for _, c := range Categories() {
		if info.Is(c.Element()) {
			return Destination(c)
		}
	}
	return Shared
}

// ends reports whether tok terminates a capture of c: the literal closing tag,
// or the self-closing form of the category element.
func (c Category) ends(tok Token) bool {
	info, ok := tok.Tag()
	if !ok {
		return false
	}
	if info.Closing {
		return string(tok) == "</"+c.Element()+">"
	}
	return info.SelfClosing && info.Is(c.Element())
}
