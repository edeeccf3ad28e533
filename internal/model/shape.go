package model

// ShapeKind identifies one of the seven tetrominoes
type ShapeKind int

const (
	ShapeSquare ShapeKind = iota
	ShapeL
	ShapeReverseL
	ShapeStraight
	ShapeT
	ShapeWorm
	ShapeReverseWorm
)

// ShapeCount is the number of distinct shapes
const ShapeCount = 7

// Color is the display color associated with a shape
type Color int

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorLightBlue
	ColorLightYellow
	ColorYellow
	ColorMagenta
)

type shapeInfo struct {
	name     string
	color    Color
	size     int
	template []bool
}

// Templates are square so that rotation stays well defined.
// Straight is padded to 4x4 for the same reason.
var shapes = [ShapeCount]shapeInfo{
	ShapeSquare: {"square", ColorRed, 2, []bool{
		true, true,
		true, true,
	}},
	ShapeL: {"l", ColorGreen, 3, []bool{
		false, false, true,
		true, true, true,
		false, false, false,
	}},
	ShapeReverseL: {"reverse_l", ColorBlue, 3, []bool{
		true, false, false,
		true, true, true,
		false, false, false,
	}},
	ShapeStraight: {"straight", ColorLightBlue, 4, []bool{
		false, false, false, false,
		true, true, true, true,
		false, false, false, false,
		false, false, false, false,
	}},
	ShapeT: {"t", ColorLightYellow, 3, []bool{
		false, true, false,
		true, true, true,
		false, false, false,
	}},
	ShapeWorm: {"worm", ColorYellow, 3, []bool{
		true, true, false,
		false, true, true,
		false, false, false,
	}},
	ShapeReverseWorm: {"reverse_worm", ColorMagenta, 3, []bool{
		false, true, true,
		true, true, false,
		false, false, false,
	}},
}

// Color returns the display color for the shape
func (k ShapeKind) Color() Color {
	if !k.Valid() {
		return ColorNone
	}
	return shapes[k].color
}

// String returns the shape name
func (k ShapeKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return shapes[k].name
}

// Valid reports whether k names a real shape
func (k ShapeKind) Valid() bool {
	return k >= 0 && k < ShapeCount
}

// Template builds the canonical spawn-orientation template for the shape
func (k ShapeKind) Template() *Grid {
	info := shapes[k]
	return NewGridFrom(info.size, info.template)
}

var colorNames = map[Color]string{
	ColorNone:        "none",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorBlue:        "blue",
	ColorLightBlue:   "light_blue",
	ColorLightYellow: "light_yellow",
	ColorYellow:      "yellow",
	ColorMagenta:     "magenta",
}

// String returns the color name
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}
