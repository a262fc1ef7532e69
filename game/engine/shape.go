package engine

import "fmt"

// ShipKind identifies one of the fixed ship shapes
type ShipKind string

const (
	Line   ShipKind = "line"
	Box    ShipKind = "box"
	LShape ShipKind = "l_shape"
)

// shapeOffsets maps every ship kind to its cells relative to the anchor
var shapeOffsets = map[ShipKind][]Coordinate{
	Line:   {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	Box:    {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	LShape: {{0, 0}, {1, 0}, {2, 0}, {2, 1}},
}

// ShipKinds lists all ship kinds in fleet order
var ShipKinds = []ShipKind{Line, Box, LShape}

// IsValid reports whether k has a known shape
func (k ShipKind) IsValid() bool {
	_, ok := shapeOffsets[k]
	return ok
}

// DisplayName returns the name players see for the kind
func (k ShipKind) DisplayName() string {
	switch k {
	case Line:
		return "Line Ship"
	case Box:
		return "Box Ship"
	case LShape:
		return "L Ship"
	default:
		return "Unknown Ship"
	}
}

// Offsets returns a copy of the canonical offsets of the kind
func (k ShipKind) Offsets() []Coordinate {
	offsets := shapeOffsets[k]
	out := make([]Coordinate, len(offsets))
	copy(out, offsets)
	return out
}

// Extent returns the number of rows and columns the shape spans
func (k ShipKind) Extent() (rows, cols int) {
	for _, o := range shapeOffsets[k] {
		if o.Row+1 > rows {
			rows = o.Row + 1
		}
		if o.Col+1 > cols {
			cols = o.Col + 1
		}
	}
	return rows, cols
}

// ParseShipKind converts user input into a ShipKind
func ParseShipKind(s string) (ShipKind, error) {
	switch s {
	case "line", "Line", "Line Ship":
		return Line, nil
	case "box", "Box", "Box Ship":
		return Box, nil
	case "l_shape", "l", "L", "LShape", "L Ship":
		return LShape, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShipKind, s)
}

// FleetComposition is the number of ships of each kind every player places
var FleetComposition = map[ShipKind]int{
	Line:   2,
	Box:    1,
	LShape: 1,
}

// FleetSize returns the total number of ships in a complete fleet
func FleetSize() int {
	total := 0
	for _, n := range FleetComposition {
		total += n
	}
	return total
}

// GeneratePlacement returns the absolute cells of a kind anchored at anchor.
// No bounds checking happens here; Board.PlaceShip rejects bad placements.
func GeneratePlacement(kind ShipKind, anchor Coordinate) []Coordinate {
	offsets := shapeOffsets[kind]
	cells := make([]Coordinate, 0, len(offsets))
	for _, o := range offsets {
		cells = append(cells, anchor.Add(o))
	}
	return cells
}

// Rand is the source of randomness used for fleet placement
type Rand interface {
	IntN(n int) int
}

// RandomAnchor draws a coordinate uniformly from the whole grid, including
// anchors that push the shape off the board.
func RandomAnchor(rng Rand, height, width int) Coordinate {
	return Coordinate{Row: rng.IntN(height), Col: rng.IntN(width)}
}

// Ship is a shape placed at a concrete location
type Ship struct {
	Kind          ShipKind     `json:"kind"`
	OccupiedCells []Coordinate `json:"occupied_cells"`
}

// NewShip builds a ship of the given kind anchored at anchor
func NewShip(kind ShipKind, anchor Coordinate) (Ship, error) {
	if !kind.IsValid() {
		return Ship{}, fmt.Errorf("%w: %q", ErrUnknownShipKind, kind)
	}
	return Ship{Kind: kind, OccupiedCells: GeneratePlacement(kind, anchor)}, nil
}

// Occupies reports whether the ship covers coord
func (s Ship) Occupies(coord Coordinate) bool {
	for _, c := range s.OccupiedCells {
		if c == coord {
			return true
		}
	}
	return false
}

// Anchor returns the first occupied cell
func (s Ship) Anchor() Coordinate {
	if len(s.OccupiedCells) == 0 {
		return Coordinate{}
	}
	return s.OccupiedCells[0]
}

// matchesShape reports whether the occupied cells are exactly the kind's
// offsets translated by the anchor, in order
func (s Ship) matchesShape() bool {
	offsets := shapeOffsets[s.Kind]
	if len(offsets) == 0 || len(s.OccupiedCells) != len(offsets) {
		return false
	}
	anchor := s.OccupiedCells[0]
	for i, o := range offsets {
		if s.OccupiedCells[i] != anchor.Add(o) {
			return false
		}
	}
	return true
}

func (s Ship) clone() Ship {
	cells := make([]Coordinate, len(s.OccupiedCells))
	copy(cells, s.OccupiedCells)
	return Ship{Kind: s.Kind, OccupiedCells: cells}
}
