package engine

import "fmt"

// Board holds the grid and fleet of a single player
type Board struct {
	height  int
	width   int
	grid    [][]CellState
	ships   []Ship
	visible bool
}

// NewBoard creates an empty height x width board
func NewBoard(height, width int) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, height, width)
	}

	grid := make([][]CellState, height)
	for i := range grid {
		grid[i] = make([]CellState, width)
		for j := range grid[i] {
			grid[i][j] = Empty
		}
	}

	return &Board{
		height: height,
		width:  width,
		grid:   grid,
		ships:  []Ship{},
	}, nil
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// InBounds reports whether coord lies on the board
func (b *Board) InBounds(coord Coordinate) bool {
	return coord.Row >= 0 && coord.Row < b.height && coord.Col >= 0 && coord.Col < b.width
}

// Cell returns the state at coord
func (b *Board) Cell(coord Coordinate) (CellState, error) {
	if !b.InBounds(coord) {
		return "", fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, coord.Row, coord.Col, b.height, b.width)
	}
	return b.grid[coord.Row][coord.Col], nil
}

func (b *Board) setCell(coord Coordinate, state CellState) {
	b.grid[coord.Row][coord.Col] = state
}

// Ships returns a copy of the placed ships
func (b *Board) Ships() []Ship {
	out := make([]Ship, len(b.ships))
	for i, s := range b.ships {
		out[i] = s.clone()
	}
	return out
}

// SetVisible sets the presentation flag
func (b *Board) SetVisible(visible bool) {
	b.visible = visible
}

// IsVisible returns the presentation flag
func (b *Board) IsVisible() bool {
	return b.visible
}

func (b *Board) toggleVisible() {
	b.visible = !b.visible
}

// PlaceShip validates every cell of ship before committing any of them.
// A failed placement leaves the board untouched.
func (b *Board) PlaceShip(ship Ship) error {
	if !ship.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownShipKind, ship.Kind)
	}

	for _, c := range ship.OccupiedCells {
		if !b.InBounds(c) {
			return fmt.Errorf("%w: %s cell (%d,%d) on %dx%d board",
				ErrOutOfBounds, ship.Kind.DisplayName(), c.Row, c.Col, b.height, b.width)
		}
		if b.grid[c.Row][c.Col] != Empty {
			return fmt.Errorf("%w: %s cell (%d,%d) is %s",
				ErrOverlap, ship.Kind.DisplayName(), c.Row, c.Col, b.grid[c.Row][c.Col])
		}
	}

	// A ship listing the same cell twice would pass the loop above
	seen := make(map[Coordinate]bool, len(ship.OccupiedCells))
	for _, c := range ship.OccupiedCells {
		if seen[c] {
			return fmt.Errorf("%w: %s lists (%d,%d) twice", ErrOverlap, ship.Kind.DisplayName(), c.Row, c.Col)
		}
		seen[c] = true
	}

	for _, c := range ship.OccupiedCells {
		b.setCell(c, ShipPresent)
	}
	b.ships = append(b.ships, ship.clone())
	return nil
}

// ResolveShot applies a shot at coord. Shots at already resolved cells
// return ShotAlreadyShot and change nothing.
func (b *Board) ResolveShot(coord Coordinate) (ShotOutcome, error) {
	state, err := b.Cell(coord)
	if err != nil {
		return ShotOutcome{}, err
	}

	switch state {
	case Hit, Miss:
		return ShotOutcome{Result: ShotAlreadyShot}, nil
	case Empty:
		b.setCell(coord, Miss)
		return ShotOutcome{Result: ShotMiss}, nil
	}

	b.setCell(coord, Hit)
	outcome := ShotOutcome{Result: ShotHit}
	if ship, ok := b.shipAt(coord); ok && b.isSunk(ship) {
		kind := ship.Kind
		outcome.SunkKind = &kind
	}
	return outcome, nil
}

// shipAt finds the ship covering coord with a linear scan
func (b *Board) shipAt(coord Coordinate) (Ship, bool) {
	for _, s := range b.ships {
		if s.Occupies(coord) {
			return s, true
		}
	}
	return Ship{}, false
}

func (b *Board) isSunk(ship Ship) bool {
	for _, c := range ship.OccupiedCells {
		if b.grid[c.Row][c.Col] != Hit {
			return false
		}
	}
	return true
}

// AllShipsDestroyed reports whether no cell still holds an unhit ship.
// Every ShipPresent cell belongs to a placed ship, so this agrees with
// CountShipsSunk() == len(Ships()).
func (b *Board) AllShipsDestroyed() bool {
	return b.CountState(ShipPresent) == 0
}

// CountShots returns the number of cells that have been shot at
func (b *Board) CountShots() int {
	return b.CountState(Hit) + b.CountState(Miss)
}

// CountShipsSunk returns the number of ships whose cells are all hit
func (b *Board) CountShipsSunk() int {
	sunk := 0
	for _, s := range b.ships {
		if b.isSunk(s) {
			sunk++
		}
	}
	return sunk
}

// CountState counts the cells holding state
func (b *Board) CountState(state CellState) int {
	count := 0
	for _, row := range b.grid {
		for _, cell := range row {
			if cell == state {
				count++
			}
		}
	}
	return count
}

// CountKind returns how many ships of kind are placed
func (b *Board) CountKind(kind ShipKind) int {
	count := 0
	for _, s := range b.ships {
		if s.Kind == kind {
			count++
		}
	}
	return count
}

// FleetComplete reports whether the board holds exactly the fleet composition
func (b *Board) FleetComplete() bool {
	for kind, n := range FleetComposition {
		if b.CountKind(kind) != n {
			return false
		}
	}
	return true
}
