package engine

import "sort"

const (
	// maxDrawsPerShip bounds the random anchors tried for one ship before the
	// layout is abandoned
	maxDrawsPerShip = 64
	// maxRandomLayouts bounds the random layouts tried before falling back
	// to an exhaustive search
	maxRandomLayouts = 32
)

// anchorCount is the number of anchors that keep kind inside a height x width board
func anchorCount(kind ShipKind, height, width int) int {
	rows, cols := kind.Extent()
	if rows > height || cols > width {
		return 0
	}
	return (height - rows + 1) * (width - cols + 1)
}

// missingShips lists the ships still needed on b, kinds with the fewest
// legal anchors first.
func missingShips(b *Board) []ShipKind {
	var kinds []ShipKind
	for _, kind := range ShipKinds {
		for n := b.CountKind(kind); n < FleetComposition[kind]; n++ {
			kinds = append(kinds, kind)
		}
	}
	sort.SliceStable(kinds, func(i, j int) bool {
		return anchorCount(kinds[i], b.height, b.width) < anchorCount(kinds[j], b.height, b.width)
	})
	return kinds
}

// removeShipsFrom drops every ship from index n on and clears their cells.
// Only used in the Lobby, where ship cells are never hit.
func (b *Board) removeShipsFrom(n int) {
	for _, ship := range b.ships[n:] {
		for _, c := range ship.OccupiedCells {
			b.setCell(c, Empty)
		}
	}
	b.ships = b.ships[:n]
}

// randomLayout places kinds at random anchors. A ship that cannot be placed
// within maxDrawsPerShip draws discards the whole layout and starts over.
func randomLayout(b *Board, rng Rand, kinds []ShipKind) bool {
	base := len(b.ships)
	for attempt := 0; attempt < maxRandomLayouts; attempt++ {
		if placeRandomly(b, rng, kinds) {
			return true
		}
		b.removeShipsFrom(base)
	}
	return false
}

func placeRandomly(b *Board, rng Rand, kinds []ShipKind) bool {
	for _, kind := range kinds {
		placed := false
		for draw := 0; draw < maxDrawsPerShip && !placed; draw++ {
			ship, _ := NewShip(kind, RandomAnchor(rng, b.height, b.width))
			placed = b.PlaceShip(ship) == nil
		}
		if !placed {
			return false
		}
	}
	return true
}

// searchLayout tries every in-bounds anchor for each kind in order and
// backtracks on dead ends. On failure the board is left as it was.
func searchLayout(b *Board, kinds []ShipKind) bool {
	if len(kinds) == 0 {
		return true
	}
	kind := kinds[0]
	rows, cols := kind.Extent()
	for row := 0; row+rows <= b.height; row++ {
		for col := 0; col+cols <= b.width; col++ {
			ship, _ := NewShip(kind, Coordinate{Row: row, Col: col})
			if b.PlaceShip(ship) != nil {
				continue
			}
			if searchLayout(b, kinds[1:]) {
				return true
			}
			b.removeShipsFrom(len(b.ships) - 1)
		}
	}
	return false
}

// completeFleet tops b up to the fleet composition, keeping the ships it
// already holds. It reports false, with b unchanged, when no layout exists.
func completeFleet(b *Board, rng Rand) bool {
	kinds := missingShips(b)
	for _, kind := range kinds {
		if anchorCount(kind, b.height, b.width) == 0 {
			return false
		}
	}
	return randomLayout(b, rng, kinds) || searchLayout(b, kinds)
}

// FleetFits reports whether a complete fleet can be laid out on an empty
// height x width board.
func FleetFits(height, width int) bool {
	b, err := NewBoard(height, width)
	if err != nil {
		return false
	}
	return searchLayout(b, missingShips(b))
}
