package engine

import "fmt"

// BoardSnapshot is the persisted form of a Board
type BoardSnapshot struct {
	Height  int           `json:"height"`
	Width   int           `json:"width"`
	Grid    [][]CellState `json:"grid"`
	Ships   []Ship        `json:"ships"`
	Visible bool          `json:"visible"`
}

// Snapshot is the persisted form of a whole match. Boards[0] belongs to
// player one and Boards[1] to player two.
type Snapshot struct {
	Boards    []BoardSnapshot `json:"boards"`
	ActiveIsA bool            `json:"active_is_a"`
	Phase     GamePhase       `json:"phase"`
}

// Snapshot copies the board into its persisted form
func (b *Board) Snapshot() BoardSnapshot {
	grid := make([][]CellState, b.height)
	for i, row := range b.grid {
		grid[i] = make([]CellState, len(row))
		copy(grid[i], row)
	}
	return BoardSnapshot{
		Height:  b.height,
		Width:   b.width,
		Grid:    grid,
		Ships:   b.Ships(),
		Visible: b.visible,
	}
}

// RestoreBoard rebuilds a board, including its ships, from a snapshot.
// The snapshot must satisfy the same invariants PlaceShip maintains.
func RestoreBoard(s BoardSnapshot) (*Board, error) {
	if s.Height < MinBoardSide || s.Height > MaxBoardSide || s.Width < MinBoardSide || s.Width > MaxBoardSide {
		return nil, fmt.Errorf("%w: board is %dx%d, sides must be between %d and %d",
			ErrInvalidSnapshot, s.Height, s.Width, MinBoardSide, MaxBoardSide)
	}
	if s.Height*s.Width < MinBoardCells {
		return nil, fmt.Errorf("%w: board has %d cells, want at least %d", ErrInvalidSnapshot, s.Height*s.Width, MinBoardCells)
	}
	if len(s.Grid) != s.Height {
		return nil, fmt.Errorf("%w: grid has %d rows, want %d", ErrInvalidSnapshot, len(s.Grid), s.Height)
	}
	for i, row := range s.Grid {
		if len(row) != s.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSnapshot, i, len(row), s.Width)
		}
	}

	b, err := NewBoard(s.Height, s.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for i, row := range s.Grid {
		for j, cell := range row {
			if !cell.IsValid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) has unknown state %q", ErrInvalidSnapshot, i, j, cell)
			}
			b.grid[i][j] = cell
		}
	}

	shipCells := make(map[Coordinate]bool)
	for n, ship := range s.Ships {
		if !ship.Kind.IsValid() {
			return nil, fmt.Errorf("%w: ship %d has unknown kind %q", ErrInvalidSnapshot, n, ship.Kind)
		}
		if !ship.matchesShape() {
			return nil, fmt.Errorf("%w: ship %d cells do not form a %s", ErrInvalidSnapshot, n, ship.Kind.DisplayName())
		}
		for _, c := range ship.OccupiedCells {
			if !b.InBounds(c) {
				return nil, fmt.Errorf("%w: ship %d cell (%d,%d) out of bounds", ErrInvalidSnapshot, n, c.Row, c.Col)
			}
			if shipCells[c] {
				return nil, fmt.Errorf("%w: ships overlap at (%d,%d)", ErrInvalidSnapshot, c.Row, c.Col)
			}
			if state := b.grid[c.Row][c.Col]; state != ShipPresent && state != Hit {
				return nil, fmt.Errorf("%w: ship %d cell (%d,%d) is %s", ErrInvalidSnapshot, n, c.Row, c.Col, state)
			}
			shipCells[c] = true
		}
		b.ships = append(b.ships, ship.clone())
	}

	// Ship and hit cells must all belong to a ship, otherwise
	// AllShipsDestroyed and CountShipsSunk could disagree
	if occupied := b.CountState(ShipPresent) + b.CountState(Hit); occupied != len(shipCells) {
		return nil, fmt.Errorf("%w: %d ship or hit cells but ships cover %d", ErrInvalidSnapshot, occupied, len(shipCells))
	}

	b.visible = s.Visible
	return b, nil
}

// Serialize captures the full match state
func (e *GameEngine) Serialize() *Snapshot {
	return &Snapshot{
		Boards:    []BoardSnapshot{e.boardA.Snapshot(), e.boardB.Snapshot()},
		ActiveIsA: e.activeIsA,
		Phase:     e.phase,
	}
}

// Deserialize rebuilds a match from a snapshot produced by Serialize
func Deserialize(s *Snapshot) (*GameEngine, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}
	if len(s.Boards) != 2 {
		return nil, fmt.Errorf("%w: want 2 boards, got %d", ErrInvalidSnapshot, len(s.Boards))
	}
	if !s.Phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidSnapshot, s.Phase)
	}

	boardA, err := RestoreBoard(s.Boards[0])
	if err != nil {
		return nil, fmt.Errorf("board A: %w", err)
	}
	boardB, err := RestoreBoard(s.Boards[1])
	if err != nil {
		return nil, fmt.Errorf("board B: %w", err)
	}
	if boardA.Height() != boardB.Height() || boardA.Width() != boardB.Width() {
		return nil, fmt.Errorf("%w: boards differ in size (%dx%d vs %dx%d)", ErrInvalidSnapshot,
			boardA.Height(), boardA.Width(), boardB.Height(), boardB.Width())
	}

	e := &GameEngine{
		boardA:    boardA,
		boardB:    boardB,
		activeIsA: s.ActiveIsA,
		phase:     s.Phase,
		rng:       globalRand{},
	}

	for _, p := range []Player{PlayerOne, PlayerTwo} {
		board := e.Board(p)
		for _, kind := range ShipKinds {
			if n := board.CountKind(kind); n > FleetComposition[kind] {
				return nil, fmt.Errorf("%w: %s has %d %s, at most %d allowed", ErrInvalidSnapshot,
					p.DisplayName(), n, kind.DisplayName(), FleetComposition[kind])
			}
		}
		if e.phase == PhaseLobby && board.CountShots() > 0 {
			return nil, fmt.Errorf("%w: %s has shots on the board before the match started", ErrInvalidSnapshot, p.DisplayName())
		}
	}

	if e.phase == PhaseEnded && !e.Board(e.ActivePlayer().Opponent()).AllShipsDestroyed() {
		return nil, fmt.Errorf("%w: match ended but %s still has ships afloat", ErrInvalidSnapshot,
			e.ActivePlayer().Opponent().DisplayName())
	}

	return e, nil
}
