package engine

import (
	"fmt"
	"math/rand/v2"
)

// Engine provides the main interface for match operations
type Engine interface {
	// Lifecycle
	Phase() GamePhase
	Start() error
	Reset()
	IsGameOver() bool
	Winner() (Player, bool)

	// Setup
	PlaceShip(player Player, kind ShipKind, anchor Coordinate) error
	RandomizeFleet() error
	FleetComplete(player Player) bool

	// Play
	Fire(coord Coordinate) (*FireResult, error)
	ActivePlayer() Player
	Board(player Player) *Board
	Stats() []PlayerStats

	// Persistence
	Serialize() *Snapshot
}

// GameEngine implements the Engine interface. It is not safe for
// concurrent use; callers serialize every call.
type GameEngine struct {
	boardA    *Board
	boardB    *Board
	activeIsA bool
	phase     GamePhase
	rng       Rand
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewEngine creates a Lobby match sized by the provided configuration
func NewEngine(config *MatchConfig) (*GameEngine, error) {
	if err := ValidateMatchConfig(config); err != nil {
		return nil, err
	}
	return NewMatch(config.Height, config.Width, nil)
}

// NewEngineWithRand is NewEngine with a caller supplied random source
func NewEngineWithRand(config *MatchConfig, rng Rand) (*GameEngine, error) {
	if err := ValidateMatchConfig(config); err != nil {
		return nil, err
	}
	return NewMatch(config.Height, config.Width, rng)
}

// NewEngineWithDefaults creates a Lobby match using DefaultMatchConfig
func NewEngineWithDefaults() *GameEngine {
	config := DefaultMatchConfig()
	engine, err := NewMatch(config.Height, config.Width, nil)
	if err != nil {
		panic(err)
	}
	return engine
}

// NewMatch creates a Lobby match with two empty height x width boards.
// A nil rng uses the process-wide random source.
func NewMatch(height, width int, rng Rand) (*GameEngine, error) {
	boardA, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	boardB, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalRand{}
	}

	return &GameEngine{
		boardA:    boardA,
		boardB:    boardB,
		activeIsA: true,
		phase:     PhaseLobby,
		rng:       rng,
	}, nil
}

// SetRand replaces the random source used by RandomizeFleet
func (e *GameEngine) SetRand(rng Rand) {
	if rng == nil {
		rng = globalRand{}
	}
	e.rng = rng
}

// Phase returns the lifecycle phase
func (e *GameEngine) Phase() GamePhase {
	return e.phase
}

// IsGameOver returns whether the match has ended
func (e *GameEngine) IsGameOver() bool {
	return e.phase == PhaseEnded
}

// ActiveIsA reports whether it is player one's turn
func (e *GameEngine) ActiveIsA() bool {
	return e.activeIsA
}

// ActivePlayer returns the player whose turn it is
func (e *GameEngine) ActivePlayer() Player {
	if e.activeIsA {
		return PlayerOne
	}
	return PlayerTwo
}

// Board returns the board owned by player
func (e *GameEngine) Board(player Player) *Board {
	if player == PlayerOne {
		return e.boardA
	}
	return e.boardB
}

// Height returns the board height shared by both players
func (e *GameEngine) Height() int {
	return e.boardA.Height()
}

// Width returns the board width shared by both players
func (e *GameEngine) Width() int {
	return e.boardA.Width()
}

// Reset replaces both boards with empty ones and returns to Lobby
func (e *GameEngine) Reset() {
	e.boardA, _ = NewBoard(e.Height(), e.Width())
	e.boardB, _ = NewBoard(e.Height(), e.Width())
	e.activeIsA = true
	e.phase = PhaseLobby
}

// PlaceShip places a single ship on player's board during the Lobby
func (e *GameEngine) PlaceShip(player Player, kind ShipKind, anchor Coordinate) error {
	if e.phase != PhaseLobby {
		return fmt.Errorf("%w: ships can only be placed in %s, match is %s", ErrInvalidPhase, PhaseLobby, e.phase)
	}
	ship, err := NewShip(kind, anchor)
	if err != nil {
		return err
	}

	board := e.Board(player)
	if board.CountKind(kind) >= FleetComposition[kind] {
		return fmt.Errorf("%w: %s already has %d %s", ErrFleetFull, player.DisplayName(), FleetComposition[kind], kind.DisplayName())
	}
	return board.PlaceShip(ship)
}

// RandomizeFleet tops up both boards to the fleet composition using random
// anchors, keeping ships already placed. Dead-end layouts are discarded and
// redrawn, and an exhaustive search backs up the random draws, so it always
// returns. When the placed ships leave no room for the rest of the fleet it
// returns ErrFleetDoesNotFit and neither board changes.
func (e *GameEngine) RandomizeFleet() error {
	if e.phase != PhaseLobby {
		return fmt.Errorf("%w: fleet can only be randomized in %s, match is %s", ErrInvalidPhase, PhaseLobby, e.phase)
	}

	placedA := len(e.boardA.ships)
	if !completeFleet(e.boardA, e.rng) {
		return fmt.Errorf("%w: %s", ErrFleetDoesNotFit, PlayerOne.DisplayName())
	}
	if !completeFleet(e.boardB, e.rng) {
		e.boardA.removeShipsFrom(placedA)
		return fmt.Errorf("%w: %s", ErrFleetDoesNotFit, PlayerTwo.DisplayName())
	}
	return nil
}

// FleetComplete reports whether player has placed the whole fleet
func (e *GameEngine) FleetComplete(player Player) bool {
	return e.Board(player).FleetComplete()
}

// Start moves the match from Lobby to Playing. Player one moves first.
func (e *GameEngine) Start() error {
	if e.phase != PhaseLobby {
		return fmt.Errorf("%w: cannot start a match that is %s", ErrInvalidPhase, e.phase)
	}
	e.phase = PhasePlaying
	e.syncVisibility()
	return nil
}

// Fire resolves a shot by the active player against the opponent's board
func (e *GameEngine) Fire(coord Coordinate) (*FireResult, error) {
	if e.phase != PhasePlaying {
		return nil, fmt.Errorf("%w: cannot fire while match is %s", ErrInvalidPhase, e.phase)
	}

	shooter := e.ActivePlayer()
	target := e.Board(shooter.Opponent())

	outcome, err := target.ResolveShot(coord)
	if err != nil {
		return nil, err
	}

	result := &FireResult{
		Shooter: shooter,
		Target:  coord,
		Outcome: outcome,
	}

	switch outcome.Result {
	case ShotMiss:
		e.changeTurn()
	case ShotHit:
		// The winner is the shooter, decided before any turn change
		if target.AllShipsDestroyed() {
			e.end()
			winner := shooter
			result.Winner = &winner
		} else {
			e.changeTurn()
		}
	}

	result.NextTurn = e.ActivePlayer()
	result.Phase = e.phase
	return result, nil
}

// Winner returns the winning player once the match has ended
func (e *GameEngine) Winner() (Player, bool) {
	if e.phase != PhaseEnded {
		return "", false
	}
	return e.ActivePlayer(), true
}

// Stats returns running statistics for both players
func (e *GameEngine) Stats() []PlayerStats {
	stats := make([]PlayerStats, 0, 2)
	for _, p := range []Player{PlayerOne, PlayerTwo} {
		own := e.Board(p)
		opponent := e.Board(p.Opponent())
		stats = append(stats, PlayerStats{
			Player:         p,
			ShotsFired:     opponent.CountShots(),
			ShipsSunk:      opponent.CountShipsSunk(),
			ShipsRemaining: len(own.ships) - own.CountShipsSunk(),
		})
	}
	return stats
}

// changeTurn passes the turn and swaps which board is targetable
func (e *GameEngine) changeTurn() {
	e.activeIsA = !e.activeIsA
	e.boardA.toggleVisible()
	e.boardB.toggleVisible()
}

// syncVisibility shows the board the active player shoots at and hides theirs
func (e *GameEngine) syncVisibility() {
	e.Board(e.ActivePlayer()).SetVisible(false)
	e.Board(e.ActivePlayer().Opponent()).SetVisible(true)
}

func (e *GameEngine) end() {
	e.phase = PhaseEnded
	e.boardA.SetVisible(false)
	e.boardB.SetVisible(false)
}
