package engine

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func newTestMatch(t *testing.T) *GameEngine {
	t.Helper()
	match, err := NewMatch(8, 8, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return match
}

func mustFire(t *testing.T, e *GameEngine, row, col int) *FireResult {
	t.Helper()
	result, err := e.Fire(Coordinate{Row: row, Col: col})
	if err != nil {
		t.Fatalf("Fire(%d,%d) failed: %v", row, col, err)
	}
	return result
}

func TestNewEngine(t *testing.T) {
	config := createValidConfig()
	config.Height = 6
	config.Width = 10

	e, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if e.Phase() != PhaseLobby {
		t.Errorf("Expected lobby phase, got %s", e.Phase())
	}
	if e.Height() != 6 || e.Width() != 10 {
		t.Errorf("Expected 6x10 boards, got %dx%d", e.Height(), e.Width())
	}
	if e.ActivePlayer() != PlayerOne {
		t.Errorf("Expected player one to be active, got %s", e.ActivePlayer())
	}
	if e.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if _, ok := e.Winner(); ok {
		t.Error("Expected no winner initially")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createValidConfig()
	config.Height = 0
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithRand_Deterministic(t *testing.T) {
	build := func() *Snapshot {
		e, err := NewEngineWithRand(createValidConfig(), rand.New(rand.NewPCG(42, 42)))
		if err != nil {
			t.Fatalf("Failed to create engine: %v", err)
		}
		e.RandomizeFleet()
		return e.Serialize()
	}

	first, second := build(), build()
	for i := range first.Boards {
		a, b := first.Boards[i].Ships, second.Boards[i].Ships
		for j := range a {
			if a[j].Anchor() != b[j].Anchor() {
				t.Fatalf("Board %d ship %d placed differently with the same seed", i, j)
			}
		}
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	if e.Height() != 8 || e.Width() != 8 {
		t.Errorf("Expected 8x8 default match, got %dx%d", e.Height(), e.Width())
	}
}

func TestNewMatch_InvalidDimensions(t *testing.T) {
	if _, err := NewMatch(0, 8, nil); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension, got %v", err)
	}
}

func TestPlaceShip_FleetLimits(t *testing.T) {
	e := newTestMatch(t)

	if err := e.PlaceShip(PlayerOne, Box, Coordinate{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Failed to place box: %v", err)
	}
	if err := e.PlaceShip(PlayerOne, Box, Coordinate{Row: 4, Col: 4}); !errors.Is(err, ErrFleetFull) {
		t.Errorf("Expected ErrFleetFull for a second box, got %v", err)
	}

	// Player two's fleet is counted separately
	if err := e.PlaceShip(PlayerTwo, Box, Coordinate{Row: 0, Col: 0}); err != nil {
		t.Errorf("Expected player two to place a box, got %v", err)
	}

	if err := e.PlaceShip(PlayerOne, Line, Coordinate{Row: 0, Col: 3}); err != nil {
		t.Fatalf("Failed to place first line: %v", err)
	}
	if err := e.PlaceShip(PlayerOne, Line, Coordinate{Row: 0, Col: 5}); err != nil {
		t.Fatalf("Failed to place second line: %v", err)
	}
	if err := e.PlaceShip(PlayerOne, Line, Coordinate{Row: 4, Col: 0}); !errors.Is(err, ErrFleetFull) {
		t.Errorf("Expected ErrFleetFull for a third line, got %v", err)
	}

	if e.FleetComplete(PlayerOne) {
		t.Error("Fleet should not be complete without the L ship")
	}
	if err := e.PlaceShip(PlayerOne, LShape, Coordinate{Row: 4, Col: 0}); err != nil {
		t.Fatalf("Failed to place L ship: %v", err)
	}
	if !e.FleetComplete(PlayerOne) {
		t.Error("Fleet should be complete")
	}
}

func TestPlaceShip_OutOfBounds(t *testing.T) {
	e := newTestMatch(t)
	before := e.Board(PlayerOne).Snapshot()

	err := e.PlaceShip(PlayerOne, Box, Coordinate{Row: 7, Col: 7})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}

	after := e.Board(PlayerOne).Snapshot()
	for row := range before.Grid {
		for col := range before.Grid[row] {
			if before.Grid[row][col] != after.Grid[row][col] {
				t.Fatalf("Cell (%d,%d) changed after rejected placement", row, col)
			}
		}
	}
}

func TestPlaceShip_WrongPhase(t *testing.T) {
	e := newTestMatch(t)
	if err := e.Start(); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}
	if err := e.PlaceShip(PlayerOne, Line, Coordinate{}); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase, got %v", err)
	}
	if err := e.RandomizeFleet(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase from RandomizeFleet, got %v", err)
	}
}

func TestRandomizeFleet(t *testing.T) {
	e := newTestMatch(t)
	if err := e.PlaceShip(PlayerTwo, LShape, Coordinate{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Failed to place L ship: %v", err)
	}

	if err := e.RandomizeFleet(); err != nil {
		t.Fatalf("RandomizeFleet failed: %v", err)
	}

	for _, p := range []Player{PlayerOne, PlayerTwo} {
		if !e.FleetComplete(p) {
			t.Errorf("%s fleet should be complete", p.DisplayName())
		}
		board := e.Board(p)
		if got := len(board.Ships()); got != FleetSize() {
			t.Errorf("%s: expected %d ships, got %d", p.DisplayName(), FleetSize(), got)
		}
		if got := board.CountState(ShipPresent); got != FleetSize()*ShipCells {
			t.Errorf("%s: expected %d ship cells, got %d", p.DisplayName(), FleetSize()*ShipCells, got)
		}
	}

	// The hand-placed ship stays where it was
	if e.Board(PlayerTwo).Ships()[0].Anchor() != (Coordinate{Row: 0, Col: 0}) {
		t.Error("RandomizeFleet should keep ships already placed")
	}
}

// withinDeadline fails the test if fn has not returned after d
func withinDeadline(t *testing.T, d time.Duration, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(d):
		t.Fatalf("did not return within %s", d)
		return nil
	}
}

func TestRandomizeFleet_SmallBoards(t *testing.T) {
	tests := []struct {
		height, width int
		seeds         uint64
	}{
		{4, 6, 200},
		{6, 4, 200},
		{5, 5, 200},
		{6, 6, 2000},
	}

	for _, tt := range tests {
		for seed := uint64(0); seed < tt.seeds; seed++ {
			e, err := NewMatch(tt.height, tt.width, rand.New(rand.NewPCG(seed, seed+1)))
			if err != nil {
				t.Fatalf("Failed to create %dx%d match: %v", tt.height, tt.width, err)
			}
			if err := withinDeadline(t, 5*time.Second, e.RandomizeFleet); err != nil {
				t.Fatalf("%dx%d seed %d: RandomizeFleet failed: %v", tt.height, tt.width, seed, err)
			}
			if !e.FleetComplete(PlayerOne) || !e.FleetComplete(PlayerTwo) {
				t.Fatalf("%dx%d seed %d: fleet incomplete", tt.height, tt.width, seed)
			}
		}
	}
}

func TestRandomizeFleet_NoRoomLeft(t *testing.T) {
	// Two lines on columns B and E leave only C-D wide enough, and a box
	// plus an L ship need five rows there.
	blocked := func(e *GameEngine, p Player) {
		t.Helper()
		for _, col := range []int{1, 4} {
			if err := e.PlaceShip(p, Line, Coordinate{Row: 0, Col: col}); err != nil {
				t.Fatalf("Failed to place line: %v", err)
			}
		}
	}

	t.Run("player one blocked", func(t *testing.T) {
		e, _ := NewMatch(4, 6, rand.New(rand.NewPCG(1, 1)))
		blocked(e, PlayerOne)

		err := withinDeadline(t, 5*time.Second, e.RandomizeFleet)
		if !errors.Is(err, ErrFleetDoesNotFit) {
			t.Fatalf("Expected ErrFleetDoesNotFit, got %v", err)
		}
		if n := len(e.Board(PlayerOne).Ships()); n != 2 {
			t.Errorf("Expected player one's board untouched with 2 ships, got %d", n)
		}
		if n := len(e.Board(PlayerTwo).Ships()); n != 0 {
			t.Errorf("Expected player two's board untouched, got %d ships", n)
		}
	})

	t.Run("player two blocked", func(t *testing.T) {
		e, _ := NewMatch(4, 6, rand.New(rand.NewPCG(1, 1)))
		blocked(e, PlayerTwo)

		err := withinDeadline(t, 5*time.Second, e.RandomizeFleet)
		if !errors.Is(err, ErrFleetDoesNotFit) {
			t.Fatalf("Expected ErrFleetDoesNotFit, got %v", err)
		}
		board := e.Board(PlayerOne)
		if n := len(board.Ships()); n != 0 || board.CountState(ShipPresent) != 0 {
			t.Errorf("Expected player one's random ships rolled back, got %d ships", n)
		}
	})
}

func TestRandomizeFleet_TinyBoard(t *testing.T) {
	e, err := NewMatch(2, 2, rand.New(rand.NewPCG(5, 5)))
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	if err := withinDeadline(t, 5*time.Second, e.RandomizeFleet); !errors.Is(err, ErrFleetDoesNotFit) {
		t.Errorf("Expected ErrFleetDoesNotFit on a 2x2 board, got %v", err)
	}
}

func TestFleetFits(t *testing.T) {
	tests := []struct {
		height, width int
		want          bool
	}{
		{4, 6, true},
		{6, 4, true},
		{8, 8, true},
		{26, 26, true},
		{4, 4, false},
		{3, 26, false},
		{26, 1, false},
		{2, 2, false},
	}

	for _, tt := range tests {
		if got := FleetFits(tt.height, tt.width); got != tt.want {
			t.Errorf("FleetFits(%d, %d) = %v, want %v", tt.height, tt.width, got, tt.want)
		}
	}
}

func TestMissingShips_MostConstrainedFirst(t *testing.T) {
	b, _ := NewBoard(4, 6)
	kinds := missingShips(b)
	if len(kinds) != FleetSize() {
		t.Fatalf("Expected %d missing ships, got %v", FleetSize(), kinds)
	}
	// On a 4-row board a line has 6 anchors, an L ship 10 and a box 15
	want := []ShipKind{Line, Line, LShape, Box}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("missingShips() = %v, want %v", kinds, want)
		}
	}
}

func TestStart(t *testing.T) {
	e := newTestMatch(t)

	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if e.Phase() != PhasePlaying {
		t.Errorf("Expected playing phase, got %s", e.Phase())
	}
	if !e.ActiveIsA() {
		t.Error("Player one should move first")
	}
	if e.Board(PlayerOne).IsVisible() || !e.Board(PlayerTwo).IsVisible() {
		t.Error("Only the target board should be visible after start")
	}

	if err := e.Start(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase on second start, got %v", err)
	}
}

func TestFire_WrongPhase(t *testing.T) {
	e := newTestMatch(t)
	if _, err := e.Fire(Coordinate{}); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase in lobby, got %v", err)
	}
}

func TestFire_OutOfBounds(t *testing.T) {
	e := newTestMatch(t)
	e.Start()

	if _, err := e.Fire(Coordinate{Row: -1, Col: 2}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if e.ActivePlayer() != PlayerOne {
		t.Error("Rejected shot must not change the turn")
	}
}

func TestFire_MissChangesTurn(t *testing.T) {
	e := newTestMatch(t)
	e.PlaceShip(PlayerTwo, Line, Coordinate{Row: 0, Col: 0})
	e.Start()

	result := mustFire(t, e, 7, 7)

	if result.Outcome.Result != ShotMiss {
		t.Errorf("Expected miss, got %s", result.Outcome.Result)
	}
	if state, _ := e.Board(PlayerTwo).Cell(Coordinate{Row: 7, Col: 7}); state != Miss {
		t.Errorf("Expected (7,7) marked miss, got %s", state)
	}
	if e.ActivePlayer() != PlayerTwo || result.NextTurn != PlayerTwo || !result.TurnChanged() {
		t.Error("Expected turn to pass to player two")
	}
	if !e.Board(PlayerOne).IsVisible() || e.Board(PlayerTwo).IsVisible() {
		t.Error("Expected visibility to swap with the turn")
	}
}

func TestFire_AlreadyShotKeepsTurn(t *testing.T) {
	e := newTestMatch(t)
	e.PlaceShip(PlayerTwo, Line, Coordinate{Row: 0, Col: 0})
	e.PlaceShip(PlayerOne, Line, Coordinate{Row: 0, Col: 0})
	e.Start()

	mustFire(t, e, 7, 7) // player one misses
	mustFire(t, e, 7, 7) // player two misses
	visibleA := e.Board(PlayerOne).IsVisible()

	result := mustFire(t, e, 7, 7) // player one repeats

	if result.Outcome.Result != ShotAlreadyShot {
		t.Errorf("Expected already_shot, got %s", result.Outcome.Result)
	}
	if e.ActivePlayer() != PlayerOne || result.TurnChanged() {
		t.Error("Repeat shot must not change the turn")
	}
	if e.Board(PlayerOne).IsVisible() != visibleA {
		t.Error("Repeat shot must not change visibility")
	}
}

func TestFire_SinkLastShipWins(t *testing.T) {
	e := newTestMatch(t)
	if err := e.PlaceShip(PlayerTwo, Line, Coordinate{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Failed to place ship: %v", err)
	}
	e.Start()

	for row := 0; row < 3; row++ {
		result := mustFire(t, e, row, 0)
		if result.Outcome.Result != ShotHit || result.Outcome.Sunk() {
			t.Fatalf("Shot %d: expected hit without sink, got %+v", row, result.Outcome)
		}
		if result.NextTurn != PlayerTwo {
			t.Fatalf("Shot %d: a hit passes the turn", row)
		}
		// Player two shoots back at an empty board
		mustFire(t, e, 7, 7-row)
	}

	result := mustFire(t, e, 3, 0)

	if result.Outcome.Result != ShotHit || !result.Outcome.Sunk() || *result.Outcome.SunkKind != Line {
		t.Fatalf("Expected hit sinking a line ship, got %+v", result.Outcome)
	}
	if result.Winner == nil || *result.Winner != PlayerOne {
		t.Fatalf("Expected player one to win, got %v", result.Winner)
	}
	if result.Phase != PhaseEnded || !e.IsGameOver() {
		t.Errorf("Expected match to end, got %s", e.Phase())
	}
	if winner, ok := e.Winner(); !ok || winner != PlayerOne {
		t.Errorf("Winner() = %s, %v; want player one", winner, ok)
	}
	if e.Board(PlayerOne).IsVisible() || e.Board(PlayerTwo).IsVisible() {
		t.Error("Both boards should be hidden once the match ends")
	}

	if _, err := e.Fire(Coordinate{Row: 5, Col: 5}); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase after the match ended, got %v", err)
	}
}

func TestFire_TurnFlipsOncePerResolvedShot(t *testing.T) {
	e := newTestMatch(t)
	e.RandomizeFleet()
	e.Start()

	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 300 && !e.IsGameOver(); i++ {
		before := e.ActivePlayer()
		target := e.Board(before.Opponent())
		visibleBefore := target.IsVisible()

		result := mustFire(t, e, rng.IntN(8), rng.IntN(8))

		switch {
		case result.Outcome.Result == ShotAlreadyShot:
			if e.ActivePlayer() != before {
				t.Fatalf("Shot %d: already_shot changed the turn", i)
			}
			if target.IsVisible() != visibleBefore {
				t.Fatalf("Shot %d: already_shot changed visibility", i)
			}
		case result.Winner != nil:
			if *result.Winner != before {
				t.Fatalf("Shot %d: winner should be the shooter", i)
			}
		default:
			if e.ActivePlayer() != before.Opponent() {
				t.Fatalf("Shot %d: resolved shot should pass the turn", i)
			}
			if target.IsVisible() == visibleBefore {
				t.Fatalf("Shot %d: resolved shot should swap visibility", i)
			}
		}
	}
}

func TestFire_PlayOutRandomMatch(t *testing.T) {
	e := newTestMatch(t)
	e.RandomizeFleet()
	e.Start()

	// Sweep every cell in order for both players; someone must win
	var shots [2]int
	for !e.IsGameOver() {
		idx := 0
		if e.ActivePlayer() == PlayerTwo {
			idx = 1
		}
		if shots[idx] >= 64 {
			t.Fatal("Swept the whole board without ending the match")
		}
		n := shots[idx]
		shots[idx]++
		mustFire(t, e, n/8, n%8)
	}

	winner, ok := e.Winner()
	if !ok {
		t.Fatal("Expected a winner")
	}
	loser := e.Board(winner.Opponent())
	if !loser.AllShipsDestroyed() || loser.CountShipsSunk() != FleetSize() {
		t.Error("Loser's fleet should be fully sunk")
	}
	if e.Board(winner).AllShipsDestroyed() {
		t.Error("Winner's fleet cannot be fully sunk")
	}
}

func TestStats(t *testing.T) {
	e := newTestMatch(t)
	e.PlaceShip(PlayerOne, Box, Coordinate{Row: 0, Col: 0})
	e.PlaceShip(PlayerTwo, Box, Coordinate{Row: 0, Col: 0})
	e.PlaceShip(PlayerTwo, Line, Coordinate{Row: 0, Col: 4})
	e.Start()

	mustFire(t, e, 0, 0) // p1 hits
	mustFire(t, e, 7, 7) // p2 misses
	mustFire(t, e, 0, 1) // p1 hits
	mustFire(t, e, 6, 6) // p2 misses
	mustFire(t, e, 1, 0) // p1 hits
	mustFire(t, e, 5, 5) // p2 misses
	mustFire(t, e, 1, 1) // p1 sinks the box

	stats := e.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 players, got %d", len(stats))
	}

	p1, p2 := stats[0], stats[1]
	if p1.Player != PlayerOne || p1.ShotsFired != 4 || p1.ShipsSunk != 1 || p1.ShipsRemaining != 1 {
		t.Errorf("Unexpected player one stats: %+v", p1)
	}
	if p2.Player != PlayerTwo || p2.ShotsFired != 3 || p2.ShipsSunk != 0 || p2.ShipsRemaining != 1 {
		t.Errorf("Unexpected player two stats: %+v", p2)
	}
}

func TestReset(t *testing.T) {
	e := newTestMatch(t)
	e.RandomizeFleet()
	e.Start()
	mustFire(t, e, 0, 0)

	e.Reset()

	if e.Phase() != PhaseLobby || e.ActivePlayer() != PlayerOne {
		t.Errorf("Expected fresh lobby, got %s with %s active", e.Phase(), e.ActivePlayer())
	}
	for _, p := range []Player{PlayerOne, PlayerTwo} {
		b := e.Board(p)
		if len(b.Ships()) != 0 || b.CountShots() != 0 || b.IsVisible() {
			t.Errorf("%s board should be empty and hidden after reset", p.DisplayName())
		}
	}
	if e.Height() != 8 || e.Width() != 8 {
		t.Error("Reset must keep the board size")
	}
}
