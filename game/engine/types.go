package engine

// CellState represents the contents of a single board cell
type CellState string

const (
	Empty       CellState = "empty"
	ShipPresent CellState = "ship"
	Hit         CellState = "hit"
	Miss        CellState = "miss"

	// Validation constants
	MinBoardSide  = 4
	MaxBoardSide  = 26
	MinBoardCells = 24
	ShipCells     = 4
)

// IsValid reports whether s is one of the four known cell states
func (s CellState) IsValid() bool {
	switch s {
	case Empty, ShipPresent, Hit, Miss:
		return true
	}
	return false
}

// IsResolved reports whether a shot has already landed on the cell
func (s CellState) IsResolved() bool {
	return s == Hit || s == Miss
}

// Coordinate represents a zero-based row/column position
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the coordinate translated by offset
func (c Coordinate) Add(offset Coordinate) Coordinate {
	return Coordinate{Row: c.Row + offset.Row, Col: c.Col + offset.Col}
}

// GamePhase represents the match lifecycle
type GamePhase string

const (
	PhaseLobby   GamePhase = "lobby"
	PhasePlaying GamePhase = "playing"
	PhaseEnded   GamePhase = "ended"
)

// IsValid reports whether p is a known phase
func (p GamePhase) IsValid() bool {
	return p == PhaseLobby || p == PhasePlaying || p == PhaseEnded
}

// Player identifies one side of a match
type Player string

const (
	PlayerOne Player = "player1"
	PlayerTwo Player = "player2"
)

// Opponent returns the other player
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// DisplayName returns the human readable player name
func (p Player) DisplayName() string {
	if p == PlayerOne {
		return "Player 1"
	}
	return "Player 2"
}

// ShotResult is the kind of outcome a shot produced
type ShotResult string

const (
	ShotAlreadyShot ShotResult = "already_shot"
	ShotMiss        ShotResult = "miss"
	ShotHit         ShotResult = "hit"
)

// ShotOutcome is the result of resolving a shot against a board.
// SunkKind is set only when the hit completed a ship.
type ShotOutcome struct {
	Result   ShotResult `json:"result"`
	SunkKind *ShipKind  `json:"sunk_kind,omitempty"`
}

// Sunk reports whether the shot sank a ship
func (o ShotOutcome) Sunk() bool {
	return o.SunkKind != nil
}

// FireResult describes everything that happened during a single Fire call
type FireResult struct {
	Shooter  Player      `json:"shooter"`
	Target   Coordinate  `json:"target"`
	Outcome  ShotOutcome `json:"outcome"`
	Winner   *Player     `json:"winner,omitempty"`
	NextTurn Player      `json:"next_turn"`
	Phase    GamePhase   `json:"phase"`
}

// TurnChanged reports whether the shot passed the turn to the opponent
func (r FireResult) TurnChanged() bool {
	return r.Shooter != r.NextTurn
}

// PlayerStats holds the running statistics for one player
type PlayerStats struct {
	Player         Player `json:"player"`
	ShotsFired     int    `json:"shots_fired"`
	ShipsSunk      int    `json:"ships_sunk"`
	ShipsRemaining int    `json:"ships_remaining"`
}

// MatchConfig represents a match configuration loaded from JSON
type MatchConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Height      int      `json:"height"`
	Width       int      `json:"width"`
	Messages    Messages `json:"messages"`
}

// Messages holds the notification texts shown to players.
// In Sunk the %s verb is the ship name; everywhere else it is a player name.
type Messages struct {
	GameStarted string `json:"game_started"`
	Hit         string `json:"hit"`
	Sunk        string `json:"sunk"`
	Miss        string `json:"miss"`
	AlreadyShot string `json:"already_shot"`
	Victory     string `json:"victory"`
}
