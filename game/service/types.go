package service

import (
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

// SessionInfo provides information about a match session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	Match          *view.MatchView     `json:"match"`
	MatchConfig    *engine.MatchConfig `json:"match_config"`
}

// Event types emitted by match operations
const (
	EventPlaced      = "ship_placed"
	EventRandomized  = "fleet_randomized"
	EventStarted     = "game_started"
	EventHit         = "hit"
	EventMiss        = "miss"
	EventSunk        = "sunk"
	EventAlreadyShot = "already_shot"
	EventTurnChange  = "turn_change"
	EventVictory     = "victory"
	EventRestart     = "restart"
)

// GameEvent represents an event that occurred during a match
type GameEvent struct {
	Type      string             `json:"type"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Player    engine.Player      `json:"player,omitempty"`
	Target    *engine.Coordinate `json:"target,omitempty"`
}

// ActionResult is returned by lobby operations that change a match
type ActionResult struct {
	Match        *view.MatchView    `json:"match"`
	Notification *view.Notification `json:"notification,omitempty"`
	Events       []GameEvent        `json:"events"`
}

// FireResult contains the outcome of a single shot
type FireResult struct {
	Shot         *engine.FireResult   `json:"shot"`
	Notification view.Notification    `json:"notification"`
	Events       []GameEvent          `json:"events"`
	Match        *view.MatchView      `json:"match"`
	Summary      []view.PlayerSummary `json:"summary,omitempty"`
}

// StatsResponse holds running statistics for a match
type StatsResponse struct {
	Phase  engine.GamePhase     `json:"phase"`
	Winner *engine.Player       `json:"winner,omitempty"`
	Stats  []engine.PlayerStats `json:"stats"`
}

// ConfigInfo provides information about a match configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
}
