package service

import (
	"context"
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

// GameService defines all match-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Lobby
	PlaceShip(ctx context.Context, sessionID string, player engine.Player, kind engine.ShipKind, anchor engine.Coordinate) (*ActionResult, error)
	RandomizeFleet(ctx context.Context, sessionID string) (*ActionResult, error)
	StartMatch(ctx context.Context, sessionID string) (*ActionResult, error)

	// Play
	Fire(ctx context.Context, sessionID string, target engine.Coordinate) (*FireResult, error)
	RestartMatch(ctx context.Context, sessionID string) (*ActionResult, error)

	// Match State
	GetMatchView(ctx context.Context, sessionID string) (*view.MatchView, error)
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetStats(ctx context.Context, sessionID string) (*StatsResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.MatchConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.MatchConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Replace(id string, eng *engine.GameEngine) error
	Save(id string) error
}

// ConfigManager handles match configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MatchConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MatchConfig
	SaveConfig(name string, config *engine.MatchConfig) error
}

// Session represents an active match session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.MatchConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
