package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

// gameServiceImpl implements the GameService interface. The mutex
// serializes every engine call, so one match never sees two operations at once.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Match:          view.NewMatchView(sess.Engine),
		MatchConfig:    sess.Config,
	}
}

// session fetches a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// persist saves a session after a mutation. Failures are logged, not returned.
func (s *gameServiceImpl) persist(sessionID, action string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, action, err)
	}
}

// CreateSession creates a new match session in the Lobby phase
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MatchConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	info := s.sessionInfo(sess)
	if configName != "" {
		info.ConfigName = strings.TrimSuffix(configName, ".json")
	}
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// PlaceShip places one ship on a player's board during the Lobby
func (s *gameServiceImpl) PlaceShip(ctx context.Context, sessionID string, player engine.Player, kind engine.ShipKind, anchor engine.Coordinate) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player != engine.PlayerOne && player != engine.PlayerTwo {
		return nil, fmt.Errorf("unknown player %q", player)
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Engine.PlaceShip(player, kind, anchor); err != nil {
		return nil, err
	}
	s.persist(sessionID, "ship placement")

	return &ActionResult{
		Match: view.NewMatchView(sess.Engine),
		Events: []GameEvent{{
			Type:      EventPlaced,
			Message:   fmt.Sprintf("%s placed a %s at %s", player.DisplayName(), kind.DisplayName(), view.CoordinateLabel(anchor)),
			Timestamp: time.Now(),
			Player:    player,
			Target:    &anchor,
		}},
	}, nil
}

// RandomizeFleet completes both fleets with random placements
func (s *gameServiceImpl) RandomizeFleet(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Engine.RandomizeFleet(); err != nil {
		return nil, err
	}
	s.persist(sessionID, "fleet randomization")

	return &ActionResult{
		Match: view.NewMatchView(sess.Engine),
		Events: []GameEvent{{
			Type:      EventRandomized,
			Message:   "Both fleets are in position",
			Timestamp: time.Now(),
		}},
	}, nil
}

// StartMatch completes any missing ships and starts play
func (s *gameServiceImpl) StartMatch(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Engine.Phase() != engine.PhaseLobby {
		return nil, fmt.Errorf("%w: match is already %s", engine.ErrInvalidPhase, sess.Engine.Phase())
	}
	if err := sess.Engine.RandomizeFleet(); err != nil {
		return nil, err
	}
	if err := sess.Engine.Start(); err != nil {
		return nil, err
	}
	s.persist(sessionID, "match start")

	first := sess.Engine.ActivePlayer()
	notification := view.GameStarted(sess.Config.Messages, first)

	return &ActionResult{
		Match:        view.NewMatchView(sess.Engine),
		Notification: &notification,
		Events: []GameEvent{{
			Type:      EventStarted,
			Message:   notification.Body,
			Timestamp: time.Now(),
			Player:    first,
		}},
	}, nil
}

// Fire resolves a shot by the active player
func (s *gameServiceImpl) Fire(ctx context.Context, sessionID string, target engine.Coordinate) (*FireResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	shot, err := sess.Engine.Fire(target)
	if err != nil {
		return nil, err
	}
	s.persist(sessionID, "shot")

	result := &FireResult{
		Shot:         shot,
		Notification: view.Notify(sess.Config.Messages, shot),
		Events:       fireEvents(shot),
		Match:        view.NewMatchView(sess.Engine),
	}
	if shot.Winner != nil {
		result.Summary = view.Summary(sess.Engine)
	}
	return result, nil
}

// fireEvents lists what happened during a single shot, in order
func fireEvents(shot *engine.FireResult) []GameEvent {
	now := time.Now()
	target := shot.Target
	label := view.CoordinateLabel(target)
	events := []GameEvent{}

	switch shot.Outcome.Result {
	case engine.ShotAlreadyShot:
		return append(events, GameEvent{
			Type:      EventAlreadyShot,
			Message:   fmt.Sprintf("%s was already shot at", label),
			Timestamp: now,
			Player:    shot.Shooter,
			Target:    &target,
		})
	case engine.ShotMiss:
		events = append(events, GameEvent{
			Type:      EventMiss,
			Message:   fmt.Sprintf("%s missed at %s", shot.Shooter.DisplayName(), label),
			Timestamp: now,
			Player:    shot.Shooter,
			Target:    &target,
		})
	case engine.ShotHit:
		events = append(events, GameEvent{
			Type:      EventHit,
			Message:   fmt.Sprintf("%s hit at %s", shot.Shooter.DisplayName(), label),
			Timestamp: now,
			Player:    shot.Shooter,
			Target:    &target,
		})
		if shot.Outcome.Sunk() {
			events = append(events, GameEvent{
				Type:      EventSunk,
				Message:   fmt.Sprintf("%s sank a %s", shot.Shooter.DisplayName(), shot.Outcome.SunkKind.DisplayName()),
				Timestamp: now,
				Player:    shot.Shooter,
				Target:    &target,
			})
		}
	}

	if shot.Winner != nil {
		return append(events, GameEvent{
			Type:      EventVictory,
			Message:   fmt.Sprintf("%s has won!", shot.Winner.DisplayName()),
			Timestamp: now,
			Player:    *shot.Winner,
		})
	}
	if shot.TurnChanged() {
		events = append(events, GameEvent{
			Type:      EventTurnChange,
			Message:   fmt.Sprintf("%s's turn", shot.NextTurn.DisplayName()),
			Timestamp: now,
			Player:    shot.NextTurn,
		})
	}
	return events
}

// RestartMatch replaces the session's match with a fresh Lobby match
func (s *gameServiceImpl) RestartMatch(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	fresh, err := engine.NewEngine(sess.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if err := s.sessions.Replace(sessionID, fresh); err != nil {
		return nil, fmt.Errorf("failed to restart match: %w", err)
	}

	return &ActionResult{
		Match: view.NewMatchView(fresh),
		Events: []GameEvent{{
			Type:      EventRestart,
			Message:   "Match restarted, place your ships",
			Timestamp: time.Now(),
		}},
	}, nil
}

// GetMatchView returns the presentation view of a match
func (s *gameServiceImpl) GetMatchView(ctx context.Context, sessionID string) (*view.MatchView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return view.NewMatchView(sess.Engine), nil
}

// GetSnapshot returns the full persisted form of a match
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Serialize(), nil
}

// GetStats returns running per-player statistics
func (s *gameServiceImpl) GetStats(ctx context.Context, sessionID string) (*StatsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		Phase: sess.Engine.Phase(),
		Stats: sess.Engine.Stats(),
	}
	if winner, ok := sess.Engine.Winner(); ok {
		resp.Winner = &winner
	}
	return resp, nil
}

// ListConfigs returns available match configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific match configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MatchConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a match configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MatchConfig) error {
	return s.configs.SaveConfig(configName, config)
}
