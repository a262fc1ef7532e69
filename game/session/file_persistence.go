package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session and its match snapshot to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	configID, err := fp.getConfigIDFromName(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	match, err := json.Marshal(session.Engine.Serialize())
	if err != nil {
		return fmt.Errorf("failed to marshal match snapshot: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID, // Store config ID, not display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Match:          match,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	// Write then rename so readers never see a half-written file
	filePath := fp.getFilePath(session.ID)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file. A damaged file or match
// snapshot loads as a fresh, un-started match instead of failing.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		log.Printf("Warning: Session %s file is malformed, starting a fresh match: %v", id, err)
		data = PersistedSessionData{}
	}
	if data.ID == "" {
		data.ID = id
	}
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	if data.LastAccessedAt.IsZero() {
		data.LastAccessedAt = now
	}

	matchConfig := fp.configManager.GetDefault()
	if data.ConfigName != "" {
		loaded, err := fp.configManager.LoadConfig(data.ConfigName)
		if err != nil {
			log.Printf("Warning: Session %s config '%s' unavailable, using default: %v", id, data.ConfigName, err)
		} else {
			matchConfig = loaded
		}
	}

	gameEngine, err := restoreMatch(data.Match)
	if err != nil {
		log.Printf("Warning: Session %s match could not be restored, starting a fresh match: %v", id, err)
		gameEngine, err = engine.NewEngine(matchConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create game engine: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         matchConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// restoreMatch decodes and validates a persisted match snapshot
func restoreMatch(raw json.RawMessage) (*engine.GameEngine, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: no match recorded", engine.ErrInvalidSnapshot)
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrInvalidSnapshot, err)
	}

	return engine.Deserialize(&snapshot)
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
