package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *MatchConfig {
	return &MatchConfig{
		Name:        "Test Config",
		Description: "A valid test configuration",
		Height:      8,
		Width:       8,
		Messages: Messages{
			GameStarted: "Started, %s moves first",
			Hit:         "Hit! %s is next",
			Sunk:        "Sunk a %s",
			Miss:        "Miss! %s is next",
			AlreadyShot: "Already shot there",
			Victory:     "%s wins",
		},
	}
}

func TestValidateMatchConfig_ValidConfig(t *testing.T) {
	if err := ValidateMatchConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got: %v", err)
	}
}

func TestValidateMatchConfig_DefaultConfig(t *testing.T) {
	if err := ValidateMatchConfig(DefaultMatchConfig()); err != nil {
		t.Errorf("Expected default config to pass validation, got: %v", err)
	}
}

func TestValidateMatchConfig_Nil(t *testing.T) {
	if err := ValidateMatchConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateMatchConfig_MissingName(t *testing.T) {
	config := createValidConfig()
	config.Name = ""
	err := ValidateMatchConfig(config)
	if err == nil {
		t.Fatal("Expected error for missing name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected name validation error, got: %v", err)
	}
}

func TestValidateMatchConfig_MissingDescription(t *testing.T) {
	config := createValidConfig()
	config.Description = ""
	err := ValidateMatchConfig(config)
	if err == nil {
		t.Fatal("Expected error for missing description")
	}
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("Expected description validation error, got: %v", err)
	}
}

func TestValidateMatchConfig_BoardSize(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		width   int
		wantErr string
	}{
		{"zero height", 0, 8, "height must be between"},
		{"negative width", 8, -1, "width must be between"},
		{"too tall", MaxBoardSide + 1, 8, "height must be between"},
		{"too wide", 8, MaxBoardSide + 1, "width must be between"},
		{"too few cells", 4, 5, "at least 24 cells"},
		{"minimum playable", 4, 6, ""},
		{"rectangular", 6, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			config.Height = tt.height
			config.Width = tt.width
			err := ValidateMatchConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateMatchConfig_MissingMessages(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MatchConfig)
		key    string
	}{
		{"game started", func(c *MatchConfig) { c.Messages.GameStarted = "" }, "game_started"},
		{"hit", func(c *MatchConfig) { c.Messages.Hit = "" }, "hit"},
		{"sunk", func(c *MatchConfig) { c.Messages.Sunk = "" }, "sunk"},
		{"miss", func(c *MatchConfig) { c.Messages.Miss = "" }, "miss"},
		{"already shot", func(c *MatchConfig) { c.Messages.AlreadyShot = "" }, "already_shot"},
		{"victory", func(c *MatchConfig) { c.Messages.Victory = "" }, "victory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.modify(config)
			err := ValidateMatchConfig(config)
			if err == nil {
				t.Fatal("Expected error for missing message")
			}
			if !strings.Contains(err.Error(), "messages."+tt.key) {
				t.Errorf("Expected error about messages.%s, got: %v", tt.key, err)
			}
		})
	}
}

func TestValidateMatchConfig_FormatStrings(t *testing.T) {
	config := createValidConfig()
	config.Messages.Victory = "Somebody won"
	err := ValidateMatchConfig(config)
	if err == nil {
		t.Fatal("Expected error for victory message without a string verb")
	}
	if !strings.Contains(err.Error(), "must contain %s") {
		t.Errorf("Expected format string error, got: %v", err)
	}
}

func TestLoadMatchConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		data, err := json.Marshal(createValidConfig())
		if err != nil {
			t.Fatalf("Failed to marshal config: %v", err)
		}
		path := filepath.Join(dir, "valid.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		config, err := LoadMatchConfig(path)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Config" || config.Height != 8 || config.Width != 8 {
			t.Errorf("Unexpected config loaded: %+v", config)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadMatchConfig(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, err := LoadMatchConfig(path); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Height = 2
		data, _ := json.Marshal(config)
		path := filepath.Join(dir, "small.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		_, err := LoadMatchConfig(path)
		if err == nil {
			t.Fatal("Expected validation error")
		}
		if !strings.Contains(err.Error(), "invalid config") {
			t.Errorf("Expected invalid config error, got: %v", err)
		}
	})
}
