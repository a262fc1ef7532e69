package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ValidateMatchConfig validates a match configuration for correctness and playability
func ValidateMatchConfig(config *MatchConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate board size
	if config.Height < MinBoardSide || config.Height > MaxBoardSide {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSide, MaxBoardSide, config.Height)
	}
	if config.Width < MinBoardSide || config.Width > MaxBoardSide {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSide, MaxBoardSide, config.Width)
	}

	if area := config.Height * config.Width; area < MinBoardCells {
		return fmt.Errorf("config validation: board must have at least %d cells for the fleet, got %d", MinBoardCells, area)
	}
	for _, kind := range ShipKinds {
		rows, cols := kind.Extent()
		if rows > config.Height || cols > config.Width {
			return fmt.Errorf("config validation: %s needs %dx%d but board is %dx%d",
				kind.DisplayName(), rows, cols, config.Height, config.Width)
		}
	}
	if !FleetFits(config.Height, config.Width) {
		return fmt.Errorf("config validation: no layout fits the whole fleet on a %dx%d board", config.Height, config.Width)
	}

	// Validate messages
	m := config.Messages
	required := []struct {
		key   string
		value string
		verbs int
	}{
		{"game_started", m.GameStarted, 1},
		{"hit", m.Hit, 1},
		{"sunk", m.Sunk, 1},
		{"miss", m.Miss, 1},
		{"already_shot", m.AlreadyShot, 0},
		{"victory", m.Victory, 1},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("config validation: messages.%s is required", r.key)
		}
		if r.verbs > 0 && !strings.Contains(r.value, "%s") {
			return fmt.Errorf("config validation: messages.%s must contain %%s", r.key)
		}
	}

	return nil
}

// LoadMatchConfig loads a match configuration from a JSON file
func LoadMatchConfig(filename string) (*MatchConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config MatchConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", filename, err)
	}

	if err := ValidateMatchConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", filename, err)
	}

	return &config, nil
}

// DefaultMessages returns the stock notification texts
func DefaultMessages() Messages {
	return Messages{
		GameStarted: "The game has started. It is %s's turn.",
		Hit:         "You hit a ship! It is now %s's turn!",
		Sunk:        "You have sunk a %s!",
		Miss:        "You did not hit any ships! It is now %s's turn!",
		AlreadyShot: "You have already shot at this cell. Choose a different cell.",
		Victory:     "%s has sunk all opposing ships.",
	}
}

// DefaultMatchConfig returns the classic 8x8 configuration
func DefaultMatchConfig() *MatchConfig {
	return &MatchConfig{
		Name:        "Classic",
		Description: "Classic 8x8 match with two line ships, a box ship and an L ship per player",
		Height:      8,
		Width:       8,
		Messages:    DefaultMessages(),
	}
}
