// Package config provides match configuration management for the battleship server.
//
// The config package handles:
//   - Loading match configurations from JSON files
//   - Validation through engine.ValidateMatchConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Match configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board height and width, shared by both players
//   - Notification texts for the start of play, hits, sinks, misses,
//     repeated shots and victory
//
// Available Configurations:
//
//   - classic: 8x8 boards, the default
//   - compact: 6x6 boards where the fleet covers almost half the grid
//   - open_sea: 12x12 boards with a sparse fleet
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	matchConfig, err := manager.LoadConfig("compact")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When no classic.json exists the first valid file becomes the default, and
// an empty directory falls back to engine.DefaultMatchConfig.
package config
