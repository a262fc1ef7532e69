// Command validate provides a small CLI that validates match configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions within the supported range
//   - Required message keys and their %s placeholders
//   - Fit: a full fleet can be laid out on one board without overlap
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// Config mirrors the JSON schema for a match configuration. Messages stay a
// map so that missing keys can be told apart from empty ones.
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
	Messages    map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// requiredMessages maps every message key to whether it needs a %s verb
var requiredMessages = []struct {
	key      string
	needsArg bool
}{
	{"game_started", true},
	{"hit", true},
	{"sunk", true},
	{"miss", true},
	{"already_shot", false},
	{"victory", true},
}

// validateConfig loads and validates a single configuration JSON file.
// Unlike engine.ValidateMatchConfig it keeps going after the first problem
// so a single run reports everything that is wrong with a file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if strings.TrimSpace(config.Name) == "" {
		result.fail("name is required")
	}
	if strings.TrimSpace(config.Description) == "" {
		result.fail("description is required")
	}

	// Validate board size
	dimensionsOK := true
	for _, d := range []struct {
		name  string
		value int
	}{{"height", config.Height}, {"width", config.Width}} {
		if d.value < engine.MinBoardSide || d.value > engine.MaxBoardSide {
			result.fail("%s must be between %d and %d, got %d", d.name, engine.MinBoardSide, engine.MaxBoardSide, d.value)
			dimensionsOK = false
		}
	}
	if dimensionsOK && config.Height*config.Width < engine.MinBoardCells {
		result.fail("board must have at least %d cells, got %d", engine.MinBoardCells, config.Height*config.Width)
		dimensionsOK = false
	}

	// Validate messages
	for _, msg := range requiredMessages {
		value, exists := config.Messages[msg.key]
		switch {
		case !exists || value == "":
			result.fail("Missing required message: %s", msg.key)
		case msg.needsArg && !strings.Contains(value, "%s"):
			result.fail("Message %s must contain %%s", msg.key)
		}
	}

	// Fit validation - only meaningful on a board of legal size
	if dimensionsOK {
		fit := validateFit(config.Height, config.Width)
		if !fit.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, fit.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Height, config.Width))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Fleet: %d ships, %d of %d cells",
			engine.FleetSize(), engine.FleetSize()*engine.ShipCells, config.Height*config.Width))
	}

	return result
}

// validateFit lays out a full fleet first-fit, scanning anchors row by row,
// to show that random placement has at least one solution to find.
func validateFit(height, width int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	match, err := engine.NewMatch(height, width, nil)
	if err != nil {
		result.fail("Cannot build board: %v", err)
		return result
	}

	var anchors []string
	for _, kind := range engine.ShipKinds {
		for n := 0; n < engine.FleetComposition[kind]; n++ {
			anchor, ok := placeFirstFit(match, kind, height, width)
			if !ok {
				result.fail("Fit failure: no room left for a %s after placing %d ships", kind.DisplayName(), len(anchors))
				return result
			}
			anchors = append(anchors, fmt.Sprintf("%s@(%d,%d)", kind, anchor.Row, anchor.Col))
		}
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Fit: full fleet placed at %s", strings.Join(anchors, " ")))
	return result
}

func placeFirstFit(match *engine.GameEngine, kind engine.ShipKind, height, width int) (engine.Coordinate, bool) {
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			anchor := engine.Coordinate{Row: row, Col: col}
			if err := match.PlaceShip(engine.PlayerOne, kind, anchor); err == nil {
				return anchor, true
			}
		}
	}
	return engine.Coordinate{}, false
}

// main scans the configs directory (../configs unless given as the first
// argument) for *.json files and validates each one, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
