// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes board dimensions,
// how much of the board a full fleet covers, and how many anchor positions
// each ship kind has, flagging boards that are too crowded for comfortable
// random placement.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/battleship/game/engine"
)

// crowdedDensity is the share of cells two fleets may cover before a board
// is reported as crowded
const crowdedDensity = 0.5

// Analysis holds the numbers printed for one configuration.
type Analysis struct {
	Name      string
	Height    int
	Width     int
	Area      int
	Footprint int
	Density   float64
	Anchors   map[engine.ShipKind]int
}

// Crowded reports whether both fleets together fill more than half the board
func (a Analysis) Crowded() bool {
	return a.Density > crowdedDensity
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No configuration files found in %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, path := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		if err := analyzeConfig(path, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// analyze computes the placement heuristics for a configuration
func analyze(config *engine.MatchConfig) Analysis {
	area := config.Height * config.Width
	footprint := engine.FleetSize() * engine.ShipCells

	a := Analysis{
		Name:      config.Name,
		Height:    config.Height,
		Width:     config.Width,
		Area:      area,
		Footprint: footprint,
		Anchors:   make(map[engine.ShipKind]int),
	}
	if area > 0 {
		// each player has a board of their own, the density is per board
		a.Density = float64(footprint) / float64(area)
	}
	for _, kind := range engine.ShipKinds {
		a.Anchors[kind] = anchorCount(kind, config.Height, config.Width)
	}
	return a
}

// anchorCount returns how many anchors keep every cell of kind on the board
func anchorCount(kind engine.ShipKind, height, width int) int {
	rows, cols := kind.Extent()
	if height < rows || width < cols {
		return 0
	}
	return (height - rows + 1) * (width - cols + 1)
}

func analyzeConfig(path string, w io.Writer) error {
	config, err := engine.LoadMatchConfig(path)
	if err != nil {
		return err
	}

	a := analyze(config)

	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d (%d cells)\n", a.Height, a.Width, a.Area)
	fmt.Fprintf(w, "Fleet footprint: %d cells (%d ships)\n", a.Footprint, engine.FleetSize())
	fmt.Fprintf(w, "Density: %.1f%%\n", a.Density*100)
	for _, kind := range engine.ShipKinds {
		fmt.Fprintf(w, "  %-10s x%d  anchors: %d\n", kind.DisplayName(), engine.FleetComposition[kind], a.Anchors[kind])
	}

	if a.Crowded() {
		fmt.Fprintf(w, "⚠️  WARNING: fleet covers more than %.0f%% of the board, random placement will retry often\n", crowdedDensity*100)
	} else {
		fmt.Fprintf(w, "✅ Board has room for comfortable random placement\n")
	}
	return nil
}
