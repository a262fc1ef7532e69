package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/battleship/game/engine"
)

func testConfig(height, width int) *engine.MatchConfig {
	return &engine.MatchConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Height:      height,
		Width:       width,
		Messages:    engine.DefaultMessages(),
	}
}

func writeConfig(t *testing.T, config interface{}) string {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test_config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestAnchorCount(t *testing.T) {
	tests := []struct {
		kind          engine.ShipKind
		height, width int
		expected      int
	}{
		{engine.Line, 8, 8, 5 * 8},
		{engine.Box, 8, 8, 7 * 7},
		{engine.LShape, 8, 8, 6 * 7},
		{engine.Line, 4, 6, 1 * 6},
		{engine.Line, 3, 10, 0},
		{engine.Box, 1, 1, 0},
	}

	for _, test := range tests {
		result := anchorCount(test.kind, test.height, test.width)
		if result != test.expected {
			t.Errorf("anchorCount(%s, %d, %d) = %d, expected %d", test.kind, test.height, test.width, result, test.expected)
		}
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		height      int
		width       int
		wantArea    int
		wantCrowded bool
	}{
		{name: "classic", height: 8, width: 8, wantArea: 64, wantCrowded: false},
		{name: "tight", height: 4, width: 6, wantArea: 24, wantCrowded: true},
		{name: "exactly half", height: 4, width: 8, wantArea: 32, wantCrowded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(testConfig(tt.height, tt.width))

			if a.Area != tt.wantArea {
				t.Errorf("Area = %d, want %d", a.Area, tt.wantArea)
			}
			if a.Footprint != engine.FleetSize()*engine.ShipCells {
				t.Errorf("Footprint = %d, want %d", a.Footprint, engine.FleetSize()*engine.ShipCells)
			}
			if a.Crowded() != tt.wantCrowded {
				t.Errorf("Crowded() = %v (density %.2f), want %v", a.Crowded(), a.Density, tt.wantCrowded)
			}
			if len(a.Anchors) != len(engine.ShipKinds) {
				t.Errorf("Expected anchors for %d kinds, got %d", len(engine.ShipKinds), len(a.Anchors))
			}
		})
	}
}

func TestAnalyzeConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, testConfig(8, 8))

	var out bytes.Buffer
	if err := analyzeConfig(path, &out); err != nil {
		t.Fatalf("analyzeConfig failed: %v", err)
	}

	for _, want := range []string{
		"Name: Test Config",
		"Board: 8 x 8 (64 cells)",
		"Fleet footprint: 16 cells (4 ships)",
		"Density: 25.0%",
		"Line Ship",
		"✅ Board has room",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out.String())
		}
	}
}

func TestAnalyzeConfig_Crowded(t *testing.T) {
	path := writeConfig(t, testConfig(4, 6))

	var out bytes.Buffer
	if err := analyzeConfig(path, &out); err != nil {
		t.Fatalf("analyzeConfig failed: %v", err)
	}

	if !strings.Contains(out.String(), "WARNING") {
		t.Errorf("Expected crowded warning, got:\n%s", out.String())
	}
}

func TestAnalyzeConfig_InvalidFile(t *testing.T) {
	if err := analyzeConfig("/non/existent/file.json", &bytes.Buffer{}); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAnalyzeConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": "test", invalid json}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := analyzeConfig(path, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestAnalyzeConfig_InvalidDimensions(t *testing.T) {
	path := writeConfig(t, testConfig(3, 3))

	if err := analyzeConfig(path, &bytes.Buffer{}); err == nil {
		t.Error("Expected validation error for a 3x3 board")
	}
}

func TestAnalyzeConfig_ProjectConfigs(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("..", "..", "configs", "*.json"))
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}

	for _, path := range files {
		var out bytes.Buffer
		if err := analyzeConfig(path, &out); err != nil {
			t.Errorf("%s: %v", filepath.Base(path), err)
		}
	}
}
