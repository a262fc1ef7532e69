package main

import (
	"math/rand/v2"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

// HuntStrategy picks shots from what a player can see of the target board.
// Cells next to a hit are tried first. Otherwise it hunts on a checkerboard,
// which every ship kind covers since each one spans two adjacent cells.
type HuntStrategy struct {
	rng *rand.Rand
}

// NewHuntStrategy returns a strategy that breaks ties with the given seed
func NewHuntStrategy(seed uint64) *HuntStrategy {
	return &HuntStrategy{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var neighbours = []engine.Coordinate{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

func unshot(board view.BoardView, c engine.Coordinate) bool {
	if c.Row < 0 || c.Row >= board.Height || c.Col < 0 || c.Col >= board.Width {
		return false
	}
	style := board.Cells[c.Row][c.Col]
	return style != view.StyleHit && style != view.StyleMiss
}

// targets lists the open cells adjacent to a hit
func targets(board view.BoardView) []engine.Coordinate {
	seen := make(map[engine.Coordinate]bool)
	var out []engine.Coordinate
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if board.Cells[row][col] != view.StyleHit {
				continue
			}
			for _, d := range neighbours {
				c := engine.Coordinate{Row: row + d.Row, Col: col + d.Col}
				if unshot(board, c) && !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// NextShot returns the next cell to fire at, or false when every cell has
// been shot.
func (s *HuntStrategy) NextShot(board view.BoardView) (engine.Coordinate, bool) {
	if t := targets(board); len(t) > 0 {
		return t[s.rng.IntN(len(t))], true
	}

	var parity, rest []engine.Coordinate
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			c := engine.Coordinate{Row: row, Col: col}
			if !unshot(board, c) {
				continue
			}
			if (row+col)%2 == 0 {
				parity = append(parity, c)
			} else {
				rest = append(rest, c)
			}
		}
	}
	switch {
	case len(parity) > 0:
		return parity[s.rng.IntN(len(parity))], true
	case len(rest) > 0:
		return rest[s.rng.IntN(len(rest))], true
	}
	return engine.Coordinate{}, false
}
