// Package engine provides the core rules for two-player grid battleship.
//
// The engine package implements the match mechanics including:
//   - Board grids with per-cell state and ship bookkeeping
//   - Line, box and L shaped ships with atomic placement
//   - Shot resolution, sink detection and victory
//   - Turn alternation with board visibility swaps
//   - Snapshot serialization and configuration validation
//
// Core Types:
//
// The Engine interface defines the main contract for match operations,
// implemented by GameEngine. A GameEngine owns two Boards: board A belongs to
// player one and board B to player two. Snapshot is the persisted form of a
// match, while MatchConfig defines the board size and notification texts
// loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadMatchConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	match, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	match.RandomizeFleet()
//	match.Start()
//	result, err := match.Fire(engine.Coordinate{Row: 3, Col: 4})
//
// Game Rules:
//
// Each player hides two line ships, one box ship and one L ship on their own
// board. Player one shoots first. Every shot that lands on a fresh cell passes
// the turn, whether it hits or misses; shooting a cell twice changes nothing.
// The first player to hit every ship cell on the opposing board wins.
package engine
