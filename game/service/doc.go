// Package service provides the business logic layer for the battleship server.
//
// The service package implements:
//   - Multi-session match management
//   - Ship placement and match start
//   - Shot resolution with events and player notifications
//   - Match restart and statistics
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level match operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages match configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine instance. Calls into the
// engine are serialized by the service, and every mutation is saved through
// the SessionManager.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.StartMatch(ctx, info.ID)
//	result, err := gameService.Fire(ctx, info.ID, engine.Coordinate{Row: 2, Col: 3})
//
// Errors:
//
// Engine errors are returned unwrapped so callers can match them with
// errors.Is (engine.ErrInvalidPhase, engine.ErrOutOfBounds and so on).
// Unknown sessions come back wrapped as "session not found".
package service
