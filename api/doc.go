// Package api provides HTTP REST API handlers for the battleship server.
//
// The api package implements:
//   - Session management endpoints
//   - Lobby endpoints for placing and randomizing fleets
//   - Shot resolution and match restart
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Match State:
//   - GET /api/sessions/{id}/state - Match view (?format=text for plain text boards)
//   - GET /api/sessions/{id}/snapshot - Raw persisted form of the match
//   - GET /api/sessions/{id}/stats - Shots fired and ships sunk per player
//
// Lobby:
//   - POST /api/sessions/{id}/ships - Place a ship ({"player","kind","row","col"} or {"player","kind","cell":"C4"})
//   - POST /api/sessions/{id}/randomize - Fill both fleets at random
//   - POST /api/sessions/{id}/start - Start the match
//
// Play:
//   - POST /api/sessions/{id}/fire - Fire at the opponent ({"row","col"} or {"cell":"C4"})
//   - POST /api/sessions/{id}/restart - Throw the match away and return to the lobby
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a new configuration
//
// Errors:
//
// Errors are returned as JSON: {"error": "message"}. Phase violations and a
// full fleet map to 409, bad coordinates and placements to 400, and unknown
// sessions or configs to 404.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
