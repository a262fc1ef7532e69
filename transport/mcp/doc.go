// Package mcp exposes the battleship HTTP API as Model Context Protocol tools.
//
// The client wraps the REST endpoints in tools so an agent can run a whole
// match, one call per action:
//   - create_session, list_sessions, get_session: manage matches
//   - place_ship, randomize_fleet, start_match: lobby setup
//   - fire: resolve a shot at a cell label ("C4") or a row and column
//   - restart_match: clear both boards and return to the lobby
//   - match_state, match_stats, describe_cell: inspect a match
//   - list_configs, game_instructions: reference material
//
// Results are plain text. Boards are drawn with the same glyphs as the
// server's text view, and API errors come back as tool errors carrying the
// server's message.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
