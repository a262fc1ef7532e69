// Package websocket provides WebSocket transport for the battleship server.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Match view broadcasting after every change
//   - Event broadcasting for shots and restarts
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// A central Hub owns every connection. Register, unregister and broadcast
// requests are channels drained by Hub.Run, so the client map is only
// touched from that goroutine. Each client runs a read pump and a write pump.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"session_id": "ab12", "event": "match_update", "match": {...}}
//	{"session_id": "ab12", "event": "shot", "data": {...}}
//
// Incoming messages are read only to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, view.NewMatchView(eng))
package websocket
