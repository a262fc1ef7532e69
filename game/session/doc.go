// Package session provides session management for the battleship server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - File persistence of match snapshots
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine.GameEngine plus metadata like
// creation time and last access time. FilePersistence stores one JSON file
// per session holding the match snapshot.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand. Lookups are
// case-insensitive. Caller supplied IDs are limited to letters, digits,
// dashes and underscores since they double as file names.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", matchConfig)
//	sess, err = manager.Get(sess.ID)
//
// Recovery:
//
// A session file whose match snapshot is missing, malformed or violates the
// board invariants loads as a fresh Lobby match with the session's config.
package session
