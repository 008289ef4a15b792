// Package session provides session management for board sessions.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Concurrent access control
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own board engine plus creation and last
// access times.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, retried until unique.
// Lookups are case-insensitive. IDs containing path separators are rejected
// since they name files under the sessions directory.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active sessions
//	sessions := manager.List()
//
// Persistence:
//
// FilePersistence writes one JSON file per session holding the config ID,
// the board config and a board state snapshot. Loading builds a fresh engine
// from the config and replays the snapshot with SetState.
//
// Cleanup:
//
// CleanupExpiredSessions drops sessions from memory after a period of
// inactivity. Persisted files stay on disk.
package session
