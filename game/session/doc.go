// Package session provides in-memory session management for Boggle Blast.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session expiry cleanup
//
// Manager is the main session manager. Every session owns its own
// engine.GameEngine built from a board configuration and a shared,
// read-only prefix index.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive. Generated IDs come from crypto/rand and are retried
// on collision.
//
// Usage:
//
//	d, err := dict.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManager(d.Index())
//
//	sess, err := manager.Create("", engine.DefaultBoardConfig())
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
//
// Sessions live only in memory; nothing survives a restart.
package session
