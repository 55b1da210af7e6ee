// Package session provides in-memory session storage for the game server.
//
// Each session owns one engine.Game built from a roster, a rule set and a
// seed. The seed is kept on the session so a game can be replayed.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs generated from crypto/rand unless the
// caller picks one. Lookups are case-insensitive.
//
// Concurrency:
//
// The manager is safe for concurrent use. It guards the session map only;
// the service layer serializes access to each Game.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", service.SessionSpec{
//		Players: players,
//		Rules:   rules,
//	})
//	if err != nil {
//		log.Fatal().Err(err).Msg("create session")
//	}
//
//	sess, err = manager.Get(sess.ID)
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
//
// Sessions live as long as the process. Idle ones are dropped by
// CleanupExpiredSessions.
package session
