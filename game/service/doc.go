// Package service provides the business logic layer for the game server.
//
// The service package implements:
//   - Multi-session game management
//   - Rule set lookup through a ConfigManager
//   - Command dispatch to the engine with an event log per session
//   - Optional auto-settlement of rent, cards and bankruptcy
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and lists rule sets.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the engine. Every command takes the service lock, runs against one Game and
// returns an ActionResult with the events it produced, the new snapshot and
// the decision helpers for the player to act next.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessions, configs)
//
//	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{
//		Rules:   "classic",
//		Players: []engine.PlayerSpec{{Name: "Ana", Character: "cartola"}, {Name: "Bruno", Character: "navio"}},
//	})
//	if err != nil {
//		log.Fatal().Err(err).Msg("create session")
//	}
//
//	result, err := svc.RollDice(ctx, info.ID)
//
// Errors:
//
// Engine sentinels are wrapped with the command name, so callers match them
// with errors.Is. A missing session wraps ErrSessionNotFound.
package service
