// Package service provides the business logic layer for Boggle Blast.
//
// The service package implements:
//   - Multi-session board management
//   - Solving, collapsing and editing boards
//   - Paginated collapse history
//   - Board configuration access and dictionary lookups
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
// WordLookup resolves word definitions.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine, and every call runs
// under the service lock. Returned game states are snapshots, so callers may
// encode them after the lock is released.
//
// Usage:
//
//	d, _ := dict.Default()
//	sessionMgr := session.NewManager(d.Index())
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, d)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rank := 0
//	result, err := gameService.Collapse(ctx, info.ID, service.CollapseRequest{Rank: &rank})
package service
