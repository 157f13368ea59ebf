// Package service provides the business logic layer for the minesweeper server.
//
// The service package implements:
//   - Multi-session game management
//   - Open, flag, and bulk-open processing
//   - Session lifecycle management
//   - Move history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation and business logic
// orchestration. Each session maintains its own game engine instance with
// independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	gameService := service.NewGameService(sessionMgr)
//
//	// Create a new session with an 8x8 board
//	sessionInfo, err := gameService.CreateSession(ctx, 8)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Open a cell
//	info, err := gameService.Open(ctx, sessionInfo.ID, 12)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different board
// sizes. Sessions track creation time, last access time, and move history
// for analytics and debugging.
package service
