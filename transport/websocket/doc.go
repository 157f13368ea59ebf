// Package websocket provides the WebSocket transport for the minesweeper server.
//
// The websocket package implements:
//   - Real-time board updates pushed to watching clients
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Update Protocol:
//
// Updates are JSON-encoded with the following structure:
//   - {session_id: "abc1", event: "board_update", game_state: {...}}
//
// Every open, flag, and restart pushes the complete GameState snapshot,
// so clients render from the latest message without reconciling diffs.
// Connections are read only to keep them alive; game actions go through
// the REST API.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// Updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a mutation
//	hub.BroadcastToSession(sessionID, state)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives board updates as the game changes
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive updates
// simultaneously without blocking each other.
package websocket
