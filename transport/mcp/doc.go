// Package mcp provides the Model Context Protocol server for the
// minesweeper game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with the rendered board
//   - open_cell: Open a single cell by flat index
//   - bulk_open: Open multiple cells in sequence
//   - toggle_flag: Place or remove a flag on a closed cell
//   - restart_game: Restart with a fresh mine layout
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with optional board size
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - describe_cell: Inspect a single cell by index or x/y coordinates
//   - game_instructions: Get full game rules and playing strategies
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Board Rendering:
//
// Tool responses render the board as ASCII text, one row per line:
//   - '#' closed cell
//   - 'F' flagged closed cell
//   - '.' revealed empty cell
//   - '1'..'8' revealed numbered cell
//   - '*' mine, shown only after the game is lost
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play minesweeper
//   - Develop and test deduction strategies
//   - Analyze board states and make decisions
//   - Manage multiple game sessions
//   - Learn from move history
package mcp
