// Package api provides HTTP REST API handlers for the minesweeper server.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/open - Open a cell
//   - POST /api/sessions/{id}/flag - Toggle a flag
//   - POST /api/sessions/{id}/bulk-open - Open several cells in sequence
//   - POST /api/sessions/{id}/restart - Restart with a fresh board
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Cells are addressed by their flat
// index, row-major from the top-left corner:
//
//	{ "index": 12 }            // open and flag requests
//	{ "indices": [0, 1, 12] }  // bulk-open requests
//	{ "size": 8 }              // session creation, optional
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Enriched Responses (Open and Bulk Open)
//
// Open (POST /api/sessions/{id}/open)
//   Response:
//     - opened: flat indices newly revealed by this call (flood included)
//     - outcome: "playing|won|lost"
//     - events: [{ type, message, index }] // open, flood, mine, won, lost
//
// Bulk Open (POST /api/sessions/{id}/bulk-open)
//   Response:
//     - requested_opens, opens_executed
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_open (1-based), truncated, limit
//     - steps: [{ idx, index, cells_opened, outcome, flood?, mine?, no_op? }]
//     - start_closed, end_closed
