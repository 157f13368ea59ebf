package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sweepkit/minesweeper/game/engine"
	"github.com/sweepkit/minesweeper/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Minesweeper",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Minesweeper - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Open every cell that does not hide a mine. Opening a mined cell loses the game immediately.

AVAILABLE TOOLS:
- game_state: Get current game state with the rendered board
- open_cell: Open a single cell by flat index - requires intent explanation
- bulk_open: Open multiple cells at once - requires intent explanation
- toggle_flag: Place or remove a flag on a closed cell
- restart_game: Restart with a fresh mine layout
- move_history: View past moves
- create_session: Create new game session (optional board size)
- get_session: Get session details
- list_sessions: List all active sessions
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific cell (by index or x/y coordinates)

NOTE: The 'intent' parameter on open_cell/bulk_open tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with an optional board size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"size": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Board size N for an NxN board, %d-%d (default %d)", engine.MinBoardSize, engine.MaxBoardSize, engine.DefaultBoardSize),
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "open_cell",
		Description: "Open a single cell by flat index (index = y*size + x)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Flat cell index, 0 to size*size-1, row-major",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this open (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleOpenCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_open",
		Description: "Open multiple cells in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"indices": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "integer",
					},
					"description": fmt.Sprintf("Array of flat cell indices, at most %d per call", engine.MaxBulkOpens),
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of opens (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "indices"},
		},
	}, c.handleBulkOpen)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_flag",
		Description: "Place or remove a flag on a closed cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Flat cell index of the cell to flag or unflag",
				},
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleToggleFlag)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Restart the game with a fresh mine layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific board cell, including its display character and whether opening it is safe to attempt. Accepts a flat index or x/y coordinates.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Flat cell index (alternative to x/y)",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if size, ok := args["size"].(float64); ok {
		body["size"] = int(size)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %dx%d\n", session.ID, session.BoardSize, session.BoardSize)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Board: %dx%d, Created: %s)\n",
			s.ID, s.BoardSize, s.BoardSize, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleOpenCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	index, _ := args["index"].(float64)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"index": int(index),
	}

	var result service.OpenInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/open", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatOpenInfo(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	indicesRaw, _ := args["indices"].([]interface{})
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert indices to int array
	indices := make([]int, 0, len(indicesRaw))
	for _, v := range indicesRaw {
		if idx, ok := v.(float64); ok {
			indices = append(indices, int(idx))
		}
	}

	body := map[string]interface{}{
		"indices": indices,
	}

	var result service.BulkOpenResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-open", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkOpenResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleToggleFlag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	index, _ := args["index"].(float64)

	body := map[string]interface{}{
		"index": int(index),
	}

	var result service.FlagInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/flag", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatFlagInfo(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Minesweeper - Complete Instructions

GAME OBJECTIVE:
Open every safe cell on the board. The game is won when only the mined cells remain closed. Opening a mined cell loses the game immediately.

GAME MECHANICS:
- The board is NxN, addressed by flat index: index = y*size + x, row-major from the top-left
- Mine count is fixed at floor(size * 1.5), placed uniformly at random
- Opening an empty cell (no adjacent mines) flood-fills: all connected empty cells and their numbered border open in one move
- Numbered cells show how many of their up-to-8 neighbors hold mines (edges and corners have fewer neighbors; there is no wraparound)
- Flags mark suspected mines on closed cells; flags never block opening and are purely informational
- Opening a revealed cell, or anything after the game ends, is a silent no-op

BOARD LEGEND:
- # - Closed cell (contents unknown)
- F - Closed cell carrying a flag
- . - Revealed empty cell (zero adjacent mines)
- 1-8 - Revealed numbered cell (count of adjacent mines)
- * - Mine (shown only after the game is lost)

AI AGENTS - PLAYING STRATEGIES:

OPENING MOVES:
- There is no first-move protection: any cell can be a mine, including the first one opened
- Prefer opening near the center first; center cells have 8 neighbors so a flood fill reveals more

DEDUCTION BASICS:
1. If a numbered cell N has exactly N closed neighbors, all of them are mines - flag them
2. If a numbered cell N already touches N flagged cells, every other closed neighbor is safe - open them
3. Work the border between revealed and closed cells; interior guessing is a last resort

COORDINATE DISCIPLINE:
- Always convert (x, y) to flat index as y*size + x before calling open_cell
- Use describe_cell to verify a cell's state before committing to an open
- Re-fetch game_state after flood fills; a single open can change many cells

API USAGE BEST PRACTICES:
- Use bulk_open for a batch of deduced-safe cells rather than individual opens
- bulk_open stops at the first mine, victory, or out-of-bounds index and reports why
- Monitor the unrevealed count: the game is won when it equals the mine count

VICTORY CONDITIONS:
- Every non-mine cell revealed
- The final state reports outcome "won"

GAME OVER CONDITIONS:
- A mined cell is opened
- The final state reports outcome "lost" and discloses all mine positions

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent boards and histories
- restart_game keeps the session but reshuffles the mines

Remember: flags are notes, not locks. The engine will happily open a flagged cell if you ask it to.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	// Get the current game state to access the board
	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	size := state.Size
	var index int
	if idx, ok := args["index"].(float64); ok {
		index = int(idx)
	} else {
		xf, xok := args["x"].(float64)
		yf, yok := args["y"].(float64)
		if !xok || !yok {
			return mcp.NewToolResultError("provide either 'index' or both 'x' and 'y'"), nil
		}
		x, y := int(xf), int(yf)
		if x < 0 || x >= size || y < 0 || y >= size {
			return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Board size is %dx%d (0-%d for both x and y)",
				x, y, size, size, size-1)), nil
		}
		index = y*size + x
	}

	if index < 0 || index >= len(state.Cells) {
		return mcp.NewToolResultError(fmt.Sprintf("Index %d is out of bounds. Valid indices are 0-%d",
			index, len(state.Cells)-1)), nil
	}

	x, y := index%size, index/size
	cell := state.Cells[index]
	cellChar := cellDisplayChar(cell, mineSet(&state)[index])

	var cellType string
	var description string
	switch {
	case !cell.Revealed && cell.Flagged:
		cellType = "Closed (Flagged)"
		description = "Closed cell carrying a flag - contents unknown, opening is still allowed"
	case !cell.Revealed:
		cellType = "Closed"
		description = "Closed cell - contents unknown until opened"
	case cell.Content == engine.ContentMine:
		cellType = "Mine"
		description = "Revealed mine - opening this cell lost the game"
	case cell.Content == engine.ContentNumber:
		cellType = fmt.Sprintf("Number (%d)", cell.Adjacent)
		description = fmt.Sprintf("Revealed cell with %d mine(s) among its neighbors", cell.Adjacent)
	default:
		cellType = "Empty"
		description = "Revealed empty cell - no adjacent mines"
	}

	result := fmt.Sprintf(`Cell %d at position (%d, %d):
------------------------
Character: %s
Type: %s
Revealed: %v
Flagged: %v
Description: %s

The character '%s' is what appears in the board display.
%s`,
		index, x, y,
		cellChar,
		cellType,
		cell.Revealed,
		cell.Flagged,
		description,
		cellChar,
		getCharacterReminder(cellChar))

	return mcp.NewToolResultText(result), nil
}

func getCharacterReminder(char string) string {
	switch char {
	case "#":
		return "REMINDER: '#' is a CLOSED cell. It may hide a mine; use adjacent numbers to deduce before opening."
	case "F":
		return "REMINDER: 'F' is a flagged closed cell. The flag is informational only and does not block opening."
	case ".":
		return "This cell is revealed and empty. All of its neighbors are already revealed by the flood fill."
	case "*":
		return "This is a mine. Mines only become visible after the game is lost."
	case "1", "2", "3", "4", "5", "6", "7", "8":
		return fmt.Sprintf("This revealed cell touches %s mine(s). Compare against its closed and flagged neighbors to deduce.", char)
	default:
		return ""
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %dx%d\nCreated: %s\n\n%s",
		session.ID, session.BoardSize, session.BoardSize,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// mineSet returns a lookup of disclosed mine indices. Empty until the game
// is lost, since GameState only carries Mines on a loss.
func mineSet(state *engine.GameState) map[int]bool {
	set := make(map[int]bool, len(state.Mines))
	for _, idx := range state.Mines {
		set[idx] = true
	}
	return set
}

func cellDisplayChar(cell engine.Cell, mined bool) string {
	if !cell.Revealed {
		if mined {
			return "*"
		}
		if cell.Flagged {
			return "F"
		}
		return "#"
	}
	switch cell.Content {
	case engine.ContentMine:
		return "*"
	case engine.ContentNumber:
		return fmt.Sprintf("%d", cell.Adjacent)
	default:
		return "."
	}
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Board: %dx%d | Mines: %d | Flags: %d | Unrevealed: %d | Moves: %d\n\n",
		state.Size, state.Size, state.MineCount, state.FlagCount,
		state.Unrevealed, state.TotalMoves))

	mines := mineSet(state)

	// Board
	for y := 0; y < state.Size; y++ {
		for x := 0; x < state.Size; x++ {
			idx := y*state.Size + x
			result.WriteString(cellDisplayChar(state.Cells[idx], mines[idx]))
		}
		result.WriteString("\n")
	}

	// Status
	switch state.Outcome {
	case engine.Won:
		result.WriteString("\nVICTORY! All safe cells revealed.")
	case engine.Lost:
		result.WriteString("\nGAME OVER - mine hit. Mine positions shown as '*'.")
	}

	return result.String()
}

func formatOpenInfo(result *service.OpenInfo) string {
	response := ""
	if result.Success {
		response = fmt.Sprintf("Opened cell %d (%d cell(s) revealed)\n", result.Index, len(result.Opened))
	} else {
		response = fmt.Sprintf("Open of cell %d changed nothing\n", result.Index)
	}

	if result.Message != "" {
		response += fmt.Sprintf("Note: %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatFlagInfo(result *service.FlagInfo) string {
	response := ""
	switch {
	case !result.Changed:
		response = fmt.Sprintf("Flag on cell %d unchanged\n", result.Index)
	case result.Flagged:
		response = fmt.Sprintf("Flag placed on cell %d\n", result.Index)
	default:
		response = fmt.Sprintf("Flag removed from cell %d\n", result.Index)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkOpenResult(sessionID string, result *service.BulkOpenResult) string {
	var b strings.Builder

	// Session header
	size := 0
	if result.GameState != nil {
		size = result.GameState.Size
	}
	b.WriteString(fmt.Sprintf("Session: %s - Board: %dx%d\n", sessionID, size, size))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d opens (closed cells %d -> %d)\n",
		result.OpensExecuted, result.RequestedOpens, result.StartClosed, result.EndClosed))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Request truncated to the %d-open limit\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-open steps from this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

// formatStepLine renders a single compact step line
func formatStepLine(step service.OpenStep) string {
	status := ""
	switch {
	case step.Mine:
		status = " MINE"
	case step.Flood:
		status = " flood"
	case step.NoOp:
		status = " no-op"
	}
	return fmt.Sprintf("%d. open cell=%d revealed=%d%s [%s]\n",
		step.Idx, step.Index, step.CellsAfter, status, step.Outcome)
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) - Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		result += fmt.Sprintf("%d. %s cell=%d changed=%d [%s]\n",
			num, move.Action, move.Index, move.ChangedCells, move.Outcome)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Move Segment - Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s cell=%d changed=%d [%s]\n",
			i+1, move.Action, move.Index, move.ChangedCells, move.Outcome))
	}
	return b.String()
}
