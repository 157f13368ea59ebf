// Command desktop is a small ebiten client for the minesweeper server.
// Left click opens a cell, right click toggles a flag, and R restarts the
// game with a fresh mine layout. Board changes made by other clients on the
// same session arrive live over the WebSocket feed.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 40
	headerHeight = 60
	baseURL      = "http://localhost:8080"
)

// Cell mirrors the server's board cell.
type Cell struct {
	Revealed bool   `json:"revealed"`
	Flagged  bool   `json:"flagged,omitempty"`
	Content  string `json:"content,omitempty"`
	Adjacent int    `json:"adjacent,omitempty"`
}

// GameState mirrors the server's game snapshot.
type GameState struct {
	Size       int    `json:"size"`
	Cells      []Cell `json:"cells"`
	MineCount  int    `json:"mine_count"`
	Outcome    string `json:"outcome"`
	FlagCount  int    `json:"flag_count"`
	Unrevealed int    `json:"unrevealed"`
	Mines      []int  `json:"mines,omitempty"`
	TotalMoves int    `json:"total_moves"`
}

// SessionResponse is the server's session payload.
type SessionResponse struct {
	ID        string     `json:"id"`
	BoardSize int        `json:"board_size"`
	GameState *GameState `json:"game_state"`
}

// WSUpdate is the WebSocket broadcast wrapper.
type WSUpdate struct {
	SessionID string     `json:"session_id"`
	GameState *GameState `json:"game_state,omitempty"`
	Event     string     `json:"event,omitempty"`
}

// Game is the ebiten client. All state access goes through stateMutex since
// the WebSocket listener updates it from its own goroutine.
type Game struct {
	sessionID  string
	state      *GameState
	stateMutex sync.RWMutex
	wsConn     *websocket.Conn
	httpClient *http.Client
	statusMsg  string
}

func NewGame(sessionID string) *Game {
	g := &Game{
		sessionID: sessionID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if g.sessionID == "" {
		if err := g.createSession(); err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
	} else {
		if err := g.fetchGameState(); err != nil {
			log.Fatalf("Failed to load session %s: %v", g.sessionID, err)
		}
	}

	if err := g.connectWebSocket(); err != nil {
		log.Printf("WebSocket unavailable, falling back to response snapshots: %v", err)
	}

	return g
}

func (g *Game) createSession() error {
	resp, err := g.httpClient.Post(baseURL+"/api/sessions", "application/json", bytes.NewBufferString("{}"))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return err
	}

	g.sessionID = session.ID
	g.setState(session.GameState)
	log.Printf("Created session %s (%dx%d)", session.ID, session.BoardSize, session.BoardSize)
	return nil
}

func (g *Game) fetchGameState() error {
	resp, err := g.httpClient.Get(fmt.Sprintf("%s/api/sessions/%s", baseURL, g.sessionID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get session failed: %s", resp.Status)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return err
	}

	g.setState(session.GameState)
	return nil
}

func (g *Game) connectWebSocket() error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	wsURL := fmt.Sprintf("ws://%s/ws?session=%s", u.Host, g.sessionID)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}

	g.wsConn = conn
	go g.listenWebSocket()
	return nil
}

// listenWebSocket applies board updates pushed by the server.
func (g *Game) listenWebSocket() {
	defer g.wsConn.Close()

	for {
		var update WSUpdate
		if err := g.wsConn.ReadJSON(&update); err != nil {
			log.Printf("WebSocket read error: %v", err)
			return
		}

		if update.SessionID == g.sessionID && update.GameState != nil {
			g.setState(update.GameState)
		}
	}
}

func (g *Game) setState(state *GameState) {
	if state == nil {
		return
	}
	g.stateMutex.Lock()
	g.state = state
	g.stateMutex.Unlock()
}

func (g *Game) snapshot() *GameState {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()
	return g.state
}

// postAction sends a mutating call and applies the game state from the
// response so the UI stays fresh even without a WebSocket connection.
func (g *Game) postAction(path string, payload interface{}) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			g.statusMsg = fmt.Sprintf("marshal failed: %v", err)
			return
		}
		body = bytes.NewBuffer(data)
	}

	resp, err := g.httpClient.Post(fmt.Sprintf("%s/api/sessions/%s/%s", baseURL, g.sessionID, path), "application/json", body)
	if err != nil {
		g.statusMsg = fmt.Sprintf("%s failed: %v", path, err)
		return
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var errResp map[string]string
		json.Unmarshal(raw, &errResp)
		if msg := errResp["error"]; msg != "" {
			g.statusMsg = msg
		} else {
			g.statusMsg = fmt.Sprintf("%s failed: %s", path, resp.Status)
		}
		return
	}

	g.statusMsg = ""

	// Mutating responses carry the snapshot under different keys
	var openResp struct {
		GameState *GameState `json:"game_state"`
		State     *GameState `json:"state"`
	}
	if err := json.Unmarshal(raw, &openResp); err != nil {
		return
	}
	if openResp.GameState != nil {
		g.setState(openResp.GameState)
	} else if openResp.State != nil {
		g.setState(openResp.State)
	}
}

// cellAt maps a screen coordinate to a flat board index, or -1 outside the board.
func (g *Game) cellAt(px, py int) int {
	state := g.snapshot()
	if state == nil {
		return -1
	}

	x := px / cellSize
	y := (py - headerHeight) / cellSize
	if px < 0 || py < headerHeight || x >= state.Size || y >= state.Size {
		return -1
	}
	return y*state.Size + x
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if idx := g.cellAt(ebiten.CursorPosition()); idx >= 0 {
			g.postAction("open", map[string]int{"index": idx})
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if idx := g.cellAt(ebiten.CursorPosition()); idx >= 0 {
			g.postAction("flag", map[string]int{"index": idx})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.postAction("restart", nil)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	state := g.snapshot()
	if state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	// Header
	header := fmt.Sprintf("Session: %s | Mines: %d | Flags: %d | Unrevealed: %d | Moves: %d",
		g.sessionID, state.MineCount, state.FlagCount, state.Unrevealed, state.TotalMoves)
	ebitenutil.DebugPrintAt(screen, header, 10, 10)

	switch state.Outcome {
	case "won":
		ebitenutil.DebugPrintAt(screen, "VICTORY! Press R to play again.", 10, 26)
	case "lost":
		ebitenutil.DebugPrintAt(screen, "GAME OVER - mine hit. Press R to play again.", 10, 26)
	}

	if g.statusMsg != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMsg, 10, 42)
	}

	mines := make(map[int]bool, len(state.Mines))
	for _, idx := range state.Mines {
		mines[idx] = true
	}

	// Board
	for y := 0; y < state.Size; y++ {
		for x := 0; x < state.Size; x++ {
			idx := y*state.Size + x
			cell := state.Cells[idx]

			cx := float64(x * cellSize)
			cy := float64(headerHeight + y*cellSize)

			ebitenutil.DrawRect(screen, cx, cy, cellSize-1, cellSize-1, cellColor(cell, mines[idx]))

			label := cellLabel(cell, mines[idx])
			if label != "" {
				ebitenutil.DebugPrintAt(screen, label, int(cx)+cellSize/2-3, int(cy)+cellSize/2-8)
			}
		}
	}

	ebitenutil.DebugPrintAt(screen, "Left click: open | Right click: flag | R: restart | ESC: quit",
		10, headerHeight+state.Size*cellSize+10)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	state := g.snapshot()
	size := 8
	if state != nil {
		size = state.Size
	}
	return size * cellSize, headerHeight + size*cellSize + 30
}

// cellColor picks the fill for a cell. Disclosed mines use the revealed-mine
// color even when the cell itself stayed closed.
func cellColor(cell Cell, mined bool) color.Color {
	if !cell.Revealed {
		if mined {
			return color.RGBA{180, 40, 40, 255} // disclosed mine
		}
		if cell.Flagged {
			return color.RGBA{200, 160, 60, 255} // flagged
		}
		return color.RGBA{120, 120, 130, 255} // closed
	}
	if cell.Content == "mine" {
		return color.RGBA{220, 50, 50, 255} // opened mine
	}
	return color.RGBA{210, 210, 215, 255} // revealed
}

// cellLabel returns the single character drawn on top of a cell.
func cellLabel(cell Cell, mined bool) string {
	if !cell.Revealed {
		if mined {
			return "*"
		}
		if cell.Flagged {
			return "F"
		}
		return ""
	}
	switch cell.Content {
	case "mine":
		return "*"
	case "number":
		return fmt.Sprintf("%d", cell.Adjacent)
	default:
		return ""
	}
}

func main() {
	sessionID := ""
	if len(os.Args) > 1 {
		sessionID = strings.TrimSpace(os.Args[1])
	}

	game := NewGame(sessionID)

	ebiten.SetWindowTitle("Minesweeper")
	state := game.snapshot()
	size := 8
	if state != nil {
		size = state.Size
	}
	ebiten.SetWindowSize(size*cellSize, headerHeight+size*cellSize+30)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
