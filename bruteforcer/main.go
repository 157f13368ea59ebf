// Command bruteforcer plays minesweeper against a running game server over
// the REST API. It applies single-point deduction (flag forced mines, open
// forced-safe cells) and falls back to a lowest-risk guess when no deduction
// applies. It keeps restarting until it wins or runs out of attempts.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Cell struct {
	Revealed bool   `json:"revealed"`
	Flagged  bool   `json:"flagged,omitempty"`
	Content  string `json:"content,omitempty"`
	Adjacent int    `json:"adjacent,omitempty"`
}

type GameState struct {
	Size       int    `json:"size"`
	Cells      []Cell `json:"cells"`
	MineCount  int    `json:"mine_count"`
	Outcome    string `json:"outcome"`
	FlagCount  int    `json:"flag_count"`
	Unrevealed int    `json:"unrevealed"`
	Mines      []int  `json:"mines,omitempty"`
}

type SessionResponse struct {
	ID        string     `json:"id"`
	BoardSize int        `json:"board_size"`
	GameState *GameState `json:"game_state"`
}

type OpenResponse struct {
	Success   bool       `json:"success"`
	Opened    []int      `json:"opened"`
	Outcome   string     `json:"outcome"`
	GameState *GameState `json:"game_state"`
	Message   string     `json:"message"`
}

type BulkOpenResponse struct {
	OpensExecuted  int        `json:"opens_executed"`
	RequestedOpens int        `json:"requested_opens"`
	Success        bool       `json:"success"`
	GameState      *GameState `json:"game_state"`
	StopReasonCode string     `json:"stop_reason_code"`
	Outcome        string     `json:"outcome"`
}

type FlagResponse struct {
	Flagged   bool       `json:"flagged"`
	Changed   bool       `json:"changed"`
	GameState *GameState `json:"game_state"`
}

type RestartResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(size int) (*GameState, error) {
	var reqBody []byte
	var err error

	if size > 0 {
		reqBody, err = json.Marshal(map[string]int{"size": size})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return session.GameState, nil
}

func (c *Client) Open(index int) (*GameState, error) {
	body, err := json.Marshal(map[string]int{"index": index})
	if err != nil {
		return nil, fmt.Errorf("marshal open: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/open", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute open: %w", err)
	}
	defer resp.Body.Close()

	var openResp OpenResponse
	if err := json.NewDecoder(resp.Body).Decode(&openResp); err != nil {
		return nil, fmt.Errorf("parse open response: %w", err)
	}

	return openResp.GameState, nil
}

func (c *Client) BulkOpen(indices []int) (*GameState, error) {
	body, err := json.Marshal(map[string][]int{"indices": indices})
	if err != nil {
		return nil, fmt.Errorf("marshal bulk open: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/bulk-open", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute bulk open: %w", err)
	}
	defer resp.Body.Close()

	var bulkResp BulkOpenResponse
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return nil, fmt.Errorf("parse bulk open response: %w", err)
	}

	return bulkResp.GameState, nil
}

func (c *Client) ToggleFlag(index int) (*GameState, error) {
	body, err := json.Marshal(map[string]int{"index": index})
	if err != nil {
		return nil, fmt.Errorf("marshal flag: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/flag", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute flag: %w", err)
	}
	defer resp.Body.Close()

	var flagResp FlagResponse
	if err := json.NewDecoder(resp.Body).Decode(&flagResp); err != nil {
		return nil, fmt.Errorf("parse flag response: %w", err)
	}

	return flagResp.GameState, nil
}

func (c *Client) Restart() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/restart", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("restart: %w", err)
	}
	defer resp.Body.Close()

	var restartResp RestartResponse
	if err := json.NewDecoder(resp.Body).Decode(&restartResp); err != nil {
		return nil, fmt.Errorf("parse restart response: %w", err)
	}

	return restartResp.State, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	boardSize := flag.Int("size", 0, "Board size for new sessions (0 = server default)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxAttempts := flag.Int("max-attempts", 100, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else {
			log.Printf("Session resumed - Board: %dx%d, Mines: %d, Unrevealed: %d",
				state.Size, state.Size, state.MineCount, state.Unrevealed)
		}
	}

	if savedSessionID == "" {
		// Create new session
		state, err = client.CreateSession(*boardSize)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)
		log.Printf("Board: %dx%d, Mines: %d", state.Size, state.Size, state.MineCount)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// Keep trying until victory or max attempts
	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		// Fresh mine layout for this attempt
		state, err = client.Restart()
		if err != nil {
			log.Printf("Failed to restart: %v", err)
			break
		}

		log.Printf("\n=== Attempt %d/%d ===", attemptNum, *maxAttempts)

		strategy := NewDeductionStrategy(state)
		moveCount := 0

		for state.Outcome == "playing" {
			plan := strategy.NextPlan(state)
			if plan.Empty() {
				log.Printf("No moves available")
				break
			}

			if *verbose {
				log.Printf("Plan: %d safe, %d mines, guess=%v (unrevealed %d/%d)",
					len(plan.SafeOpens), len(plan.MineFlags), plan.Guess >= 0,
					state.Unrevealed, state.Size*state.Size)
			}

			// Flag deduced mines so later deductions can count them
			for _, idx := range plan.MineFlags {
				state, err = client.ToggleFlag(idx)
				if err != nil {
					log.Fatalf("Flag failed: %v", err)
				}
				moveCount++
			}

			// Open deduced-safe cells in one batch
			if len(plan.SafeOpens) > 0 {
				state, err = client.BulkOpen(plan.SafeOpens)
				if err != nil {
					log.Fatalf("Bulk open failed: %v", err)
				}
				moveCount += len(plan.SafeOpens)
			} else if plan.Guess >= 0 {
				state, err = client.Open(plan.Guess)
				if err != nil {
					log.Fatalf("Open failed: %v", err)
				}
				moveCount++
			}

			// Add delay if specified
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Attempt %d: Moves=%d, Outcome=%s, Unrevealed=%d (mines %d)",
			attemptNum, moveCount, state.Outcome, state.Unrevealed, state.MineCount)

		// Check if we won
		if state.Outcome == "won" {
			log.Printf("\nVICTORY! Game won in attempt %d with %d moves!", attemptNum, moveCount)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	// Failed to win after all attempts
	log.Printf("\nFailed to win after %d attempts", attemptNum)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
