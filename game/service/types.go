package service

import (
	"time"

	"github.com/sweepkit/minesweeper/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	BoardSize      int               `json:"board_size"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// OpenInfo contains the result of an open operation
type OpenInfo struct {
	Success   bool              `json:"success"`
	Index     int               `json:"index"`
	Opened    []int             `json:"opened"`
	Outcome   engine.Outcome    `json:"outcome"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message,omitempty"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// FlagInfo contains the result of a flag toggle
type FlagInfo struct {
	Index     int               `json:"index"`
	Flagged   bool              `json:"flagged"`
	Changed   bool              `json:"changed"`
	Outcome   engine.Outcome    `json:"outcome"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// BulkOpenResult contains the result of multiple opens
type BulkOpenResult struct {
	// Summary
	OpensExecuted  int               `json:"opens_executed"`
	RequestedOpens int               `json:"requested_opens"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: out_of_bounds|mine|game_over|victory
	StoppedOnOpen  int               `json:"stopped_on_open,omitempty"`  // 1-based index of the open that caused the stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartClosed int `json:"start_closed"`
	EndClosed   int `json:"end_closed"`

	// Per-step compact trace (only for this call)
	Steps []OpenStep `json:"steps,omitempty"`

	// Final status aids
	GameOver bool   `json:"game_over"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message,omitempty"`
}

// OpenStep is a compact record for each executed open in the bulk call
type OpenStep struct {
	Idx        int    `json:"idx"`
	Index      int    `json:"index"`
	CellsAfter int    `json:"cells_opened"`
	Outcome    string `json:"outcome"`
	Flood      bool   `json:"flood,omitempty"`
	Mine       bool   `json:"mine,omitempty"`
	NoOp       bool   `json:"no_op,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "open", "flood", "flag", "unflag", "mine", "won", "lost", "restart"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Index     int       `json:"index,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}
