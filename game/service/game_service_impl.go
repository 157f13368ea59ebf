package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sweepkit/minesweeper/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, boardSize int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boardSize == 0 {
		boardSize = engine.DefaultBoardSize
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Open reveals a single cell for a session
func (s *gameServiceImpl) Open(ctx context.Context, sessionID string, index int) (*OpenInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result, err := sess.Engine.OpenCell(index)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	info := &OpenInfo{
		Success:   len(result.Opened) > 0,
		Index:     index,
		Opened:    result.Opened,
		Outcome:   result.Outcome,
		GameState: state,
		Events:    s.extractOpenEvents(index, result),
	}
	if len(result.Opened) == 0 {
		info.Message = "No cells changed"
	}
	return info, nil
}

// ToggleFlag flips the flag on a closed cell
func (s *gameServiceImpl) ToggleFlag(ctx context.Context, sessionID string, index int) (*FlagInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result, err := sess.Engine.ToggleFlag(index)
	if err != nil {
		return nil, err
	}

	info := &FlagInfo{
		Index:     index,
		Flagged:   result.Flagged,
		Changed:   result.Changed,
		Outcome:   result.Outcome,
		GameState: sess.Engine.GetState(),
	}
	if result.Changed {
		eventType := "flag"
		message := fmt.Sprintf("Flagged cell %d", index)
		if !result.Flagged {
			eventType = "unflag"
			message = fmt.Sprintf("Removed flag from cell %d", index)
		}
		info.Events = []GameEvent{{
			Type:      eventType,
			Message:   message,
			Timestamp: time.Now(),
			Index:     index,
		}}
	}
	return info, nil
}

// BulkOpen reveals multiple cells in sequence
func (s *gameServiceImpl) BulkOpen(ctx context.Context, sessionID string, indices []int) (*BulkOpenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	result := &BulkOpenResult{
		RequestedOpens: len(indices),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartClosed:    state.Unrevealed,
		GameOver:       state.Outcome != engine.Playing,
	}

	// Limit opens to prevent abuse
	if len(indices) > engine.MaxBulkOpens {
		result.Truncated = true
		result.Limit = engine.MaxBulkOpens
		indices = indices[:engine.MaxBulkOpens]
	}

	for i, index := range indices {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = "game_over"
			result.StoppedOnOpen = result.OpensExecuted + 1
			break
		}

		openResult, err := sess.Engine.OpenCell(index)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("open %d rejected: %v", i+1, err)
			result.StopReasonCode = "out_of_bounds"
			result.StoppedOnOpen = i + 1
			break
		}

		result.OpensExecuted++
		result.Events = append(result.Events, s.extractOpenEvents(index, openResult)...)

		step := OpenStep{
			Idx:        i + 1,
			Index:      index,
			CellsAfter: len(openResult.Opened),
			Outcome:    string(openResult.Outcome),
			Flood:      len(openResult.Opened) > 1,
			NoOp:       len(openResult.Opened) == 0,
		}
		if openResult.Outcome == engine.Lost {
			step.Mine = true
		}
		result.Steps = append(result.Steps, step)

		if openResult.Outcome == engine.Lost {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("open %d hit a mine at cell %d", i+1, index)
			result.StopReasonCode = "mine"
			result.StoppedOnOpen = i + 1
			break
		}
		if openResult.Outcome == engine.Won {
			result.StoppedReason = "all safe cells opened"
			result.StopReasonCode = "victory"
			result.StoppedOnOpen = i + 1
			break
		}
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndClosed = endState.Unrevealed
	result.GameOver = endState.Outcome != engine.Playing
	result.Outcome = string(endState.Outcome)
	if result.GameOver {
		switch endState.Outcome {
		case engine.Won:
			result.Message = "Victory! All safe cells opened"
		case engine.Lost:
			result.Message = "Game over, a mine was opened"
		}
	}

	return result, nil
}

// Restart resets a game session to a fresh board
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Restart()
	return sess.Engine.GetState(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// sessionInfo builds the session summary returned by session endpoints.
// Callers must hold at least the read lock.
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		BoardSize:      sess.BoardSize,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}
}

// extractOpenEvents generates events from an open operation
func (s *gameServiceImpl) extractOpenEvents(index int, result *engine.OpenResult) []GameEvent {
	events := []GameEvent{}

	if len(result.Opened) == 0 {
		return events
	}

	events = append(events, GameEvent{
		Type:      "open",
		Message:   fmt.Sprintf("Opened cell %d", index),
		Timestamp: time.Now(),
		Index:     index,
	})

	if len(result.Opened) > 1 {
		events = append(events, GameEvent{
			Type:      "flood",
			Message:   fmt.Sprintf("Flood opened %d cells", len(result.Opened)),
			Timestamp: time.Now(),
			Index:     index,
		})
	}

	switch result.Outcome {
	case engine.Lost:
		events = append(events, GameEvent{
			Type:      "mine",
			Message:   fmt.Sprintf("Mine at cell %d", index),
			Timestamp: time.Now(),
			Index:     index,
		})
		events = append(events, GameEvent{
			Type:      "lost",
			Message:   "Game over, a mine was opened",
			Timestamp: time.Now(),
		})
	case engine.Won:
		events = append(events, GameEvent{
			Type:      "won",
			Message:   "Victory! All safe cells opened",
			Timestamp: time.Now(),
		})
	}

	return events
}
