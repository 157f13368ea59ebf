package service

import (
	"context"
	"time"

	"github.com/sweepkit/minesweeper/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, boardSize int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Open(ctx context.Context, sessionID string, index int) (*OpenInfo, error)
	ToggleFlag(ctx context.Context, sessionID string, index int) (*FlagInfo, error)
	BulkOpen(ctx context.Context, sessionID string, indices []int) (*BulkOpenResult, error)
	Restart(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, boardSize int) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, boardSize int) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	BoardSize      int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
