package engine

import "time"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	Outcome() Outcome
	IsGameOver() bool
	Size() int
	MineCount() int
	UnrevealedCount() int

	// Player intents
	OpenCell(index int) (*OpenResult, error)
	ToggleFlag(index int) (*FlagResult, error)
	Restart()

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It owns one Board for its
// lifetime and is the only place the outcome is ever set: Restart mutates
// the board in place rather than replacing it.
type GameEngine struct {
	board   *Board
	outcome Outcome

	history      []MoveHistoryEntry
	totalMoves   int
	currentMoves []MoveHistoryEntry
}

// NewEngine creates an engine over a fresh random board of the given size.
func NewEngine(size int) (*GameEngine, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &GameEngine{board: board, outcome: Playing}, nil
}

// NewEngineWithDefaults creates an engine with the default board size.
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultBoardSize)
	if err != nil {
		// DefaultBoardSize is within bounds, so this cannot happen.
		panic(err)
	}
	return e
}

// NewEngineWithBoard wraps a prepared board, typically one built with
// NewBoardWithMines for a deterministic layout.
func NewEngineWithBoard(board *Board) *GameEngine {
	return &GameEngine{board: board, outcome: Playing}
}

// Outcome returns the current game outcome.
func (e *GameEngine) Outcome() Outcome {
	return e.outcome
}

// IsGameOver reports whether the game has reached a terminal outcome.
func (e *GameEngine) IsGameOver() bool {
	return e.outcome != Playing
}

// Size returns the board's edge length.
func (e *GameEngine) Size() int {
	return e.board.Size()
}

// MineCount returns the number of mines on the board.
func (e *GameEngine) MineCount() int {
	return e.board.MineCount()
}

// UnrevealedCount returns the number of closed cells.
func (e *GameEngine) UnrevealedCount() int {
	return e.board.UnrevealedCount()
}

// Board returns the underlying board for read-only queries.
func (e *GameEngine) Board() *Board {
	return e.board
}

// OpenCell translates the "open" intent into a board reveal and derives the
// outcome transition from its result. Acting on a finished game or on a cell
// that is not closed is a silent no-op. An out-of-range index is an error.
func (e *GameEngine) OpenCell(index int) (*OpenResult, error) {
	cell, err := e.board.Cell(index)
	if err != nil {
		return nil, err
	}
	if e.outcome != Playing || cell.Revealed {
		return &OpenResult{Opened: []int{}, Outcome: e.outcome}, nil
	}

	before := e.revealedSet()
	ok, err := e.board.Open(index)
	if err != nil {
		return nil, err
	}

	if !ok {
		e.outcome = Lost
	} else if e.board.UnrevealedCount() == e.board.MineCount() {
		e.outcome = Won
	}

	opened := e.revealedSince(before)
	e.addHistory("open", index, len(opened))
	return &OpenResult{Opened: opened, Outcome: e.outcome}, nil
}

// ToggleFlag flips the flag on a closed cell. It is a no-op on open cells
// and on finished games, and it never changes the outcome.
func (e *GameEngine) ToggleFlag(index int) (*FlagResult, error) {
	cell, err := e.board.Cell(index)
	if err != nil {
		return nil, err
	}
	if e.outcome != Playing || cell.Revealed {
		return &FlagResult{Index: index, Flagged: cell.Flagged, Outcome: e.outcome}, nil
	}

	if err := e.board.ToggleFlag(index); err != nil {
		return nil, err
	}
	e.addHistory("flag", index, 1)
	return &FlagResult{Index: index, Flagged: !cell.Flagged, Changed: true, Outcome: e.outcome}, nil
}

// Restart regenerates the board in place with a fresh random mine layout and
// returns the outcome to Playing, from any state. Cumulative history and
// totals survive a restart; only the current segment is cleared.
func (e *GameEngine) Restart() {
	e.board.Reset()
	e.outcome = Playing
	e.addHistory("restart", 0, e.board.Size()*e.board.Size())
	e.currentMoves = nil
}

// GetMoveHistory returns the cumulative move history.
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the most recent history entry, or nil before any move.
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// GetState builds an atomic snapshot of the full game for publication.
// When the game is lost, the snapshot discloses every mine index so a
// renderer can paint the minefield; the board cells themselves keep their
// reveal-time content untouched.
func (e *GameEngine) GetState() *GameState {
	cells := e.board.Cells()

	flags := 0
	unrevealed := 0
	for _, c := range cells {
		if c.Flagged {
			flags++
		}
		if !c.Revealed {
			unrevealed++
		}
	}

	state := &GameState{
		Size:              e.board.Size(),
		Cells:             cells,
		MineCount:         e.board.MineCount(),
		Outcome:           e.outcome,
		FlagCount:         flags,
		Unrevealed:        unrevealed,
		MoveHistory:       e.history,
		TotalMoves:        e.totalMoves,
		CurrentMoves:      e.currentMoves,
		CurrentMovesCount: len(e.currentMoves),
	}

	if e.outcome == Lost {
		for i, mined := range e.board.MineLayout() {
			if mined {
				state.Mines = append(state.Mines, i)
			}
		}
	}

	return state
}

// addHistory appends an entry to both the cumulative history and the
// current segment.
func (e *GameEngine) addHistory(action string, index, changed int) {
	e.totalMoves++
	entry := MoveHistoryEntry{
		Action:       action,
		Index:        index,
		ChangedCells: changed,
		Outcome:      e.outcome,
		Timestamp:    time.Now().Unix(),
		MoveNumber:   e.totalMoves,
	}
	e.history = append(e.history, entry)
	e.currentMoves = append(e.currentMoves, entry)
}

// revealedSet snapshots which cells are currently open.
func (e *GameEngine) revealedSet() []bool {
	set := make([]bool, len(e.board.cells))
	for i, c := range e.board.cells {
		set[i] = c.Revealed
	}
	return set
}

// revealedSince lists the indices opened since a revealedSet snapshot.
func (e *GameEngine) revealedSince(before []bool) []int {
	opened := []int{}
	for i, c := range e.board.cells {
		if c.Revealed && !before[i] {
			opened = append(opened, i)
		}
	}
	return opened
}
