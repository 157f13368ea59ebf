package engine

// Outcome classifies the game as a whole.
type Outcome string

const (
	Playing Outcome = "playing"
	Won     Outcome = "won"
	Lost    Outcome = "lost"
)

// CellContent is what an open cell turned out to hold.
type CellContent string

const (
	ContentMine   CellContent = "mine"
	ContentEmpty  CellContent = "empty"
	ContentNumber CellContent = "number"
)

const (
	// Validation constants
	MinBoardSize     = 2
	MaxBoardSize     = 50
	DefaultBoardSize = 8
	MaxBulkOpens     = 50
)

// Cell represents a single board square. A closed cell may carry a flag;
// once revealed, Content (and Adjacent for numbered cells) is fixed forever.
type Cell struct {
	Revealed bool        `json:"revealed"`
	Flagged  bool        `json:"flagged,omitempty"`
	Content  CellContent `json:"content,omitempty"`
	Adjacent int         `json:"adjacent,omitempty"` // 1..8, only when Content == ContentNumber
}

// GameState is an atomic snapshot of the whole game, published after every
// mutating call so a renderer never observes a half-applied flood fill.
type GameState struct {
	Size       int     `json:"size"`
	Cells      []Cell  `json:"cells"`
	MineCount  int     `json:"mine_count"`
	Outcome    Outcome `json:"outcome"`
	FlagCount  int     `json:"flag_count"`
	Unrevealed int     `json:"unrevealed"`

	// Mines discloses every mine index, populated only once the game is lost.
	Mines []int `json:"mines,omitempty"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves mirrors MoveHistory entries made since the last restart.
	// Restart clears only this segment; MoveHistory stays cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry records a single player intent applied to the engine.
type MoveHistoryEntry struct {
	Action       string  `json:"action"` // "open", "flag", "restart"
	Index        int     `json:"index"`
	ChangedCells int     `json:"changed_cells"`
	Outcome      Outcome `json:"outcome"`
	Timestamp    int64   `json:"timestamp"`
	MoveNumber   int     `json:"move_number"`
}

// OpenResult is the diff an OpenCell call hands back to callers.
type OpenResult struct {
	Opened  []int   `json:"opened"` // indices revealed by this call, empty on a no-op
	Outcome Outcome `json:"outcome"`
}

// FlagResult reports the effect of a ToggleFlag call.
type FlagResult struct {
	Index   int     `json:"index"`
	Flagged bool    `json:"flagged"` // flag state after the call
	Changed bool    `json:"changed"` // false when the call was a no-op
	Outcome Outcome `json:"outcome"`
}

// MineCountFor returns the number of mines a board of the given size carries,
// the floor of size * 1.5.
func MineCountFor(size int) int {
	return size * 3 / 2
}
