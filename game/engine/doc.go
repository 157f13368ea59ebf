// Package engine provides the core Minesweeper game logic.
//
// The engine package implements the game mechanics including:
//   - Mine placement with a uniform random permutation at a fixed ratio
//   - Flat-index adjacency on a square grid with correct edge handling
//   - Iterative flood-fill reveal of zero-adjacency regions
//   - Flag toggling and the playing/won/lost outcome state machine
//   - Atomic game-state snapshots and move history
//
// Core Types:
//
// Board owns the cell array and mine layout and exposes placement, reveal,
// and query operations; it has no notion of winning or losing. GameEngine
// wraps one Board, translates player intents (open, flag, restart) into
// board operations, and is the only place the Outcome is set.
//
// Usage:
//
//	eng, err := engine.NewEngine(8)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := eng.OpenCell(12)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Outcome == engine.Lost {
//		// the opened cell held a mine
//	}
//	state := eng.GetState()
//
// Game Rules:
//
// Opening a mine loses the game. Opening a cell with no adjacent mines
// reveals the whole connected zero region plus its numbered frontier, and
// never a mine. The game is won when every non-mine cell has been opened,
// that is, when the closed-cell count equals the mine count. Flags are a
// player-side marker with no effect on reveal logic. All operations are
// synchronous and single-threaded; concurrent hosts must serialize access.
package engine
