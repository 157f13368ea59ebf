// Command analyze prints quick, human-readable statistics about board
// generation and game difficulty. It can simulate random playthroughs to
// estimate survival odds for a board size, and sample many generated boards
// to check that mine placement is uniform across cells.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sweepkit/minesweeper/game/engine"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Board generation and difficulty statistics",
		Commands: []*cli.Command{
			{
				Name:  "simulate",
				Usage: "Play random games and report outcome statistics",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: engine.DefaultBoardSize, Usage: "Board size N for an NxN board"},
					&cli.IntFlag{Name: "games", Value: 1000, Usage: "Number of games to simulate"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSimulate(int(cmd.Int("size")), int(cmd.Int("games")))
				},
			},
			{
				Name:  "placement",
				Usage: "Sample generated boards and report per-cell mine frequency",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: engine.DefaultBoardSize, Usage: "Board size N for an NxN board"},
					&cli.IntFlag{Name: "samples", Value: 10000, Usage: "Number of boards to generate"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlacement(int(cmd.Int("size")), int(cmd.Int("samples")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// simulationStats aggregates the results of random playthroughs.
type simulationStats struct {
	Games      int
	Won        int
	Lost       int
	TotalOpens int
	// OpensToLoss counts open calls made in lost games, the effective
	// "survival time" of a player opening cells at random.
	OpensToLoss int
}

// runSimulate plays games games on size-sized boards, opening random closed
// cells until the game ends, and prints aggregate outcome statistics.
func runSimulate(size, games int) error {
	if size < engine.MinBoardSize || size > engine.MaxBoardSize {
		return fmt.Errorf("size must be between %d and %d", engine.MinBoardSize, engine.MaxBoardSize)
	}
	if games <= 0 {
		return fmt.Errorf("games must be positive")
	}

	stats := simulationStats{Games: games}

	for g := 0; g < games; g++ {
		eng, err := engine.NewEngine(size)
		if err != nil {
			return err
		}

		opens := 0
		for !eng.IsGameOver() {
			idx := randomClosedCell(eng)
			if idx < 0 {
				break
			}
			if _, err := eng.OpenCell(idx); err != nil {
				return err
			}
			opens++
		}

		stats.TotalOpens += opens
		switch eng.Outcome() {
		case engine.Won:
			stats.Won++
		case engine.Lost:
			stats.Lost++
			stats.OpensToLoss += opens
		}
	}

	mines := engine.MineCountFor(size)
	fmt.Printf("=== Random-play simulation: %dx%d board, %d mines, %d games ===\n",
		size, size, mines, games)
	fmt.Printf("Won:  %d (%.2f%%)\n", stats.Won, pct(stats.Won, games))
	fmt.Printf("Lost: %d (%.2f%%)\n", stats.Lost, pct(stats.Lost, games))
	fmt.Printf("Avg open calls per game: %.2f\n", avg(stats.TotalOpens, games))
	if stats.Lost > 0 {
		fmt.Printf("Avg open calls before a loss: %.2f\n", avg(stats.OpensToLoss, stats.Lost))
	}
	return nil
}

// randomClosedCell picks a uniformly random closed cell, or -1 when none remain.
func randomClosedCell(eng *engine.GameEngine) int {
	board := eng.Board()
	closed := make([]int, 0, eng.UnrevealedCount())
	for i, cell := range board.Cells() {
		if !cell.Revealed {
			closed = append(closed, i)
		}
	}
	if len(closed) == 0 {
		return -1
	}
	return closed[rand.Intn(len(closed))]
}

// runPlacement generates samples boards of the given size and reports how
// often each cell held a mine. A uniform shuffle should leave every cell
// close to the expected frequency of mineCount/size^2.
func runPlacement(size, samples int) error {
	if size < engine.MinBoardSize || size > engine.MaxBoardSize {
		return fmt.Errorf("size must be between %d and %d", engine.MinBoardSize, engine.MaxBoardSize)
	}
	if samples <= 0 {
		return fmt.Errorf("samples must be positive")
	}

	total := size * size
	counts := make([]int, total)

	for s := 0; s < samples; s++ {
		board, err := engine.NewBoard(size)
		if err != nil {
			return err
		}
		for i, mined := range board.MineLayout() {
			if mined {
				counts[i]++
			}
		}
	}

	mines := engine.MineCountFor(size)
	expected := float64(mines) / float64(total)

	minIdx, maxIdx := 0, 0
	for i, c := range counts {
		if c < counts[minIdx] {
			minIdx = i
		}
		if c > counts[maxIdx] {
			maxIdx = i
		}
	}

	fmt.Printf("=== Mine placement: %dx%d board, %d mines, %d samples ===\n",
		size, size, mines, samples)
	fmt.Printf("Expected per-cell frequency: %.4f\n", expected)
	fmt.Printf("Observed min: cell %d at %.4f\n", minIdx, avg(counts[minIdx], samples))
	fmt.Printf("Observed max: cell %d at %.4f\n", maxIdx, avg(counts[maxIdx], samples))

	// Frequency heat map, one row per board row
	fmt.Println("\nPer-cell frequency:")
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fmt.Printf("%.3f ", avg(counts[y*size+x], samples))
		}
		fmt.Println()
	}
	return nil
}

func pct(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

func avg(n, total int) float64 {
	return float64(n) / float64(total)
}
