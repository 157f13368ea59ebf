package main

import (
	"log"
	"math/rand"
)

// maxBatch mirrors the server-side cap on bulk opens. Larger safe sets are
// re-derived on the next iteration anyway.
const maxBatch = 50

// Plan is one round of actions derived from the current board: cells proven
// safe to open, cells proven to be mines, and a fallback guess when neither
// set is non-empty.
type Plan struct {
	SafeOpens []int
	MineFlags []int
	Guess     int // -1 when no guess is needed or possible
}

func (p Plan) Empty() bool {
	return len(p.SafeOpens) == 0 && len(p.MineFlags) == 0 && p.Guess < 0
}

// DeductionStrategy applies single-point minesweeper deduction:
//   - a number cell whose flag count equals its number makes every other
//     closed neighbor safe
//   - a number cell whose remaining mine count equals its closed unflagged
//     neighbor count makes all of them mines
//
// When neither rule fires anywhere, it guesses the closed cell with the
// lowest estimated mine probability.
type DeductionStrategy struct {
	size      int
	neighbors [][]int
}

func NewDeductionStrategy(state *GameState) *DeductionStrategy {
	s := &DeductionStrategy{
		size:      state.Size,
		neighbors: make([][]int, state.Size*state.Size),
	}

	// Precompute the 8-neighborhood for every cell. Edges and corners get
	// fewer neighbors; rows never wrap.
	for idx := range s.neighbors {
		x, y := idx%s.size, idx/s.size
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= s.size || ny < 0 || ny >= s.size {
					continue
				}
				s.neighbors[idx] = append(s.neighbors[idx], ny*s.size+nx)
			}
		}
	}

	log.Printf("Deduction strategy: %dx%d board, %d mines", s.size, s.size, state.MineCount)
	return s
}

// NextPlan derives one round of actions from the current state.
func (s *DeductionStrategy) NextPlan(state *GameState) Plan {
	plan := Plan{Guess: -1}

	safeSet := make(map[int]bool)
	mineSet := make(map[int]bool)

	for idx, cell := range state.Cells {
		if !cell.Revealed || cell.Content != "number" {
			continue
		}

		var closedUnflagged []int
		flagged := 0
		for _, n := range s.neighbors[idx] {
			nc := state.Cells[n]
			if nc.Revealed {
				continue
			}
			if nc.Flagged {
				flagged++
			} else {
				closedUnflagged = append(closedUnflagged, n)
			}
		}

		if len(closedUnflagged) == 0 {
			continue
		}

		remaining := cell.Adjacent - flagged
		switch {
		case remaining <= 0:
			// All mines around this number are already flagged
			for _, n := range closedUnflagged {
				safeSet[n] = true
			}
		case remaining == len(closedUnflagged):
			// Every closed unflagged neighbor must be a mine
			for _, n := range closedUnflagged {
				mineSet[n] = true
			}
		}
	}

	for idx := range safeSet {
		// A safe proof from one constraint overrides a mine deduction from another
		delete(mineSet, idx)
		if len(plan.SafeOpens) < maxBatch {
			plan.SafeOpens = append(plan.SafeOpens, idx)
		}
	}
	for idx := range mineSet {
		plan.MineFlags = append(plan.MineFlags, idx)
	}

	if len(plan.SafeOpens) > 0 || len(plan.MineFlags) > 0 {
		return plan
	}

	plan.Guess = s.pickGuess(state)
	return plan
}

// pickGuess returns the closed unflagged cell with the lowest estimated mine
// probability, or -1 when the board has none left.
func (s *DeductionStrategy) pickGuess(state *GameState) int {
	total := s.size * s.size

	// Fresh board: open near the center where flood fills reach furthest
	if state.Unrevealed == total {
		return (s.size/2)*s.size + s.size/2
	}

	var candidates []int
	for idx, cell := range state.Cells {
		if !cell.Revealed && !cell.Flagged {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return -1
	}

	// Baseline: remaining mines spread over all closed unflagged cells
	baseline := float64(state.MineCount-state.FlagCount) / float64(len(candidates))

	best := -1
	bestRisk := 2.0
	for _, idx := range candidates {
		risk := s.cellRisk(state, idx, baseline)
		if risk < bestRisk {
			bestRisk = risk
			best = idx
		}
	}

	// Break ties between equally uninformed cells at random
	if bestRisk == baseline {
		var tied []int
		for _, idx := range candidates {
			if s.cellRisk(state, idx, baseline) == baseline {
				tied = append(tied, idx)
			}
		}
		if len(tied) > 1 {
			return tied[rand.Intn(len(tied))]
		}
	}

	return best
}

// cellRisk estimates the probability that idx holds a mine: the worst
// constraint among adjacent revealed numbers, or the baseline for cells with
// no revealed neighbors.
func (s *DeductionStrategy) cellRisk(state *GameState, idx int, baseline float64) float64 {
	risk := baseline
	for _, n := range s.neighbors[idx] {
		nc := state.Cells[n]
		if !nc.Revealed || nc.Content != "number" {
			continue
		}

		closedUnflagged := 0
		flagged := 0
		for _, nn := range s.neighbors[n] {
			c := state.Cells[nn]
			if c.Revealed {
				continue
			}
			if c.Flagged {
				flagged++
			} else {
				closedUnflagged++
			}
		}
		if closedUnflagged == 0 {
			continue
		}

		constraint := float64(nc.Adjacent-flagged) / float64(closedUnflagged)
		if constraint > risk {
			risk = constraint
		}
	}
	return risk
}
