package engine

import "sort"

// CountPieces counts every piece on the board by value
func CountPieces(state *BoardState) map[string]int {
	counts := make(map[string]int)
	for _, c := range state.Cells {
		for _, p := range c.Pieces {
			counts[p]++
		}
	}
	return counts
}

// FindPiece returns the locations holding a piece, in board order
func FindPiece(state *BoardState, piece string) []string {
	var locs []string
	for _, c := range state.Cells {
		for _, p := range c.Pieces {
			if p == piece {
				locs = append(locs, c.Location)
				break
			}
		}
	}
	return locs
}

// OccupiedCells returns the number of cells holding at least one piece
func OccupiedCells(state *BoardState) int {
	n := 0
	for _, c := range state.Cells {
		if len(c.Pieces) > 0 {
			n++
		}
	}
	return n
}

// CellAt finds a cell in a snapshot by its location
func CellAt(state *BoardState, loc string) (CellState, bool) {
	for _, c := range state.Cells {
		if c.Location == loc {
			return c, true
		}
	}
	return CellState{}, false
}

// SetupPieceCounts counts the pieces a config places at setup, by value
func SetupPieceCounts(config *BoardConfig) map[string]int {
	counts := make(map[string]int)
	for _, p := range config.Setup {
		for _, piece := range p.Pieces {
			counts[piece]++
		}
	}
	return counts
}

// SortedKeys returns the keys of a count map in order
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
