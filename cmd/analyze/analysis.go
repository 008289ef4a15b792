package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/tgames/game/engine"
)

// Report summarizes one configuration
type Report struct {
	Name       string
	Kind       engine.BoardKind
	Shape      string
	Cells      int
	CellType   engine.CellType
	MoveRule   engine.MoveRule
	Occupied   int
	Pieces     map[string]int
	ExtraCells []string
	Stuck      []string // setup cells with no empty neighbor
	Warnings   []string
}

// analyzeConfig builds the board a config describes and reports on it
func analyzeConfig(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	eng, err := engine.NewEngine(&config)
	if err != nil {
		return nil, err
	}
	state := eng.GetState()

	report := &Report{
		Name:       config.Name,
		Kind:       config.Kind,
		Shape:      shape(&config),
		Cells:      config.CellCount(),
		CellType:   config.ResolvedCellType(),
		MoveRule:   config.ResolvedMoveRule(),
		Occupied:   engine.OccupiedCells(state),
		Pieces:     engine.CountPieces(state),
		ExtraCells: config.ExtraCells,
	}

	if config.Kind != engine.KindLine {
		for _, cell := range state.Cells {
			if len(cell.Pieces) == 0 {
				continue
			}
			if !hasEmptyNeighbor(eng, state, cell.Location) {
				report.Stuck = append(report.Stuck, cell.Location)
			}
		}
	}

	report.Warnings = warnings(&config, report)
	return report, nil
}

func shape(config *engine.BoardConfig) string {
	if config.Kind == engine.KindLine {
		return fmt.Sprintf("%d points", config.Length)
	}
	parts := make([]string, len(config.Dimensions))
	for i, d := range config.Dimensions {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, "x")
}

func hasEmptyNeighbor(eng *engine.BoardEngine, state *engine.BoardState, loc string) bool {
	near, err := eng.Neighbors(loc, false)
	if err != nil {
		return false
	}
	for _, n := range near {
		if cell, ok := engine.CellAt(state, n); ok && len(cell.Pieces) == 0 {
			return true
		}
	}
	return false
}

func warnings(config *engine.BoardConfig, report *Report) []string {
	var out []string
	if report.Occupied == 0 {
		out = append(out, "no pieces are placed at setup")
	}
	if report.MoveRule == engine.RuleSafeDisplace && report.CellType == engine.SingleCell {
		out = append(out, "safe_displace never blocks on single cells")
	}
	if report.MoveRule == engine.RuleSafeDisplace && config.Kind == engine.KindLine && len(config.ExtraCells) == 0 {
		out = append(out, "safe_displace line has no extra cells to hold captured pieces")
	}
	if report.Occupied > 0 && len(report.Stuck) == report.Occupied {
		out = append(out, "no setup piece has an empty neighbor to move to")
	}
	return out
}

// Print writes the report in a human-readable form
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Board: %s %s (%d cells, %s cells)\n", r.Kind, r.Shape, r.Cells, r.CellType)
	fmt.Fprintf(w, "Move rule: %s\n", r.MoveRule)
	if len(r.ExtraCells) > 0 {
		fmt.Fprintf(w, "Extra cells: %s\n", strings.Join(r.ExtraCells, ", "))
	}
	fmt.Fprintf(w, "Occupied cells: %d\n", r.Occupied)

	for _, piece := range engine.SortedKeys(r.Pieces) {
		fmt.Fprintf(w, "  %s x%d\n", piece, r.Pieces[piece])
	}

	if len(r.Stuck) > 0 {
		fmt.Fprintf(w, "Setup cells with no empty neighbor: %d\n", len(r.Stuck))
		for i, loc := range r.Stuck {
			if i == 5 {
				fmt.Fprintf(w, "   ... and %d more\n", len(r.Stuck)-5)
				break
			}
			fmt.Fprintf(w, "   %s\n", loc)
		}
	}

	if len(r.Warnings) == 0 {
		fmt.Fprintln(w, "✅ No issues found")
		return
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "⚠️  WARNING: %s\n", warning)
	}
}
