package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/tgames/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors holds the problems found; Info holds summary lines for valid files.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

// validateConfig loads a config file, checks it and builds its board
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}
	fail := func(format string, args ...any) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fail("Failed to read file: %v", err)
		return result
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateBoardConfig(&config); err != nil {
		fail("%v", err)
	}

	// The engine fills captured with a single joined piece list
	if m := config.Messages.Captured; m != "" && strings.Count(m, "%s") != 1 {
		fail("messages.captured must contain one %%s verb, got %q", m)
	}

	if !result.Valid {
		return result
	}

	eng, err := engine.NewEngine(&config)
	if err != nil {
		fail("Failed to build board: %v", err)
		return result
	}
	state := eng.GetState()

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Board: %s %s, %d cells", config.Kind, shape(&config), config.CellCount()),
		fmt.Sprintf("✓ Rule: %s on %s cells", config.ResolvedMoveRule(), config.ResolvedCellType()),
		fmt.Sprintf("✓ Pieces: %d in %d cells", state.PieceCount, engine.OccupiedCells(state)),
	)
	return result
}

// Print writes the result in the same layout for every file
func (r ValidationResult) Print(w io.Writer) {
	fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), r.File)
	if r.Valid {
		fmt.Fprintln(w, "✅ VALID")
		for _, info := range r.Info {
			fmt.Fprintln(w, "  "+info)
		}
		return
	}
	fmt.Fprintln(w, "❌ INVALID")
	for _, err := range r.Errors {
		fmt.Fprintln(w, "  ❌ "+err)
	}
}
