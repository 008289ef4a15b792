// Package engine runs a board from the board package behind a string-addressed
// API suitable for JSON transports.
//
// The engine package implements:
//   - Building grid, line and stack boards from JSON configurations
//   - Placing, stacking and removing pieces
//   - Moves under the displace, safe-displace and stack capture rules
//   - Dry-run previews on a copy of the board
//   - Move history and state snapshots for persistence
//
// Core Types:
//
// The Engine interface defines the main contract for board operations,
// implemented by BoardEngine. BoardState is a snapshot of every cell plus the
// history, while BoardConfig describes the layout loaded from JSON files.
//
// Locations are strings: "2,3" addresses a grid or stack coordinate, "4" a
// position on a line and any other text a named extra cell of a line board.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("backgammon")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	boardEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	captured, err := boardEngine.Move("1", "6", "")
//	state := boardEngine.GetState()
package engine
