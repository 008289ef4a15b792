// Package config provides configuration management for board sessions.
//
// Board configurations are JSON files in the configs directory. The file
// name without its .json extension is the config ID used to create sessions.
// Each configuration defines:
//   - The board kind (grid, line or stack) and its dimensions or length
//   - The cell type and move rule
//   - Named extra cells for line boards, such as a bar
//   - The initial placement of pieces
//   - Optional message formats
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	boardConfig, err := manager.LoadConfig("backgammon")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// Loaded configurations are validated with engine.ValidateBoardConfig and
// cached. The default is classic.json when present, then the first valid
// file, then the built-in 8x8 board.
package config
