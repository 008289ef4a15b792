package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidConfig prefixes every validation failure
var ErrInvalidConfig = errors.New("config validation")

// ResolvedCellType returns the cell type the board is built with
func (c *BoardConfig) ResolvedCellType() CellType {
	if c.CellType != "" {
		return c.CellType
	}
	if c.Kind == KindGrid {
		return SingleCell
	}
	return MultiCell
}

// ResolvedMoveRule returns the rule Move applies
func (c *BoardConfig) ResolvedMoveRule() MoveRule {
	if c.Kind == KindStack {
		return RuleStack
	}
	if c.MoveRule == "" {
		return RuleDisplace
	}
	return c.MoveRule
}

// CellCount returns the number of cells the config builds, extra cells included
func (c *BoardConfig) CellCount() int {
	if c.Kind == KindLine {
		return c.Length + len(c.ExtraCells)
	}
	if len(c.Dimensions) == 0 {
		return 0
	}
	total := 1
	for _, size := range c.Dimensions {
		total *= size
	}
	return total
}

// ValidateBoardConfig checks that a config describes a board that can be built
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	switch config.Kind {
	case KindGrid, KindStack:
		if err := validateDimensions(config); err != nil {
			return err
		}
	case KindLine:
		if err := validateLine(config); err != nil {
			return err
		}
	case "":
		return fmt.Errorf("%w: kind is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: kind must be grid, line or stack, got '%s'", ErrInvalidConfig, config.Kind)
	}

	// Validate cell type and move rule
	switch config.CellType {
	case "", SingleCell, MultiCell:
	default:
		return fmt.Errorf("%w: cell_type must be single or multi, got '%s'", ErrInvalidConfig, config.CellType)
	}
	if config.Kind == KindStack && config.CellType == SingleCell {
		return fmt.Errorf("%w: stack boards require multi cells", ErrInvalidConfig)
	}
	switch config.MoveRule {
	case "", RuleDisplace, RuleSafeDisplace:
		if config.Kind == KindStack && config.MoveRule != "" {
			return fmt.Errorf("%w: stack boards always use the stack rule, got '%s'", ErrInvalidConfig, config.MoveRule)
		}
	case RuleStack:
		if config.Kind != KindStack {
			return fmt.Errorf("%w: move_rule stack is only valid on stack boards", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: move_rule must be displace or safe_displace, got '%s'", ErrInvalidConfig, config.MoveRule)
	}

	// Validate message format strings
	if config.Messages.Moved != "" && strings.Count(config.Messages.Moved, "%s") != 2 {
		return fmt.Errorf("%w: messages.moved must contain two %%s for the locations", ErrInvalidConfig)
	}
	if config.Messages.Captured != "" && !strings.Contains(config.Messages.Captured, "%s") {
		return fmt.Errorf("%w: messages.captured must contain %%s for the captured pieces", ErrInvalidConfig)
	}

	return validateSetup(config)
}

func validateDimensions(config *BoardConfig) error {
	if config.Length != 0 {
		return fmt.Errorf("%w: length is only valid on line boards", ErrInvalidConfig)
	}
	if len(config.ExtraCells) > 0 {
		return fmt.Errorf("%w: extra_cells are only valid on line boards", ErrInvalidConfig)
	}
	if len(config.Dimensions) == 0 || len(config.Dimensions) > MaxDimensions {
		return fmt.Errorf("%w: dimensions must have between 1 and %d axes, got %d",
			ErrInvalidConfig, MaxDimensions, len(config.Dimensions))
	}
	for i, size := range config.Dimensions {
		if size < 1 || size > MaxAxisSize {
			return fmt.Errorf("%w: dimension %d must be between 1 and %d, got %d", ErrInvalidConfig, i+1, MaxAxisSize, size)
		}
	}
	if n := config.CellCount(); n > MaxCells {
		return fmt.Errorf("%w: board has %d cells, max %d", ErrInvalidConfig, n, MaxCells)
	}
	return nil
}

func validateLine(config *BoardConfig) error {
	if len(config.Dimensions) > 0 {
		return fmt.Errorf("%w: dimensions are not valid on line boards", ErrInvalidConfig)
	}
	if config.Length < 1 || config.Length > MaxLineLength {
		return fmt.Errorf("%w: length must be between 1 and %d, got %d", ErrInvalidConfig, MaxLineLength, config.Length)
	}
	if len(config.ExtraCells) > MaxExtraCells {
		return fmt.Errorf("%w: at most %d extra cells, got %d", ErrInvalidConfig, MaxExtraCells, len(config.ExtraCells))
	}
	seen := make(map[string]bool, len(config.ExtraCells))
	for _, name := range config.ExtraCells {
		if name == "" {
			return fmt.Errorf("%w: extra cell names cannot be empty", ErrInvalidConfig)
		}
		if strings.TrimSpace(name) != name {
			return fmt.Errorf("%w: extra cell '%s' has surrounding spaces", ErrInvalidConfig, name)
		}
		if _, err := strconv.Atoi(name); err == nil {
			return fmt.Errorf("%w: extra cell '%s' cannot be a number", ErrInvalidConfig, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate extra cell '%s'", ErrInvalidConfig, name)
		}
		seen[name] = true
	}
	return nil
}

func validateSetup(config *BoardConfig) error {
	s, err := buildSurface(config)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	seen := make(map[string]bool, len(config.Setup))
	for i, p := range config.Setup {
		c, err := s.cell(p.Location)
		if err != nil {
			return fmt.Errorf("%w: setup entry %d: %w", ErrInvalidConfig, i+1, err)
		}
		if seen[c.Location] {
			return fmt.Errorf("%w: setup entry %d: location '%s' already set up", ErrInvalidConfig, i+1, p.Location)
		}
		seen[c.Location] = true
		if len(p.Pieces) == 0 {
			return fmt.Errorf("%w: setup entry %d: pieces are required", ErrInvalidConfig, i+1)
		}
		for _, piece := range p.Pieces {
			if piece == "" {
				return fmt.Errorf("%w: setup entry %d: pieces cannot be empty", ErrInvalidConfig, i+1)
			}
		}
		if err := s.fill(p.Location, p.Pieces); err != nil {
			return fmt.Errorf("%w: setup entry %d: %w", ErrInvalidConfig, i+1, err)
		}
	}
	return nil
}

// configDir returns CONFIG_DIR, or "configs" when it is unset
func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(dir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a board configuration by name from the configs directory
func LoadConfigByName(configName string) (*BoardConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join(configDir(), configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configName, err)
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configName, err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}

	return &config, nil
}

// DefaultBoardConfig returns the built-in 8x8 board used when no config is given
func DefaultBoardConfig() *BoardConfig {
	config := &BoardConfig{
		Name:        "classic",
		Description: "8x8 grid of single cells with displace capture",
		Kind:        KindGrid,
		Dimensions:  []int{8, 8},
		CellType:    SingleCell,
		MoveRule:    RuleDisplace,
	}
	for col := 1; col <= 8; col++ {
		config.Setup = append(config.Setup,
			Placement{Location: fmt.Sprintf("2,%d", col), Pieces: []string{"w"}},
			Placement{Location: fmt.Sprintf("7,%d", col), Pieces: []string{"b"}},
		)
	}
	config.Messages.Welcome = "Board ready. Pieces move with displace capture."
	config.Messages.Moved = "Moved from %s to %s"
	config.Messages.Captured = "Captured %s"
	config.Messages.Blocked = "That cell is safe from capture"
	return config
}
