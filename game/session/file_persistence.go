package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/tgames/game/engine"
	"github.com/wricardo/tgames/game/service"
)

// FilePersistence implements SessionPersistence with one JSON file per session
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	configID, err := fp.getConfigIDFromName(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID, // Store config ID, not display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		BoardState:     session.Engine.GetState(),
		BoardConfig:    session.Config,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(session.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load rebuilds a session from its JSON file by replaying the saved board
// state into a fresh engine
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	jsonData, err := os.ReadFile(fp.getFilePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	boardConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil || (data.BoardState != nil && boardConfig.Name != data.BoardState.ConfigName) {
		if data.BoardConfig == nil {
			return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
		}
		boardConfig = data.BoardConfig
	}

	boardEngine, err := engine.NewEngine(boardConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create board engine: %w", err)
	}

	if data.BoardState != nil {
		if err := boardEngine.SetState(data.BoardState); err != nil {
			return nil, fmt.Errorf("failed to set board state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         boardEngine,
		Config:         boardConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
