package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/tgames/api"
	"github.com/wricardo/tgames/transport/mcp"
	"github.com/wricardo/tgames/transport/websocket"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Board Games Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

// withDirs points the directory flags at the repository configs and a
// temporary sessions directory for the duration of a test.
func withDirs(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	origConfig, origSessions, origDefault := *configDir, *sessionsDir, *defaultConfig
	*configDir = "configs"
	*sessionsDir = t.TempDir()
	*defaultConfig = ""
	t.Cleanup(func() {
		*configDir, *sessionsDir, *defaultConfig = origConfig, origSessions, origDefault
	})
}

func TestInitializeServices(t *testing.T) {
	withDirs(t)

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if svc.game == nil || svc.sessions == nil || svc.persistence == nil {
		t.Fatal("Expected all services to be initialized")
	}

	info, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.ConfigName != "classic" {
		t.Errorf("Expected default config classic, got %s", info.ConfigName)
	}
}

func TestInitializeServices_DefaultConfig(t *testing.T) {
	withDirs(t)
	*defaultConfig = "backgammon"

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	info, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.ConfigName != "backgammon" {
		t.Errorf("Expected default config backgammon, got %s", info.ConfigName)
	}

	*defaultConfig = "no-such-board"
	if _, err := initializeServices(); err == nil {
		t.Error("Expected error for unknown default config")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	origConfig := *configDir
	*configDir = "/non/existent/path"
	defer func() { *configDir = origConfig }()

	if _, err := initializeServices(); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_ReloadsSessions(t *testing.T) {
	withDirs(t)

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := svc.game.CreateSession(context.Background(), "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Second start reads the same sessions directory
	svc2, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if _, err := svc2.game.GetSession(context.Background(), info.ID); err != nil {
		t.Errorf("Expected session %s to survive a restart: %v", info.ID, err)
	}
}

func TestSyncWithFilesystem(t *testing.T) {
	withDirs(t)

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := svc.game.CreateSession(context.Background(), "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if pruned := syncWithFilesystem(svc.sessions, svc.persistence); pruned != 0 {
		t.Errorf("Expected nothing pruned, got %d", pruned)
	}

	if err := os.Remove(filepath.Join(*sessionsDir, info.ID+".json")); err != nil {
		t.Fatalf("Failed to remove session file: %v", err)
	}

	if pruned := syncWithFilesystem(svc.sessions, svc.persistence); pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}
	if svc.sessions.Count() != 0 {
		t.Errorf("Expected no sessions in memory, got %d", svc.sessions.Count())
	}
}

func TestBackgroundRoutinesStop(t *testing.T) {
	withDirs(t)

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{}, 2)
	go func() {
		sessionCleanupRoutine(ctx, svc.sessions, time.Millisecond)
		done <- struct{}{}
	}()
	go func() {
		filesystemSyncRoutine(ctx, svc.sessions, svc.persistence, time.Millisecond)
		done <- struct{}{}
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Expected background routines to stop after cancel")
		}
	}
}

func TestNewMux(t *testing.T) {
	withDirs(t)

	svc, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	mux := newMux(api.NewServer(svc.game, hub), mcp.NewClient("http://localhost:0"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 for GET /mcp, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for /health, got %d", w.Code)
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv("TGAMES_TEST_DIR", "elsewhere")

	if got := envDefault("TGAMES_TEST_DIR", "configs"); got != "elsewhere" {
		t.Errorf("Expected elsewhere, got %s", got)
	}
	if got := envDefault("TGAMES_TEST_UNSET", "configs"); got != "configs" {
		t.Errorf("Expected configs, got %s", got)
	}
}

func TestNgrokSettings(t *testing.T) {
	t.Setenv("NGROK_ENABLED", "1")
	t.Setenv("NGROK_AUTHTOKEN", "")
	t.Setenv("NGROK_AUTH_TOKEN", "token-b")

	if !ngrokRequested() {
		t.Error("Expected NGROK_ENABLED=1 to enable the tunnel")
	}
	if got := ngrokAuthToken(); got != "token-b" {
		t.Errorf("Expected token-b, got %s", got)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *configDir == "" || *sessionsDir == "" {
		t.Error("Config and sessions directories should have default values")
	}
}
