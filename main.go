// Command tgames starts the board game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config and session directories, the default board,
// debug logging, version output, and optional ngrok tunneling for easy
// external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/tgames/api"
	"github.com/wricardo/tgames/game/config"
	"github.com/wricardo/tgames/game/service"
	"github.com/wricardo/tgames/game/session"
	"github.com/wricardo/tgames/transport/mcp"
	"github.com/wricardo/tgames/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Board Games Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port          = flag.Int("port", 8080, "HTTP server port")
	host          = flag.String("host", "localhost", "HTTP server host")
	configDir     = flag.String("config-dir", envDefault("CONFIG_DIR", "configs"), "Directory containing board configurations")
	sessionsDir   = flag.String("sessions-dir", envDefault("SESSIONS_DIR", "sessions"), "Directory where sessions are persisted")
	defaultConfig = flag.String("default-config", os.Getenv("DEFAULT_CONFIG"), "Config ID used when a session names none")
	debug         = flag.Bool("debug", false, "Enable debug logging")
	version       = flag.Bool("version", false, "Show version information")
	ngrokEnabled  = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth     = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain   = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

const (
	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = 1 * time.Hour
	syncInterval    = 5 * time.Second
)

// envDefault returns the environment variable key when set, otherwise fallback.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                           # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090                # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -default-config stacks    # New sessions use configs/stacks.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                 # Run MCP stdio server\n", os.Args[0])
	}
}

// services holds what initializeServices wires together.
type services struct {
	game        service.GameService
	sessions    *session.Manager
	persistence session.SessionPersistence
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	go sessionCleanupRoutine(ctx, svc.sessions, cleanupInterval)
	go filesystemSyncRoutine(ctx, svc.sessions, svc.persistence, syncInterval)

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(svc.game)

	case "server", "http":
		runHTTPServer(ctx, svc.game)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}

	if err := svc.sessions.SaveAllSessions(); err != nil {
		log.Printf("Warning: Failed to save sessions on exit: %v", err)
	}
}

// newMux mounts the API server at the root and the MCP proxy at /mcp.
func newMux(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService) {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)
	addr := fmt.Sprintf("%s:%d", *host, *port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := newMux(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if ngrokRequested() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// ngrokRequested reports whether the tunnel is enabled by flag or NGROK_ENABLED.
func ngrokRequested() bool {
	if *ngrokEnabled {
		return true
	}
	env := os.Getenv("NGROK_ENABLED")
	return env == "true" || env == "1"
}

// ngrokAuthToken resolves the auth token from the flag, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN.
func ngrokAuthToken() string {
	if *ngrokAuth != "" {
		return *ngrokAuth
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		return token
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled.
func runNgrok(ctx context.Context, handler http.Handler) {
	authToken := ngrokAuthToken()
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires config and session managers into the game service.
func initializeServices() (*services, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if *defaultConfig != "" {
		if err := configManager.SetDefault(*defaultConfig); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
	}

	persistence, err := session.NewFilePersistence(*sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	if n := sessionManager.Count(); n > 0 {
		log.Printf("Loaded %d sessions (%s), default board %q", n, sessionManager.DescribeKinds(), configManager.GetDefault().Name)
	} else {
		log.Printf("No sessions loaded, default board %q", configManager.GetDefault().Name)
	}

	return &services{
		game:        service.NewGameService(sessionManager, configManager),
		sessions:    sessionManager,
		persistence: persistence,
	}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine periodically drops in-memory sessions whose files
// were deleted from the sessions directory.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence, interval time.Duration) {
	if persistence == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := syncWithFilesystem(manager, persistence); pruned > 0 {
				log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

func syncWithFilesystem(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, s := range manager.List() {
		if persistence.Exists(s.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(s.ID); err == nil {
			pruned++
			log.Printf("Pruned session %s from memory (file deleted)", s.ID)
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService) {
	var baseURL string

	externalURL := "http://localhost:8080"
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{
			Handler: api.NewServer(gameService, hub),
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
