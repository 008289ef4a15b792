package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/tgames/board"
	"github.com/wricardo/tgames/game/config"
	"github.com/wricardo/tgames/game/engine"
	"github.com/wricardo/tgames/game/service"
	"github.com/wricardo/tgames/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Must be registered before the {id} pattern
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Board operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetBoardState).Methods("GET")
	api.HandleFunc("/sessions/{id}/place", s.handlePlace).Methods("POST")
	api.HandleFunc("/sessions/{id}/remove", s.handleRemove).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/safe-displace", s.handleSafeDisplace).Methods("POST")
	api.HandleFunc("/sessions/{id}/bulk-move", s.handleBulkMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/clear", s.handleClear).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/preview", s.handlePreview).Methods("POST")
	api.HandleFunc("/sessions/{id}/offset", s.handleOffset).Methods("GET")
	api.HandleFunc("/sessions/{id}/neighbors", s.handleNeighbors).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and board errors to HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrConfigNotFound),
		errors.Is(err, board.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrUnsafeCapture):
		return http.StatusConflict
	case errors.Is(err, board.ErrInvalidLocation),
		errors.Is(err, board.ErrDimensionMismatch),
		errors.Is(err, board.ErrNoOffset),
		errors.Is(err, engine.ErrPieceRequired),
		errors.Is(err, engine.ErrTooManyMoves),
		errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) broadcast(sessionID string, state *engine.BoardState) {
	if s.hub != nil && state != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}
}

// moveBody is the JSON body shared by move, safe-displace and preview
type moveBody struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Piece string `json:"piece,omitempty"`
	Reset bool   `json:"reset,omitempty"`
}

func (b moveBody) request() engine.MoveRequest {
	return engine.MoveRequest{From: b.From, To: b.To, Piece: b.Piece}
}

func decodeMove(w http.ResponseWriter, r *http.Request) (moveBody, bool) {
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return body, false
	}
	if body.From == "" || body.To == "" {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return body, false
	}
	return body, true
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Board Operation Handlers

func (s *Server) handleGetBoardState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetBoardState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Location string `json:"location"`
		Piece    string `json:"piece"`
		Stack    bool   `json:"stack,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Place(r.Context(), sessionID, req.Location, req.Piece, req.Stack)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.BoardState)
	log.Printf("[PLACE] session=%s loc=%s piece=%s stack=%t", sessionID, req.Location, req.Piece, req.Stack)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Location string `json:"location"`
		Piece    string `json:"piece,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Remove(r.Context(), sessionID, req.Location, req.Piece)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.BoardState)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	body, ok := decodeMove(w, r)
	if !ok {
		return
	}

	result, err := s.service.Move(r.Context(), sessionID, body.request(), body.Reset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.BoardState)
	logMove(sessionID, body, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSafeDisplace(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	body, ok := decodeMove(w, r)
	if !ok {
		return
	}

	result, err := s.service.SafeDisplace(r.Context(), sessionID, body.request())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.BoardState)
	logMove(sessionID, body, result)
	respondJSON(w, http.StatusOK, result)
}

// logMove writes a compact server log line for observability
func logMove(sessionID string, body moveBody, result *service.MoveResult) {
	status := "OK"
	if !result.Success {
		status = "FAIL"
	}
	log.Printf("[MOVE] session=%s %s->%s piece=%q captured=%v status=%s",
		sessionID, body.From, body.To, body.Piece, result.Captured, status)
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Moves []engine.MoveRequest `json:"moves"`
		Reset bool                 `json:"reset,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.BulkMove(r.Context(), sessionID, req.Moves, req.Reset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.BoardState)

	stop := result.StopReasonCode
	if stop == "" {
		stop = "none"
	}
	log.Printf("[BULK] session=%s exec=%d/%d stop=%s captured=%v",
		sessionID, result.MovesExecuted, result.RequestedMoves, stop, result.Captured)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Clear(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, state)
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Board cleared",
		"state":   state,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, state)
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Board reset successfully",
		"state":   state,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	body, ok := decodeMove(w, r)
	if !ok {
		return
	}

	preview, err := s.service.Preview(r.Context(), sessionID, body.request())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	query := r.URL.Query()

	loc, delta := query.Get("location"), query.Get("delta")
	if loc == "" || delta == "" {
		respondError(w, http.StatusBadRequest, "location and delta are required")
		return
	}

	cell, err := s.service.Offset(r.Context(), sessionID, loc, delta)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cell)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	query := r.URL.Query()

	loc := query.Get("location")
	if loc == "" {
		respondError(w, http.StatusBadRequest, "location is required")
		return
	}
	diagonal, _ := strconv.ParseBool(query.Get("diagonal"))

	near, err := s.service.Neighbors(r.Context(), sessionID, loc, diagonal)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"location":  loc,
		"diagonal":  diagonal,
		"neighbors": near,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	boardConfig, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, boardConfig)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.BoardConfig
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}
	configID := req.ConfigID
	if configID == "" {
		configID = req.Name
	}

	if err := s.service.SaveConfig(r.Context(), configID, &req.BoardConfig); err != nil {
		respondError(w, statusFor(err), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// Unified Sessions Handler

func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		for _, id := range strings.Split(sessionIDs, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if session, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, session)
			}
		}
	} else {
		allSessions, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		configName := query.Get("configName")
		for _, session := range allSessions {
			if configName == "" || session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
	}

	configName := ""
	cellCount := 0
	if len(sessions) > 0 {
		configName = sessions[0].ConfigName
		if sessions[0].BoardConfig != nil {
			cellCount = sessions[0].BoardConfig.CellCount()
		}
	}

	entries := make([]map[string]any, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, map[string]any{
			"session_id":    session.ID,
			"config_name":   session.ConfigName,
			"board_state":   session.BoardState,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"config_name": configName,
		"cell_count":  cellCount,
		"sessions":    entries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
