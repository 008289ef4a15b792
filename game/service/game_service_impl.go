package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/tgames/board"
	"github.com/wricardo/tgames/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		BoardState:     sess.Engine.GetState(),
		BoardConfig:    sess.Config,
	}
}

// CreateSession creates a new board session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate the ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

// Place puts a piece at loc. With stack set the piece is added on top instead.
func (s *gameServiceImpl) Place(ctx context.Context, sessionID, loc, piece string, stack bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var pushed []string
	action := "place"
	if stack {
		action = "stack"
		pushed, err = sess.Engine.Stack(loc, piece)
	} else {
		err = sess.Engine.Place(loc, piece)
	}
	if err != nil {
		return nil, err
	}

	result := s.result(sess, []BoardEvent{{
		Type:      action,
		Message:   fmt.Sprintf("Placed %s at %s", piece, loc),
		Timestamp: time.Now(),
		Location:  loc,
		Pieces:    []string{piece},
	}})
	result.Captured = pushed
	s.save(sessionID, action)
	return result, nil
}

// Remove takes a piece off loc. An empty piece removes the top one.
func (s *gameServiceImpl) Remove(ctx context.Context, sessionID, loc, piece string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	removed, err := sess.Engine.Remove(loc, piece)
	if isRequestError(err) {
		return nil, err
	}

	result := s.result(sess, nil)
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		result.Message = fmt.Sprintf("Can't remove from %s: %v", loc, err)
	} else {
		result.Events = append(result.Events, BoardEvent{
			Type:      "remove",
			Message:   fmt.Sprintf("Removed %s from %s", removed, loc),
			Timestamp: time.Now(),
			Location:  loc,
			Pieces:    []string{removed},
		})
	}
	s.save(sessionID, "remove")
	return result, nil
}

// Move executes a single move using the board's move rule
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req engine.MoveRequest, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var events []BoardEvent
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	return s.applyMove(sess, req, events, sess.Engine.Move)
}

// SafeDisplace moves without ever capturing a friendly piece
func (s *gameServiceImpl) SafeDisplace(ctx context.Context, sessionID string, req engine.MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	return s.applyMove(sess, req, nil, sess.Engine.SafeDisplace)
}

func (s *gameServiceImpl) applyMove(sess *Session, req engine.MoveRequest, events []BoardEvent, move func(from, to, piece string) ([]string, error)) (*MoveResult, error) {
	captured, err := move(req.From, req.To, req.Piece)
	if isRequestError(err) {
		return nil, err
	}

	events = append(events, moveEvents(req, captured, err)...)
	result := s.result(sess, events)
	result.Captured = captured
	result.Record = sess.Engine.GetLastMove()
	if err != nil {
		result.Success = false
		result.Error = err.Error()
	}

	s.save(sess.ID, "move")
	return result, nil
}

// BulkMove executes multiple moves in sequence, stopping at the first failure
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.MoveRequest, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if len(moves) > engine.MaxBulkMoves {
		return nil, fmt.Errorf("%w: %d requested, limit is %d", engine.ErrTooManyMoves, len(moves), engine.MaxBulkMoves)
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Success:        true,
		Events:         make([]BoardEvent, 0),
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	records, err := sess.Engine.BulkMove(moves)
	result.Records = records
	for i, rec := range records {
		if !rec.Success {
			break
		}
		result.MovesExecuted++
		result.Captured = append(result.Captured, rec.Captured...)
		result.Events = append(result.Events, moveEvents(moves[i], rec.Captured, nil)...)
	}

	if err != nil && len(records) > 0 {
		result.Success = false
		result.StoppedOnMove = len(records)
		result.StopReasonCode = stopReasonCode(err)
		result.StoppedReason = fmt.Sprintf("move %d failed: %v", len(records), err)
		result.Events = append(result.Events, moveEvents(moves[len(records)-1], nil, err)...)
	}

	result.BoardState = sess.Engine.GetState()
	result.Message = result.BoardState.Message

	s.save(sessionID, "bulk moves")
	return result, nil
}

// Clear empties every cell on the board
func (s *gameServiceImpl) Clear(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Clear()
	s.save(sessionID, "clear")
	return sess.Engine.GetState(), nil
}

// Reset restores the board to its configured setup
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.save(sessionID, "reset")
	return state, nil
}

// GetBoardState retrieves the current board state
func (s *gameServiceImpl) GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// Offset returns the cell reached from loc by delta
func (s *gameServiceImpl) Offset(ctx context.Context, sessionID, loc, delta string) (*engine.CellState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Offset(loc, delta)
}

// Neighbors lists the locations adjacent to loc
func (s *gameServiceImpl) Neighbors(ctx context.Context, sessionID, loc string, diagonal bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Neighbors(loc, diagonal)
}

// Preview reports what a move would do without changing the board
func (s *gameServiceImpl) Preview(ctx context.Context, sessionID string, req engine.MoveRequest) (*engine.MovePreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Preview(req.From, req.To, req.Piece)
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	var moves []engine.MoveRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}
	if moves == nil {
		moves = []engine.MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// session looks up a session and marks it accessed. Callers hold s.mu.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) result(sess *Session, events []BoardEvent) *MoveResult {
	state := sess.Engine.GetState()
	return &MoveResult{
		Success:    true,
		BoardState: state,
		Message:    state.Message,
		Events:     events,
	}
}

// save persists the session after a mutation. Failures are logged, not returned.
func (s *gameServiceImpl) save(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

// isRequestError reports whether err means the request itself was malformed,
// as opposed to a move the board rules refused.
func isRequestError(err error) bool {
	return errors.Is(err, board.ErrLocationNotFound) ||
		errors.Is(err, board.ErrInvalidLocation) ||
		errors.Is(err, board.ErrDimensionMismatch) ||
		errors.Is(err, engine.ErrPieceRequired)
}

func stopReasonCode(err error) string {
	switch {
	case errors.Is(err, board.ErrUnsafeCapture):
		return "blocked_unsafe"
	case errors.Is(err, board.ErrEmptyCell):
		return "empty_cell"
	case errors.Is(err, board.ErrPieceNotFound):
		return "piece_not_found"
	case errors.Is(err, board.ErrLocationNotFound):
		return "unknown_location"
	case errors.Is(err, board.ErrInvalidLocation):
		return "invalid_location"
	default:
		return "error"
	}
}

func moveEvents(req engine.MoveRequest, captured []string, err error) []BoardEvent {
	now := time.Now()
	if err != nil {
		typ := "blocked"
		if !errors.Is(err, board.ErrUnsafeCapture) {
			typ = "error"
		}
		return []BoardEvent{{
			Type:      typ,
			Message:   fmt.Sprintf("Can't move from %s to %s: %v", req.From, req.To, err),
			Timestamp: now,
			Location:  req.To,
		}}
	}

	events := []BoardEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Moved from %s to %s", req.From, req.To),
		Timestamp: now,
		Location:  req.To,
	}}
	if len(captured) > 0 {
		events = append(events, BoardEvent{
			Type:      "capture",
			Message:   fmt.Sprintf("Captured %s at %s", strings.Join(captured, ", "), req.To),
			Timestamp: now,
			Location:  req.To,
			Pieces:    captured,
		})
	}
	return events
}

func resetEvent() BoardEvent {
	return BoardEvent{
		Type:      "reset",
		Message:   "Board reset to initial setup",
		Timestamp: time.Now(),
	}
}
