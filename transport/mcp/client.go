package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/tgames/game/engine"
	"github.com/wricardo/tgames/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Board Games",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Board Games - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Each session holds one board built from a configuration: a grid, a line with
named extra cells (such as a backgammon bar), or a grid of stacks. Locations
are strings: "row,col" on grids and stacks, a point number or cell name on lines.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session
- board_state: Current board with a text rendering
- place_piece / remove_piece
- move_piece: Move using the board's capture rule
- safe_displace: Move that refuses to capture a safe cell
- bulk_move: Several moves, stopping at the first failure
- preview_move: Dry run of a move
- offset / neighbors: Location arithmetic
- clear_board / reset_board
- move_history
- list_configs
- board_instructions: Rules for cells, captures and locations`),
	)

	c.registerTools()
}

func sessionProp() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Session ID",
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new board session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"config_id": stringProp("ID of the config to use, such as classic or backgammon (optional)"),
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active board sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_piece",
		Description: "Put a piece in a cell. Replaces a single cell's occupant unless stack is true",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"location":   stringProp("Target location"),
				"piece":      stringProp("Piece to place"),
				"stack": map[string]any{
					"type":        "boolean",
					"description": "Add on top of the pieces already there",
				},
			},
			Required: []string{"session_id", "location", "piece"},
		},
	}, c.handlePlace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_piece",
		Description: "Remove a piece from a cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"location":   stringProp("Location to remove from"),
				"piece":      stringProp("Piece to remove (optional, defaults to the top piece)"),
			},
			Required: []string{"session_id", "location"},
		},
	}, c.handleRemove)

	moveSchema := func(extra map[string]any) mcp.ToolInputSchema {
		props := map[string]any{
			"session_id": sessionProp(),
			"from":       stringProp("Source location"),
			"to":         stringProp("Destination location"),
			"piece":      stringProp("Piece to move from a multi-piece cell (optional)"),
			"intent":     stringProp("Brief explanation of the intent behind this move"),
		}
		for k, v := range extra {
			props[k] = v
		}
		return mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"session_id", "from", "to"},
		}
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_piece",
		Description: "Move a piece using the board's move rule",
		InputSchema: moveSchema(map[string]any{
			"reset": map[string]any{
				"type":        "boolean",
				"description": "Reset before moving",
			},
		}),
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "safe_displace",
		Description: "Move a piece, capturing the destination only when it is not safe",
		InputSchema: moveSchema(nil),
	}, c.handleSafeDisplace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "preview_move",
		Description: "Report what a move would do without changing the board",
		InputSchema: moveSchema(nil),
	}, c.handlePreview)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence, stopping at the first failure",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"moves": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"from":  map[string]any{"type": "string"},
							"to":    map[string]any{"type": "string"},
							"piece": map[string]any{"type": "string"},
						},
						"required": []string{"from", "to"},
					},
					"description": "Array of moves",
				},
				"intent": stringProp("Brief explanation of the intent behind this sequence of moves"),
				"reset": map[string]any{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "offset",
		Description: "Add a delta such as 1,-1 to a location and show the cell there",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"location":   stringProp("Start location"),
				"delta":      stringProp("Delta in the same format as the location"),
			},
			Required: []string{"session_id", "location", "delta"},
		},
	}, c.handleOffset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "neighbors",
		Description: "List the locations next to a location",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"location":   stringProp("Location"),
				"diagonal": map[string]any{
					"type":        "boolean",
					"description": "Include diagonal neighbors",
				},
			},
			Required: []string{"session_id", "location"},
		},
	}, c.handleNeighbors)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_board",
		Description: "Remove every piece from the board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleClear)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Reset the board to its configured setup",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"page": map[string]any{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]any{
					"type":        "number",
					"description": "Moves per page (default 20, max 100)",
				},
				"order": map[string]any{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_instructions",
		Description: "Explain cells, move rules and location formats",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]any {
	args, _ := request.Params.Arguments.(map[string]any)
	if args == nil {
		return map[string]any{}
	}
	return args
}

func sessionPath(sessionID, suffix string) string {
	return fmt.Sprintf("/api/sessions/%s%s", url.PathEscape(sessionID), suffix)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatBoardState(session.BoardState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		pieces := 0
		if s.BoardState != nil {
			pieces = s.BoardState.PieceCount
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Pieces: %d, Created: %s)\n",
			s.ID, s.ConfigName, pieces, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardState(&state)), nil
}

func (c *Client) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	location, _ := args["location"].(string)
	piece, _ := args["piece"].(string)
	stack, _ := args["stack"].(bool)

	body := map[string]any{
		"location": location,
		"piece":    piece,
		"stack":    stack,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/place"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	location, _ := args["location"].(string)
	piece, _ := args["piece"].(string)

	body := map[string]any{
		"location": location,
		"piece":    piece,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/remove"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

// moveArgs reads the shared move arguments. The intent argument is only
// there for the caller's own reasoning and is not sent.
func moveArgs(request mcp.CallToolRequest) (string, map[string]any) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	from, _ := args["from"].(string)
	to, _ := args["to"].(string)
	piece, _ := args["piece"].(string)
	reset, _ := args["reset"].(bool)

	return sessionID, map[string]any{
		"from":  from,
		"to":    to,
		"piece": piece,
		"reset": reset,
	}
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, body := moveArgs(request)

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleSafeDisplace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, body := moveArgs(request)
	delete(body, "reset")

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/safe-displace"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, body := moveArgs(request)
	delete(body, "reset")

	var preview engine.MovePreview
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/preview"), body, &preview); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPreview(&preview)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]any)
	reset, _ := args["reset"].(bool)

	moves := make([]engine.MoveRequest, 0, len(movesRaw))
	for _, m := range movesRaw {
		fields, ok := m.(map[string]any)
		if !ok {
			continue
		}
		var move engine.MoveRequest
		move.From, _ = fields["from"].(string)
		move.To, _ = fields["to"].(string)
		move.Piece, _ = fields["piece"].(string)
		moves = append(moves, move)
	}

	body := map[string]any{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleOffset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	location, _ := args["location"].(string)
	delta, _ := args["delta"].(string)

	query := url.Values{"location": {location}, "delta": {delta}}
	var cell engine.CellState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/offset?"+query.Encode()), nil, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s + %s = %s\n%s", location, delta, cell.Location, formatCell(cell))), nil
}

func (c *Client) handleNeighbors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	location, _ := args["location"].(string)
	diagonal, _ := args["diagonal"].(bool)

	query := url.Values{"location": {location}, "diagonal": {fmt.Sprint(diagonal)}}
	var response struct {
		Neighbors []string `json:"neighbors"`
	}
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/neighbors?"+query.Encode()), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Neighbors of %s: %s", location, strings.Join(response.Neighbors, " "))), nil
}

func (c *Client) handleClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.boardCommand(ctx, request, "/clear")
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.boardCommand(ctx, request, "/reset")
}

func (c *Client) boardCommand(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.BoardState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, suffix), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	query := url.Values{}
	if page, ok := args["page"].(float64); ok {
		query.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		query.Set("limit", fmt.Sprint(int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		query.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)

	// The current segment comes from the live state; history alone is still useful
	var state engine.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err == nil {
		result += "\n" + formatCurrentSegment(&state)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Kind: %s, Cells: %d, Cell type: %s, Rule: %s\n",
			config.ConfigID, config.Name, config.Description,
			config.Kind, config.CellCount, config.CellType, config.MoveRule)
		if len(config.ExtraCells) > 0 {
			fmt.Fprintf(&b, "  Extra cells: %s\n", strings.Join(config.ExtraCells, ", "))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Board Games - Instructions

BOARDS:
- grid: a rectangle (or box) of cells addressed "row,col" starting at 1,1
- line: numbered points 1..N plus named extra cells such as "bar" or "out"
- stack: a grid whose cells hold a pile of pieces

CELLS:
- single cells hold at most one piece; placing replaces the occupant
- multi cells hold any number of pieces; the last piece added is on top

MOVE RULES:
- displace: the moving piece captures whatever is in the destination
- safe_displace: like displace, but a cell holding two or more pieces
  that are not the mover is safe and the move is refused; extra cells are
  never safe
- stack: the top piece moves onto the destination pile; a pile topped by a
  different piece is captured whole

LOCATION ARITHMETIC:
- offset adds a delta: on a grid "2,1" + "1,1" is "3,2"
- neighbors lists orthogonal cells, and diagonal ones when asked

TIPS:
- Use preview_move before a risky move; it never changes the board
- bulk_move stops at the first failing move and reports which one
- Refused moves still return the board so you can look again`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoardState(session.BoardState))
}

func formatBoardState(state *engine.BoardState) string {
	if state == nil {
		return "No board state available"
	}

	var b strings.Builder

	shape := string(state.Kind)
	switch {
	case len(state.Dimensions) > 0:
		parts := make([]string, len(state.Dimensions))
		for i, d := range state.Dimensions {
			parts[i] = fmt.Sprint(d)
		}
		shape += " " + strings.Join(parts, "x")
	case state.Length > 0:
		shape += fmt.Sprintf(" of %d", state.Length)
	}

	fmt.Fprintf(&b, "Board: %s (%s) | Rule: %s | Pieces: %d | Moves: %d\n\n",
		state.ConfigName, shape, state.MoveRule, state.PieceCount, state.TotalMoves)

	if len(state.Dimensions) == 2 {
		b.WriteString(renderGrid(state))
	} else {
		for _, cell := range state.Cells {
			if len(cell.Pieces) > 0 || cell.Extra {
				b.WriteString(formatCell(cell))
				b.WriteString("\n")
			}
		}
	}

	if len(state.Captured) > 0 {
		fmt.Fprintf(&b, "\nCaptured: %s", strings.Join(state.Captured, " "))
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

// renderGrid draws a two dimensional board. Empty cells are '.', a lone
// piece shows itself and a pile shows its height.
func renderGrid(state *engine.BoardState) string {
	rows, cols := state.Dimensions[0], state.Dimensions[1]

	var b strings.Builder
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			cell, _ := engine.CellAt(state, fmt.Sprintf("%d,%d", r, c))
			switch n := len(cell.Pieces); {
			case n == 0:
				b.WriteString(".")
			case n == 1:
				b.WriteString(firstRune(cell.Pieces[0]))
			case n < 10:
				fmt.Fprint(&b, n)
			default:
				b.WriteString("+")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return "?"
}

func formatCell(cell engine.CellState) string {
	if len(cell.Pieces) == 0 {
		return fmt.Sprintf("%s: empty", cell.Location)
	}
	return fmt.Sprintf("%s: %s", cell.Location, strings.Join(cell.Pieces, " "))
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}

	if result.Error != "" {
		fmt.Fprintf(&b, "Reason: %s\n", result.Error)
	}
	if len(result.Captured) > 0 {
		fmt.Fprintf(&b, "Captured: %s\n", strings.Join(result.Captured, " "))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatBoardState(result.BoardState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	configName := ""
	if result.BoardState != nil {
		configName = result.BoardState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s\n", sessionID, configName)
	fmt.Fprintf(&b, "Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves)
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d (%s): %s\n",
			result.StoppedOnMove, result.StopReasonCode, result.StoppedReason)
	}
	if len(result.Captured) > 0 {
		fmt.Fprintf(&b, "Captured: %s\n", strings.Join(result.Captured, " "))
	}

	if len(result.Records) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i, rec := range result.Records {
			b.WriteString(formatRecordLine(i+1, rec))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatBoardState(result.BoardState))
	return b.String()
}

func formatPreview(preview *engine.MovePreview) string {
	var b strings.Builder
	if preview.Legal {
		fmt.Fprintf(&b, "✓ %s -> %s is legal\n", preview.From, preview.To)
	} else {
		fmt.Fprintf(&b, "✗ %s -> %s is not legal: %s\n", preview.From, preview.To, preview.Reason)
	}
	if len(preview.Captured) > 0 {
		fmt.Fprintf(&b, "Would capture: %s\n", strings.Join(preview.Captured, " "))
	}
	for _, cell := range preview.After {
		b.WriteString(formatCell(cell))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRecordLine(num int, rec engine.MoveRecord) string {
	status := "✓"
	if !rec.Success {
		status = "✗"
	}

	where := rec.From
	if rec.To != "" {
		where = fmt.Sprintf("%s->%s", rec.From, rec.To)
	}
	line := fmt.Sprintf("%d. %s %s", num, rec.Action, where)
	if rec.Piece != "" {
		line += " " + rec.Piece
	}
	line += " " + status
	if len(rec.Captured) > 0 {
		line += fmt.Sprintf(" [captured: %s]", strings.Join(rec.Captured, " "))
	}
	if rec.Error != "" {
		line += fmt.Sprintf(" (%s)", rec.Error)
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d), Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		b.WriteString(formatRecordLine(num, move))
	}

	return b.String()
}

func formatCurrentSegment(state *engine.BoardState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment, Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}

	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		b.WriteString(formatRecordLine(i+1, move))
	}
	return b.String()
}
