// Package mcp provides a Model Context Protocol front end for board sessions.
//
// The client is thin: every tool call becomes a request to the REST API, and
// the JSON answer is rendered as text for the agent. Grids with two
// dimensions are drawn row by row; other boards list their occupied cells.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - board_state: Board snapshot with a text rendering
//   - place_piece, remove_piece
//   - move_piece, safe_displace, bulk_move
//   - preview_move: Dry run of a move
//   - offset, neighbors: Location arithmetic
//   - clear_board, reset_board
//   - move_history: Paginated history plus the current segment
//   - list_configs
//   - board_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
