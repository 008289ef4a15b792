// Package websocket pushes board state updates to browser clients.
//
// A central Hub tracks clients per session. Each connection gets a read pump
// that keeps the pong deadline alive and a write pump that drains its send
// buffer. The API server calls BroadcastToSession after every mutation so
// viewers of a session see the new board immediately.
//
// Clients connect with /ws?session=<id>. Outgoing messages are JSON:
//
//	{"session_id": "ab12", "event": "state_update", "board_state": {...}}
//
// A client whose send buffer is full is dropped rather than allowed to stall
// the broadcast.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastToSession(sessionID, state)
package websocket
