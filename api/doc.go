// Package api provides HTTP REST API handlers for board sessions.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/unified - Sessions filtered by configName or sessionIds
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Board Operations:
//   - GET /api/sessions/{id}/state - Board snapshot
//   - POST /api/sessions/{id}/place - {"location", "piece", "stack"}
//   - POST /api/sessions/{id}/remove - {"location", "piece"}
//   - POST /api/sessions/{id}/move - {"from", "to", "piece", "reset"}
//   - POST /api/sessions/{id}/safe-displace - {"from", "to", "piece"}
//   - POST /api/sessions/{id}/bulk-move - {"moves": [{"from", "to"}], "reset"}
//   - POST /api/sessions/{id}/clear
//   - POST /api/sessions/{id}/reset
//   - POST /api/sessions/{id}/preview - Dry run of a move
//   - GET /api/sessions/{id}/offset?location=2,1&delta=1,0
//   - GET /api/sessions/{id}/neighbors?location=2,1&diagonal=true
//   - GET /api/sessions/{id}/history - Paginated move history
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a configuration
//
// Other:
//   - GET /ws?session={id} - WebSocket board updates
//   - GET /health
//
// Locations are strings: "r,c" for grids, a point number or extra cell name
// for lines.
//
// Errors are returned as JSON:
//
//	{"error": "location not found: 9,9"}
//
// Unknown sessions, configs and locations map to 404, malformed input to 400
// and an unsafe capture to 409. A move refused by the board rules (an empty
// source cell, a missing piece) is a 200 with "success": false.
package api
