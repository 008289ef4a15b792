// Package service provides the business logic layer for board sessions.
//
// GameService is the main interface. It sits between the transports
// (HTTP, WebSocket, MCP) and the board engine and gives each session its
// own engine instance with independent state.
//
// SessionManager and ConfigManager are implemented by the session and config
// packages and are injected here so the service can be tested with mocks.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "backgammon")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, engine.MoveRequest{From: "1", To: "5"}, false)
//
// Request errors (unknown or malformed locations, a missing piece) are
// returned as errors. Moves the board refuses, such as an unsafe capture or
// moving from an empty cell, come back as a MoveResult with Success false.
// Every mutation is persisted through SessionManager.Save.
package service
