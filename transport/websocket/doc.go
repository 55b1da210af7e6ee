// Package websocket streams game snapshots to browsers and observers.
//
// A central Hub tracks clients per session. Each connection gets a read
// goroutine that only watches for close and pong frames, and a write
// goroutine that forwards queued messages and keeps the connection alive
// with pings.
//
// Message Protocol:
//
// Clients connect to /ws?session=<id> and only listen. The server sends
// JSON messages of two kinds:
//   - {"session_id": "ab12", "event": "state_update", "state": {...}}
//   - {"session_id": "ab12", "event": "event", "data": {...}}
//
// The state is the full engine.GameSnapshot after a command. Event data is
// one service.GameEvent.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, game.Export())
//
// Concurrency:
//
// Client bookkeeping is confined to the Run goroutine. Broadcasts are queued
// and dropped with a warning when the queue is full, so commands never block
// on slow viewers.
package websocket
