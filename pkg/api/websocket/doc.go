// Package websocket provides chapter lookups over a WebSocket.
//
// Clients connect to /api/chapter/ws and send {"chapter": n} frames. Each
// frame is answered with one reply carrying the upstream chapter JSON or the
// same error status and message the HTTP API would return.
package websocket
