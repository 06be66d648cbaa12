// Package http provides the HTTP API and the chapter explorer page.
//
// The HTTP server exposes endpoints for:
//   - Chapter lookups (POST /api/chapter)
//   - The server-rendered explorer form (/explorer)
//   - Health checks
//   - Prometheus metrics
package http
