// Package scripture is the client for the RapidAPI Bhagavad Gita service.
//
// One call maps to one GET of /v2/chapters/{n}/ with the two fixed RapidAPI
// headers. Non-2xx replies are returned as *APIError so callers can pass the
// upstream status and message through unchanged.
package scripture
