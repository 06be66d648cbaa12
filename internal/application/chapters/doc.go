// Package chapters implements the chapter lookup core.
//
// The lookup service:
//   - Validates chapter numbers (1 to 18 inclusive)
//   - Consults the optional chapter cache
//   - Relays one request to the scripture API per lookup
//   - Records lookup metrics
//
// Upstream bodies are kept as raw JSON so transports can forward them untouched.
package chapters
