// Package storage provides chapter cache implementations.
//
// Implementations:
//   - redis: Redis with TTL, shared between relay instances
//   - memory: In-process map with expiry, for single instances and tests
//
// Only successful upstream bodies are stored. Keys are gita:chapter:<n>.
package storage
