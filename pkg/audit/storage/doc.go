// Package storage provides audit storage backends.
//
// Two implementations of audit.Storage are available:
//
//   - MemoryStorage: in-memory map, intended for testing
//   - SQLiteStorage: durable single-file database with WAL mode
package storage
