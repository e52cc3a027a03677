// Package store provides SQLite-backed durable storage for lowered power
// atoms.
//
// Each record is a lowered program keyed by its content-addressed ID, so
// writing the same lowering twice is a no-op. Records keep the exponent
// before and after approximation, the regime, and the denominator bound
// that produced them.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All reads order by seq, the insertion order. Program IDs are computed by
// ir.ProgramID using RFC 8785 canonical JSON and SHA-256 with domain
// separation.
package store
