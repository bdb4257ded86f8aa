// Package store provides the SQLite-backed card cache.
//
// The cache holds one table family per card kind plus a session trail:
//   - standard, endorsement_state, related_standard
//   - guidance, guidance_standard
//   - licence, organisation
//   - theme, topic
//   - section
//   - trail: (checksum, resource_type, session_timestamp)
//
// # Transactions
//
// Every record operation hangs off a *Tx obtained through Store.Update or
// Store.View. A callback returning an error rolls the whole transaction back,
// so a card and its dependent rows are written together or not at all.
//
// # References
//
// Owned rows (endorsement state, related standards, guidance standards)
// declare ON DELETE CASCADE on their owner. References between cards (topic,
// licence, maintainer, theme, related target) are plain text columns: source
// files are visited in arbitrary order and a dangling reference is a content
// problem, not a storage one.
//
// # Sessions
//
// A Store captures one session timestamp at Connect. Trail rows written
// through it carry that timestamp; rows of other sessions are stale.
//
// # Database Configuration
//
//   - foreign_keys=ON: cascade owned rows
//   - WAL mode, synchronous=NORMAL, busy_timeout=5000 for disk caches
//   - Disconnect checkpoints the WAL and returns to journal_mode=DELETE
package store
