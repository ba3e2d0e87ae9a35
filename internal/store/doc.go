// Package store provides the canonical value store: a concurrent,
// sharded hash-consing cache mapping structurally equal payloads to one
// reference-counted canonical entry.
//
// This package is generic and imports nothing internal. The ir package
// builds its value graph and region tree on top of two Interner
// instances; tests may construct independent interners, so there is no
// process-global cache.
//
// Key design constraints:
//   - Interning never fails; payload validation happens in constructors,
//     before a payload reaches the store.
//   - Eviction never invalidates externally held entries. Collect only
//     drops canonicality: the entry stays alive for its holders, but a
//     later structurally-equal payload interns to a fresh entry.
//   - The map itself is not a holder. An entry is evictable exactly when
//     its external holder count is zero.
package store
