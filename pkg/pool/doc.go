// Package pool implements arena and string-interning allocation used to
// keep the decoder's hot path allocation-free.
//
// # Core Types
//
//   - ArenaPool: bulk allocation for the item index's interned keys
//   - StringInternPool: canonical-string interning for code-table values
//
// # Usage
//
//	name := pool.InternString(rawFieldName)
package pool
