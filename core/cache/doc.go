// Package cache provides the local purchase cache: the purchaser-info
// snapshot and the generated anonymous user identifier.
//
// The Store contract is deliberately forgiving. A cache miss and a cache
// failure look the same to callers (an empty result), because the engine
// must keep working with a cold cache and no failure in this layer is worth
// surfacing to the purchase flow.
//
// # Backends
//
//   - MemoryStore: in-process map, the default.
//   - DBStore: gorm-backed key-value table (sqlite or mysql via core/database).
//   - ObjectStore: bucket objects via core/storage, for server-side embedding.
package cache
