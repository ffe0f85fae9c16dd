// Package dictcache keeps dictionary configuration (code/value options
// tagged with a type) in a hash-structured cache, grouped by type.
//
// Components:
//   - Store: the source of truth (e.g. store/postgres).
//   - HashStore: one hash per service; fields are types, values are encoded
//     []Entry (Redis hash, in-process map, or a framed blob on a byte Provider).
//   - Codec: (de)serializes one type's []Entry. JSON by default.
//   - GenStore: optional; lets only the most recently scheduled refresh write.
//
// Pattern (cache-aside refresh):
//
//	id, _ := svc.AddConfig(ctx, e)          // schedules a full reload, returns at once
//	all := svc.GetAllGrouped(ctx)           // map[type][]Entry, empty on miss/error
//	opts := svc.GetByType(ctx, "gender")    // []Entry, empty on miss/error
//
// A refresh re-reads every valid entry and replaces the whole hash; the cache
// is never patched field by field. Reads may observe the previous snapshot
// until the refresh lands.
package dictcache
