// Package cache memoizes parser output keyed by a content hash of the raw
// doc comment text.
//
// A Gateway sits in front of a parser and consults a Store. Stores are
// write-once per key and only ever clear the keys they own, which are the
// keys starting with KeyPrefix. Three stores are provided:
//
//   - MemoryStore keeps maps in a private map.
//   - SharedStore keeps maps in a Segment that other components may share.
//   - FileStore keeps one msgpack file per key in a directory.
//
// Keys cover the raw text only, not the registry it was parsed with. After
// a change to the registered tags or aliases, a persistent store returns
// maps parsed under the old registry until it is cleared.
package cache
