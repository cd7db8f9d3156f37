// Package memory provides the primitives for order reuse and safe
// reclamation: a typed object pool, a ring buffer of retired objects,
// and global epoch tracking. Retired orders are recycled only once no
// snapshot reader that might still hold a reference remains active.
//
// The package is dependency-free; the orderbook and snapshot layers
// build on it.
package memory
