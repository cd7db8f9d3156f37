// Package orderbook implements the in-memory limit order book and its
// matching algorithm. It maintains two red-black trees of price levels
// for the bid and ask sides, matches crossing orders at price-time
// priority, and emits one Trade per fill at the maker's resting price.
//
// The book is deterministic and single-writer: it performs no
// locking, no I/O and no time calls of its own. The service layer
// serializes access and owns durability and publication.
package orderbook
