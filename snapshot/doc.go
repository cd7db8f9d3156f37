// Package snapshot persists and restores the resting state of the
// book. A snapshot records the WAL and trade sequences it covers, so
// recovery loads the snapshot and replays only the intent records past
// it. Readers coordinate visibility through the memory epoch model and
// never block the matching path.
package snapshot
