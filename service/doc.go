// Package service orchestrates the core components of the matching
// engine: the book, the intent log, the trade outbox, and memory
// reclamation. It is the only write entry point into the system and
// provides a transport-neutral API for submitting, cancelling, and
// querying orders.
package service
