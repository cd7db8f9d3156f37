package sequence

import (
	"sync"
	"testing"
)

func TestSequencerStartsAfterSeed(t *testing.T) {
	s := New(10)
	if got := s.Next(); got != 11 {
		t.Fatalf("Next() = %d, want 11", got)
	}
	if got := s.Current(); got != 11 {
		t.Fatalf("Current() = %d, want 11", got)
	}
}

func TestSequencerReset(t *testing.T) {
	s := New(0)
	s.Next()
	s.Next()
	s.Reset(100)
	if got := s.Next(); got != 101 {
		t.Fatalf("Next() after reset = %d, want 101", got)
	}
}

func TestSequencerConcurrentUnique(t *testing.T) {
	s := New(0)
	const workers, per = 8, 1000

	out := make([][]uint64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			vals := make([]uint64, 0, per)
			for i := 0; i < per; i++ {
				vals = append(vals, s.Next())
			}
			out[w] = vals
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]bool, workers*per)
	for _, vals := range out {
		for _, v := range vals {
			if seen[v] {
				t.Fatalf("duplicate sequence %d", v)
			}
			seen[v] = true
		}
	}
	if s.Current() != workers*per {
		t.Fatalf("Current() = %d, want %d", s.Current(), workers*per)
	}
}
