package orderbook

import (
	"math/rand"
	"sort"
	"testing"
)

func TestRBTreeInsertFindDelete(t *testing.T) {
	tr := NewRBTree()

	for _, p := range []int64{50, 20, 80, 10, 30, 70, 90} {
		tr.UpsertLevel(p)
	}
	if tr.Size() != 7 {
		t.Fatalf("size = %d", tr.Size())
	}
	if tr.FindLevel(30) == nil || tr.FindLevel(31) != nil {
		t.Fatal("find mismatch")
	}

	if !tr.DeleteLevel(20) {
		t.Fatal("delete existing should report true")
	}
	if tr.DeleteLevel(20) {
		t.Fatal("delete missing should report false")
	}
	if tr.Size() != 6 || tr.FindLevel(20) != nil {
		t.Fatal("delete did not remove level")
	}
}

func TestRBTreeUpsertIsIdempotent(t *testing.T) {
	tr := NewRBTree()

	a := tr.UpsertLevel(100)
	b := tr.UpsertLevel(100)
	if a != b {
		t.Fatal("upsert of same price must return the same level")
	}
	if tr.Size() != 1 {
		t.Fatalf("size = %d", tr.Size())
	}
}

func TestRBTreeMinMax(t *testing.T) {
	tr := NewRBTree()
	if tr.MinLevel() != nil || tr.MaxLevel() != nil {
		t.Fatal("empty tree has no min/max")
	}

	for _, p := range []int64{42, 7, 99, 13} {
		tr.UpsertLevel(p)
	}
	if tr.MinLevel().Price != 7 || tr.MaxLevel().Price != 99 {
		t.Fatalf("min=%d max=%d", tr.MinLevel().Price, tr.MaxLevel().Price)
	}
}

func TestRBTreeOrderedTraversal(t *testing.T) {
	tr := NewRBTree()
	rng := rand.New(rand.NewSource(1))

	want := make([]int64, 0, 200)
	seen := map[int64]bool{}
	for len(want) < 200 {
		p := int64(rng.Intn(10000)) + 1
		if seen[p] {
			continue
		}
		seen[p] = true
		want = append(want, p)
		tr.UpsertLevel(p)
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	var asc []int64
	tr.ForEachAscending(func(l *PriceLevel) bool {
		asc = append(asc, l.Price)
		return true
	})
	if len(asc) != len(want) {
		t.Fatalf("traversal visited %d of %d", len(asc), len(want))
	}
	for i := range want {
		if asc[i] != want[i] {
			t.Fatalf("ascending order broken at %d: %d != %d", i, asc[i], want[i])
		}
	}

	var desc []int64
	tr.ForEachDescending(func(l *PriceLevel) bool {
		desc = append(desc, l.Price)
		return true
	})
	for i := range want {
		if desc[i] != want[len(want)-1-i] {
			t.Fatalf("descending order broken at %d", i)
		}
	}
}

func TestRBTreeTraversalEarlyStop(t *testing.T) {
	tr := NewRBTree()
	for p := int64(1); p <= 10; p++ {
		tr.UpsertLevel(p)
	}

	var visited int
	tr.ForEachAscending(func(l *PriceLevel) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Fatalf("early stop visited %d", visited)
	}
}

func TestRBTreeRandomChurn(t *testing.T) {
	tr := NewRBTree()
	rng := rand.New(rand.NewSource(7))
	live := map[int64]bool{}

	for i := 0; i < 5000; i++ {
		p := int64(rng.Intn(500)) + 1
		if live[p] {
			tr.DeleteLevel(p)
			delete(live, p)
		} else {
			tr.UpsertLevel(p)
			live[p] = true
		}
	}

	if tr.Size() != len(live) {
		t.Fatalf("size %d != live %d", tr.Size(), len(live))
	}
	prev := int64(-1)
	tr.ForEachAscending(func(l *PriceLevel) bool {
		if l.Price <= prev {
			t.Fatalf("order violated: %d after %d", l.Price, prev)
		}
		if !live[l.Price] {
			t.Fatalf("deleted price %d still present", l.Price)
		}
		prev = l.Price
		return true
	})
}
