package lru_test

import (
	"reflect"
	"testing"

	"github.com/entitykit/entitykit/internal/lru"
)

func TestLRU_KeysOrderAndEviction(t *testing.T) {
	var evicted []string
	lc := lru.NewLRU[string, string](3, func(key string, _ string) {
		evicted = append(evicted, key)
	})
	lc.Add("k1", "v1")
	lc.Add("k2", "v2")
	lc.Add("k3", "v3")

	// initial order: k1, k2, k3 (oldest -> newest)
	if got := lc.Keys(); !reflect.DeepEqual(got, []string{"k1", "k2", "k3"}) {
		t.Fatalf("Keys() = %v, want [k1 k2 k3]", got)
	}

	// touching k1 makes k2 the oldest
	if v, ok := lc.Get("k1"); !ok || v != "v1" {
		t.Fatalf("Get(k1) = %v, %v", v, ok)
	}

	if !lc.Add("k4", "v4") {
		t.Fatalf("expected an eviction when adding k4")
	}
	if _, ok := lc.Peek("k2"); ok {
		t.Fatalf("expected k2 to be evicted after adding k4")
	}
	if got := lc.Keys(); !reflect.DeepEqual(got, []string{"k3", "k1", "k4"}) {
		t.Fatalf("Keys() after eviction = %v, want [k3 k1 k4]", got)
	}
	if !reflect.DeepEqual(evicted, []string{"k2"}) {
		t.Fatalf("evicted = %v, want [k2]", evicted)
	}
}

func TestLRU_GetOrAdd(t *testing.T) {
	lc := lru.NewLRU[string, int](0, nil)
	calls := 0
	compute := func() int { calls++; return 42 }

	if v := lc.GetOrAdd("answer", compute); v != 42 {
		t.Fatalf("GetOrAdd = %d", v)
	}
	if v := lc.GetOrAdd("answer", compute); v != 42 || calls != 1 {
		t.Fatalf("GetOrAdd = %d after %d calls, want one computation", v, calls)
	}
	if lc.Cap() != 0 || lc.Len() != 1 {
		t.Fatalf("Cap() = %d, Len() = %d", lc.Cap(), lc.Len())
	}
}

func TestLRU_RemoveAndPurge(t *testing.T) {
	lc := lru.NewLRU[int, int](10, nil)
	for i := 0; i < 5; i++ {
		lc.Add(i, i*i)
	}

	if !lc.Remove(3) || lc.Remove(3) {
		t.Fatalf("Remove should report presence only once")
	}
	if lc.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", lc.Len())
	}

	lc.Purge()
	if lc.Len() != 0 || len(lc.Keys()) != 0 {
		t.Fatalf("expected empty cache after Purge")
	}
}
