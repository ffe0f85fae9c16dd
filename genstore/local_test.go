package genstore

import (
	"context"
	"sync"
	"testing"
)

func TestLocalMissingIsZero(t *testing.T) {
	s := NewLocalGenStore()
	g, err := s.Snapshot(context.Background(), "hash:Redis:Hash")
	if err != nil || g != 0 {
		t.Fatalf("g=%d err=%v want 0", g, err)
	}
}

func TestLocalBumpIsPerKey(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore()
	for i := 0; i < 3; i++ {
		if _, err := s.Bump(ctx, "a"); err != nil {
			t.Fatal(err)
		}
	}
	if g, _ := s.Snapshot(ctx, "a"); g != 3 {
		t.Fatalf("a=%d want 3", g)
	}
	if g, _ := s.Snapshot(ctx, "b"); g != 0 {
		t.Fatalf("b=%d want 0", g)
	}
}

func TestLocalConcurrentBumpsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore()

	const n = 200
	seen := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, _ := s.Bump(ctx, "k")
			seen <- g
		}()
	}
	wg.Wait()
	close(seen)

	uniq := make(map[uint64]bool, n)
	for g := range seen {
		if uniq[g] {
			t.Fatalf("generation %d handed out twice", g)
		}
		uniq[g] = true
	}
	if g, _ := s.Snapshot(ctx, "k"); g != n {
		t.Fatalf("final gen=%d want %d", g, n)
	}
}
