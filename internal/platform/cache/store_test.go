package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "user-red", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "tok", loader)
			if err != nil {
				results <- "error: " + err.Error()
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for got := range results {
		if got != "user-red" {
			t.Fatalf("unexpected value: %q", got)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected loader calls: got=%d want=1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("boom")
	var calls int

	loader := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != 7 {
		t.Fatalf("unexpected second load: v=%d err=%v", v, err)
	}
	if calls != 2 {
		t.Fatalf("unexpected loader calls: got=%d want=2", calls)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	store := NewStore[string](time.Second)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_EmptyKeyBypassesCache(t *testing.T) {
	store := NewStore[string](0)
	var calls int
	loader := func(context.Context) (string, error) {
		calls++
		return "x", nil
	}

	_, _ = store.GetOrLoad(context.Background(), "", loader)
	_, _ = store.GetOrLoad(context.Background(), "", loader)
	if calls != 2 {
		t.Fatalf("unexpected loader calls: got=%d want=2", calls)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}
