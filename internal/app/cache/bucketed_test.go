package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type row struct {
	ID   string
	Rank int
}

func rowID(r row) string { return r.ID }

func ids(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBucketed_TriState(t *testing.T) {
	b := NewBucketed(rowID, nil)

	if got := b.State("k"); got != Unhydrated {
		t.Fatalf("State = %v, want unhydrated", got)
	}
	b.Set("k", nil)
	if got := b.State("k"); got != HydratedEmpty {
		t.Fatalf("State = %v, want hydrated-empty", got)
	}
	rows, ok := b.Get("k")
	if !ok || len(rows) != 0 {
		t.Fatalf("Get = %v, %v; want empty hydrated bucket", rows, ok)
	}
	b.Insert("k", row{ID: "a"})
	if got := b.State("k"); got != Hydrated {
		t.Fatalf("State = %v, want hydrated", got)
	}
	b.Invalidate("k")
	if got := b.State("k"); got != Unhydrated {
		t.Fatalf("State = %v after Invalidate, want unhydrated", got)
	}
}

func TestBucketed_WritesToUnhydratedAreNoOps(t *testing.T) {
	b := NewBucketed(rowID, nil)

	if b.Insert("k", row{ID: "a"}) {
		t.Error("Insert reported success on unhydrated bucket")
	}
	if b.Update("k", row{ID: "a"}) {
		t.Error("Update reported success on unhydrated bucket")
	}
	if b.Remove("k", "a") {
		t.Error("Remove reported success on unhydrated bucket")
	}
	if b.State("k") != Unhydrated {
		t.Error("writes must not hydrate a bucket")
	}
}

func TestBucketed_InsertIsHeadAndUnique(t *testing.T) {
	b := NewBucketed(rowID, nil)
	b.Set("k", []row{{ID: "b"}, {ID: "c"}})

	b.Insert("k", row{ID: "a"})
	b.Insert("k", row{ID: "c", Rank: 9})

	rows, _ := b.Get("k")
	if got := ids(rows); !equal(got, []string{"c", "a", "b"}) {
		t.Fatalf("ids = %v, want [c a b]", got)
	}
	if rows[0].Rank != 9 {
		t.Errorf("re-inserted row should carry the new value, got %+v", rows[0])
	}
}

func TestBucketed_UpdateAndRemove(t *testing.T) {
	b := NewBucketed(rowID, nil)
	b.Set("k", []row{{ID: "a"}, {ID: "b", Rank: 1}, {ID: "c"}})

	if !b.Update("k", row{ID: "b", Rank: 2}) {
		t.Fatal("Update returned false")
	}
	if b.Update("k", row{ID: "zz"}) {
		t.Error("Update of missing id returned true")
	}
	if !b.Remove("k", "a") {
		t.Fatal("Remove returned false")
	}

	rows, _ := b.Get("k")
	if got := ids(rows); !equal(got, []string{"b", "c"}) {
		t.Fatalf("ids = %v, want [b c]", got)
	}
	if rows[0].Rank != 2 {
		t.Errorf("row b = %+v, want Rank 2", rows[0])
	}
}

func TestBucketed_SortedBuckets(t *testing.T) {
	b := NewBucketed(rowID, func(x, y row) bool { return x.Rank > y.Rank })
	b.Set("k", []row{{ID: "low", Rank: 1}, {ID: "high", Rank: 9}})

	b.Insert("k", row{ID: "mid", Rank: 5})
	rows, _ := b.Get("k")
	if got := ids(rows); !equal(got, []string{"high", "mid", "low"}) {
		t.Fatalf("after insert ids = %v", got)
	}

	b.Update("k", row{ID: "low", Rank: 10})
	rows, _ = b.Get("k")
	if got := ids(rows); !equal(got, []string{"low", "high", "mid"}) {
		t.Fatalf("after update ids = %v", got)
	}
}

func TestBucketed_GetReturnsCopy(t *testing.T) {
	b := NewBucketed(rowID, nil)
	b.Set("k", []row{{ID: "a"}})

	rows, _ := b.Get("k")
	rows[0].ID = "mutated"

	again, _ := b.Get("k")
	if again[0].ID != "a" {
		t.Fatalf("cache was mutated through Get result: %+v", again)
	}
}

func TestBucketed_Clear(t *testing.T) {
	b := NewBucketed(rowID, nil)
	b.Set("one", []row{{ID: "x"}})
	b.Set("two", nil)

	b.Clear()

	for _, key := range []string{"one", "two"} {
		if st := b.State(key); st != Unhydrated {
			t.Errorf("bucket %s = %v, want unhydrated", key, st)
		}
	}
	if b.Insert("one", row{ID: "y"}) {
		t.Error("Insert into a cleared bucket should be a no-op")
	}
}

func TestBucketed_LoadOnceThenServeFromMemory(t *testing.T) {
	b := NewBucketed(rowID, nil)
	var calls int32
	load := func(context.Context) ([]row, error) {
		atomic.AddInt32(&calls, 1)
		return []row{{ID: "a"}}, nil
	}

	for i := 0; i < 3; i++ {
		rows, loaded, err := b.Load(context.Background(), "k", load)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if loaded != (i == 0) {
			t.Errorf("call %d: loaded = %v", i, loaded)
		}
		if len(rows) != 1 {
			t.Fatalf("rows = %v", rows)
		}
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestBucketed_EmptyResultStaysHydrated(t *testing.T) {
	b := NewBucketed(rowID, nil)
	var calls int32
	load := func(context.Context) ([]row, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}

	b.Load(context.Background(), "k", load)
	b.Load(context.Background(), "k", load)

	if calls != 1 {
		t.Fatalf("an empty collection was reloaded: %d calls", calls)
	}
	if b.State("k") != HydratedEmpty {
		t.Fatalf("State = %v, want hydrated-empty", b.State("k"))
	}
}

func TestBucketed_LoadErrorLeavesUnhydrated(t *testing.T) {
	b := NewBucketed(rowID, nil)
	boom := errors.New("boom")

	_, _, err := b.Load(context.Background(), "k", func(context.Context) ([]row, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if b.State("k") != Unhydrated {
		t.Fatal("failed load must not hydrate")
	}
}

func TestBucketed_ConcurrentMissesShareOneLoad(t *testing.T) {
	b := NewBucketed(rowID, nil)
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) ([]row, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []row{{ID: "a"}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := b.Load(context.Background(), "k", load); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestBucketed_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	b := NewBucketed(rowID, nil)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) ([]row, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []row{{ID: "a"}}, nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := b.Load(firstCtx, "k", load)
		firstErr <- err
	}()

	<-started
	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller err = %v, want context.Canceled", err)
	}

	type outcome struct {
		rows []row
		err  error
	}
	second := make(chan outcome, 1)
	go func() {
		rows, _, err := b.Load(context.Background(), "k", load)
		second <- outcome{rows, err}
	}()
	close(release)

	got := <-second
	if got.err != nil {
		t.Fatalf("second caller err = %v", got.err)
	}
	if len(got.rows) != 1 || got.rows[0].ID != "a" {
		t.Fatalf("second caller rows = %v", got.rows)
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
	if b.State("k") != Hydrated {
		t.Fatalf("State = %v, want hydrated", b.State("k"))
	}
}

func TestBucketed_WriteDuringLoadIsNotLost(t *testing.T) {
	b := NewBucketed(rowID, nil)
	load := func(context.Context) ([]row, error) {
		// A concurrent writer lands while the store read is in flight.
		b.Insert("k", row{ID: "new"})
		return []row{{ID: "old"}}, nil
	}

	rows, loaded, err := b.Load(context.Background(), "k", load)
	if err != nil || !loaded || len(rows) != 1 {
		t.Fatalf("Load = %v, %v, %v", rows, loaded, err)
	}
	if b.State("k") != Unhydrated {
		t.Fatal("stale load must not be installed")
	}
}
