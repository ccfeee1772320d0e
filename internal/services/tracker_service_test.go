package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

type countingStore struct {
	mu    sync.Mutex
	blob  []byte
	saves int
}

func (s *countingStore) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blob, nil
}

func (s *countingStore) Save(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte(nil), blob...)
	s.saves++
	return nil
}

func (s *countingStore) snapshot() (int, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves, s.blob
}

func TestDebouncedStoreCoalesces(t *testing.T) {
	inner := &countingStore{}
	store := NewDebouncedStore(inner, 20*time.Millisecond, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, []byte{byte(i)}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	time.Sleep(100 * time.Millisecond)

	saves, blob := inner.snapshot()
	if saves != 1 {
		t.Errorf("inner saves = %d, want 1", saves)
	}
	if !bytes.Equal(blob, []byte{4}) {
		t.Errorf("inner blob = %v, want the last save", blob)
	}
}

func TestDebouncedStoreZeroDelayPassesThrough(t *testing.T) {
	inner := &countingStore{}
	store := NewDebouncedStore(inner, 0, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, []byte{byte(i)}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	saves, _ := inner.snapshot()
	if saves != 3 {
		t.Errorf("inner saves = %d, want 3", saves)
	}
}

func TestDebouncedStoreCloseFlushes(t *testing.T) {
	inner := &countingStore{}
	store := NewDebouncedStore(inner, time.Hour, nil)

	if err := store.Save(context.Background(), []byte("state")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saves, _ := inner.snapshot(); saves != 0 {
		t.Fatal("save reached the inner store before the delay elapsed")
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	saves, blob := inner.snapshot()
	if saves != 1 || !bytes.Equal(blob, []byte("state")) {
		t.Errorf("close did not flush: saves=%d blob=%q", saves, blob)
	}
}

func TestDebouncedStoreFlushWithoutPending(t *testing.T) {
	inner := &countingStore{}
	store := NewDebouncedStore(inner, time.Hour, nil)

	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if saves, _ := inner.snapshot(); saves != 0 {
		t.Error("flush with nothing pending wrote to the inner store")
	}
}

func TestTrackerServiceRoundTrip(t *testing.T) {
	inner := &countingStore{}
	now := func() time.Time { return time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC) }
	svc := NewTrackerService(inner, 0, now, nil)
	ctx := context.Background()

	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if len(svc.Practices()) == 0 {
		t.Fatal("no default practices after Initialize")
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if saves, _ := inner.snapshot(); saves == 0 {
		t.Error("Initialize never persisted through the service")
	}
}
