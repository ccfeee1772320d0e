package services

import (
	"context"
	"sync"
	"time"

	"yaumiyah/internal/log"
	"yaumiyah/internal/tracker"
)

// DebouncedStore wraps a tracker StateStore so that bursts of rapid saves
// coalesce into one durable write after a short idle gap. The tracker itself
// persists on every mutation; this keeps that contract while avoiding write
// amplification. A zero or negative delay makes every save synchronous.
type DebouncedStore struct {
	inner  tracker.StateStore
	delay  time.Duration
	logger *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
}

// NewDebouncedStore wraps inner with the given idle delay.
func NewDebouncedStore(inner tracker.StateStore, delay time.Duration, logger *log.Logger) *DebouncedStore {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentTracker})
	}
	return &DebouncedStore{inner: inner, delay: delay, logger: logger}
}

// Load passes through to the wrapped store.
func (s *DebouncedStore) Load(ctx context.Context) ([]byte, error) {
	return s.inner.Load(ctx)
}

// Save buffers the blob and (re)arms the idle timer. Only the latest blob is
// ever written; earlier buffered ones are superseded.
func (s *DebouncedStore) Save(ctx context.Context, blob []byte) error {
	if s.delay <= 0 {
		return s.inner.Save(ctx, blob)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append([]byte(nil), blob...)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.flush(context.Background()); err != nil {
			s.logger.Error("Debounced tracker save failed", log.FieldError, err)
		}
	})
	return nil
}

// Flush writes any buffered blob immediately.
func (s *DebouncedStore) Flush(ctx context.Context) error {
	return s.flush(ctx)
}

// Close flushes pending state; call it before process exit or the last
// buffered write may be lost.
func (s *DebouncedStore) Close() error {
	return s.flush(context.Background())
}

func (s *DebouncedStore) flush(ctx context.Context) error {
	s.mu.Lock()
	blob := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if blob == nil {
		return nil
	}
	return s.inner.Save(ctx, blob)
}

// TrackerService owns a tracker backed by a debounced store.
type TrackerService struct {
	*tracker.Tracker
	store *DebouncedStore
}

// NewTrackerService builds the tracker over inner with debounced
// persistence. A nil clock defaults to time.Now.
func NewTrackerService(inner tracker.StateStore, debounce time.Duration, now func() time.Time, logger *log.Logger) *TrackerService {
	store := NewDebouncedStore(inner, debounce, logger)
	return &TrackerService{
		Tracker: tracker.New(store, now),
		store:   store,
	}
}

// Close flushes any pending tracker state.
func (s *TrackerService) Close() error {
	return s.store.Close()
}
