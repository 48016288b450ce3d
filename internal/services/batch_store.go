package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"streampulse/internal/analytics"
)

// Batch is one analyzed upload held in memory. Batches are immutable after
// creation; filtered views are computed per request.
type Batch struct {
	ID         string            `json:"id"`
	SourceName string            `json:"source_name"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Result     *analytics.Result `json:"-"`
}

// BatchStore is an in-memory TTL cache of analyzed batches. When the store
// is full the oldest batch is evicted to make room.
type BatchStore struct {
	mu         sync.RWMutex
	batches    map[string]*Batch
	ttl        time.Duration
	maxBatches int
	logger     *slog.Logger
	now        func() time.Time
}

// NewBatchStore creates a store holding at most maxBatches entries for ttl each.
func NewBatchStore(ttl time.Duration, maxBatches int, logger *slog.Logger) *BatchStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchStore{
		batches:    make(map[string]*Batch),
		ttl:        ttl,
		maxBatches: maxBatches,
		logger:     logger.With(slog.String("component", "batch_store")),
		now:        time.Now,
	}
}

// Put stores an analyzed result under a fresh UUID and returns the batch.
func (s *BatchStore) Put(ctx context.Context, sourceName string, result *analytics.Result) *Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	if s.maxBatches > 0 && len(s.batches) >= s.maxBatches {
		s.evictOldestLocked(ctx)
	}

	now := s.now()
	batch := &Batch{
		ID:         uuid.New().String(),
		SourceName: sourceName,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
		Result:     result,
	}
	s.batches[batch.ID] = batch

	s.logger.InfoContext(ctx, "batch stored",
		slog.String("batch_id", batch.ID),
		slog.String("source", sourceName),
		slog.Int("sessions", len(result.Sessions)),
		slog.Time("expires_at", batch.ExpiresAt))
	return batch
}

// Get returns the batch with the given ID, or false when it is unknown
// or already expired.
func (s *BatchStore) Get(id string) (*Batch, bool) {
	s.mu.RLock()
	batch, ok := s.batches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(batch.ExpiresAt) {
		s.mu.Lock()
		delete(s.batches, id)
		s.mu.Unlock()
		return nil, false
	}
	return batch, true
}

// Delete removes a batch. Deleting an unknown ID is a no-op.
func (s *BatchStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, id)
}

// Len returns the number of live batches.
func (s *BatchStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	return len(s.batches)
}

// StartJanitor sweeps expired batches every interval until ctx is done.
func (s *BatchStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.purgeExpiredLocked()
			s.mu.Unlock()
		}
	}
}

func (s *BatchStore) purgeExpiredLocked() {
	now := s.now()
	for id, batch := range s.batches {
		if now.After(batch.ExpiresAt) {
			delete(s.batches, id)
		}
	}
}

func (s *BatchStore) evictOldestLocked(ctx context.Context) {
	var oldestID string
	var oldest time.Time
	for id, batch := range s.batches {
		if oldestID == "" || batch.CreatedAt.Before(oldest) {
			oldestID = id
			oldest = batch.CreatedAt
		}
	}
	if oldestID != "" {
		delete(s.batches, oldestID)
		s.logger.WarnContext(ctx, "store full, evicted oldest batch",
			slog.String("batch_id", oldestID))
	}
}
