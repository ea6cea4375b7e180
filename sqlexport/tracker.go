package sqlexport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/google/uuid"
)

// RunState captures export run states.
type RunState string

const (
	StateQueued    RunState = "queued"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateFailed    RunState = "failed"
)

// RunRecord captures tracker state for one export run.
type RunRecord struct {
	ID          string
	Table       string
	Dialect     string
	State       RunState
	Rows        int64
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}

// RunFilter filters tracker lists.
type RunFilter struct {
	Table string
	State RunState
	Since time.Time
	Until time.Time
}

// RunTracker tracks export run progress.
type RunTracker interface {
	Start(ctx context.Context, record RunRecord) (string, error)
	Advance(ctx context.Context, id string, rows int64) error
	Complete(ctx context.Context, id string, rows int64) error
	Fail(ctx context.Context, id string, err error) error
	Status(ctx context.Context, id string) (RunRecord, error)
	List(ctx context.Context, filter RunFilter) ([]RunRecord, error)
}

// MemoryTracker stores run records in memory (test/dev only).
type MemoryTracker struct {
	mu      sync.RWMutex
	records map[string]RunRecord
}

// NewMemoryTracker creates an in-memory run tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{records: make(map[string]RunRecord)}
}

// Start creates a new run record.
func (t *MemoryTracker) Start(ctx context.Context, record RunRecord) (string, error) {
	_ = ctx
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.State == "" {
		record.State = StateQueued
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	t.mu.Lock()
	t.records[record.ID] = record
	t.mu.Unlock()
	return record.ID, nil
}

// Advance updates the row count for a run.
func (t *MemoryTracker) Advance(ctx context.Context, id string, rows int64) error {
	_ = ctx
	t.mu.Lock()
	defer t.mu.Unlock()
	record, ok := t.records[id]
	if !ok {
		return dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
	}
	record.Rows += rows
	if record.State == StateQueued {
		record.State = StateRunning
		record.StartedAt = time.Now()
	}
	t.records[id] = record
	return nil
}

// Complete marks the run as completed.
func (t *MemoryTracker) Complete(ctx context.Context, id string, rows int64) error {
	_ = ctx
	t.mu.Lock()
	defer t.mu.Unlock()
	record, ok := t.records[id]
	if !ok {
		return dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
	}
	record.State = StateCompleted
	record.Rows = rows
	record.CompletedAt = time.Now()
	t.records[id] = record
	return nil
}

// Fail records failure state.
func (t *MemoryTracker) Fail(ctx context.Context, id string, err error) error {
	_ = ctx
	_ = err
	t.mu.Lock()
	defer t.mu.Unlock()
	record, ok := t.records[id]
	if !ok {
		return dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
	}
	record.State = StateFailed
	record.CompletedAt = time.Now()
	t.records[id] = record
	return nil
}

// Status returns a record by ID.
func (t *MemoryTracker) Status(ctx context.Context, id string) (RunRecord, error) {
	_ = ctx
	t.mu.RLock()
	record, ok := t.records[id]
	t.mu.RUnlock()
	if !ok {
		return RunRecord{}, dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
	}
	return record, nil
}

// List returns records matching a filter.
func (t *MemoryTracker) List(ctx context.Context, filter RunFilter) ([]RunRecord, error) {
	_ = ctx
	result := []RunRecord{}

	t.mu.RLock()
	for _, record := range t.records {
		if filter.Table != "" && record.Table != filter.Table {
			continue
		}
		if filter.State != "" && record.State != filter.State {
			continue
		}
		if !filter.Since.IsZero() && record.CreatedAt.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && record.CreatedAt.After(filter.Until) {
			continue
		}
		result = append(result, record)
	}
	t.mu.RUnlock()
	return result, nil
}
