package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eduforge/eduforge/internal/content"
)

// MemoryTable implements content.Table against an in-process slice.
// Failures can be injected per operation to exercise error paths.
//
// Thread-safe for concurrent use.
type MemoryTable struct {
	mu        sync.Mutex
	rows      []content.Record
	recentErr error
	insertErr error
}

// NewMemoryTable creates an empty table.
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{}
}

// Seed appends rows directly, bypassing Insert and its error injection.
func (t *MemoryTable) Seed(rows ...content.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, rows...)
}

// FailRecent makes subsequent Recent calls return err. Pass nil to clear.
func (t *MemoryTable) FailRecent(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recentErr = err
}

// FailInsert makes subsequent Insert calls return err. Pass nil to clear.
func (t *MemoryTable) FailInsert(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertErr = err
}

// Rows returns a copy of every stored row, in insertion order.
func (t *MemoryTable) Rows() []content.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := make([]content.Record, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Recent implements content.Table.
func (t *MemoryTable) Recent(_ context.Context, userID uuid.UUID, limit int) ([]content.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recentErr != nil {
		return nil, t.recentErr
	}

	var out []content.Record
	for _, r := range t.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Insert implements content.Table. Server-assigned fields are stamped the
// way the real table does it.
func (t *MemoryTable) Insert(_ context.Context, rec content.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.insertErr != nil {
		return t.insertErr
	}

	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	t.rows = append(t.rows, rec)
	return nil
}

var _ content.Table = (*MemoryTable)(nil)
