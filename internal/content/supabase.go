package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/eduforge/eduforge/internal/fault"
)

// TableName is the remote table holding content records.
const TableName = "content"

// Table is the tabular-store contract the cache synchronizes against:
// select the newest rows for one owner, and insert one row. Defined here,
// on the consumer side, so tests can substitute an in-memory fake.
type Table interface {
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]Record, error)
	Insert(ctx context.Context, rec Record) error
}

// SupabaseTable implements Table against a Supabase project via the
// postgrest query builder.
type SupabaseTable struct {
	client *supabase.Client
}

// NewSupabaseTable wraps a Supabase client.
func NewSupabaseTable(client *supabase.Client) *SupabaseTable {
	return &SupabaseTable{client: client}
}

// insertRow is the wire shape for inserts. The id and created_at columns are
// assigned server-side.
type insertRow struct {
	UserID    string         `json:"user_id"`
	Type      Type           `json:"type"`
	Subject   string         `json:"subject"`
	Grade     string         `json:"grade"`
	Chapter   string         `json:"chapter"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	UpdatedAt string         `json:"updated_at"`
}

// Recent returns up to limit records owned by userID, newest first.
func (t *SupabaseTable) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]Record, error) {
	_ = ctx // postgrest-go executes synchronously without context plumbing

	var records []Record
	_, err := t.client.From(TableName).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&records)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "selecting recent content", err)
	}
	return records, nil
}

// Insert writes one record.
func (t *SupabaseTable) Insert(ctx context.Context, rec Record) error {
	_ = ctx

	row := insertRow{
		UserID:    rec.UserID.String(),
		Type:      rec.Type,
		Subject:   rec.Subject,
		Grade:     rec.Grade,
		Chapter:   rec.Chapter,
		Content:   rec.Content,
		Metadata:  rec.Metadata,
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if _, _, err := t.client.From(TableName).
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		return fault.Wrap(fault.KindPersistence, "inserting content record", err)
	}
	return nil
}

var _ Table = (*SupabaseTable)(nil)
