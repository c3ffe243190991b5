package repository

import (
	"context"
	"time"
)

// MaxResults caps every FindMany call. There is no pagination token.
const MaxResults = 100

// Collection names shared by every backend.
const (
	ContactsCollection     = "contacts"
	ServicesCollection     = "services"
	TestimonialsCollection = "testimonials"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// Document is a record addressed by its process-generated id.
type Document interface {
	DocumentID() string
}

// Filter is an equality filter on top-level document fields.
type Filter map[string]any

// Fields is a partial document: only the given fields are written.
type Fields map[string]any

// Sort orders FindMany results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Query describes a FindMany call. A Limit of zero or above MaxResults is
// clamped to MaxResults.
type Query struct {
	Filter Filter
	Sort   Sort
	Limit  int
}

func (q Query) limit() int {
	if q.Limit <= 0 || q.Limit > MaxResults {
		return MaxResults
	}
	return q.Limit
}

// Collection is the uniform persistence interface over one named collection.
// Update and Delete return ErrNotFound when no document matches id; Update
// always stamps updated_at in the same store operation.
type Collection[T Document] interface {
	FindMany(ctx context.Context, q Query) ([]T, error)
	FindOne(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, doc T) error
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// storeNow stamps updated_at. MongoDB keeps datetimes to the millisecond,
// so every backend truncates to match.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// indexedFields lists the secondary indexes per collection.
var indexedFields = map[string][]string{
	ContactsCollection:     {"created_at", "status", "email"},
	ServicesCollection:     {"created_at", "active", "category"},
	TestimonialsCollection: {"created_at", "approved", "rating"},
}
