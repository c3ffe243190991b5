package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stinex/backend/internal/model"
)

// PgCollection stores documents as JSONB rows in a table named after the
// collection: (id TEXT PRIMARY KEY, doc JSONB NOT NULL).
type PgCollection[T Document] struct {
	pool  *pgxpool.Pool
	table string
	now   func() time.Time
}

// NewPgCollection creates a PgCollection backed by the given pool.
func NewPgCollection[T Document](pool *pgxpool.Pool, table string) *PgCollection[T] {
	return &PgCollection[T]{
		pool:  pool,
		table: table,
		now:   storeNow,
	}
}

// Ensure PgCollection implements Collection at compile time.
var _ Collection[model.Testimonial] = (*PgCollection[model.Testimonial])(nil)

// FindMany filters by JSONB containment and orders by the sort field.
// Fields ending in "_at" are ordered as timestamps.
func (r *PgCollection[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	filter, err := jsonParam(q.Filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM ` + r.table + ` WHERE doc @> $1::jsonb`
	if q.Sort.Field != "" {
		query += ` ORDER BY ` + sortExpr(q.Sort.Field)
		if q.Sort.Desc {
			query += ` DESC`
		}
	}
	query += ` LIMIT $2`

	rows, err := r.pool.Query(ctx, query, filter, q.limit())
	if err != nil {
		return nil, storeError("find "+r.table, err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, storeError("scan "+r.table, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.table, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("find "+r.table, err)
	}
	return docs, nil
}

func (r *PgCollection[T]) FindOne(ctx context.Context, id string) (T, error) {
	var doc T
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM `+r.table+` WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, storeError("find_one "+r.table, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", r.table, err)
	}
	return doc, nil
}

func (r *PgCollection[T]) Insert(ctx context.Context, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.table, err)
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO `+r.table+` (id, doc) VALUES ($1, $2::jsonb)`,
		doc.DocumentID(), string(raw),
	); err != nil {
		return storeError("insert "+r.table, err)
	}
	return nil
}

// Update merges fields into doc with the JSONB || operator in a single
// statement, stamping updated_at.
func (r *PgCollection[T]) Update(ctx context.Context, id string, fields Fields) error {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_at"] = r.now()
	patch, err := jsonParam(merged)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE `+r.table+` SET doc = doc || $2::jsonb WHERE id = $1`,
		id, patch,
	)
	if err != nil {
		return storeError("update "+r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCollection[T]) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return storeError("delete "+r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	f, err := jsonParam(filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM `+r.table+` WHERE doc @> $1::jsonb`, f,
	).Scan(&n); err != nil {
		return 0, storeError("count "+r.table, err)
	}
	return n, nil
}

func (r *PgCollection[T]) createTable(ctx context.Context, fields []string) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + r.table + ` (id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
	}
	for _, f := range fields {
		stmts = append(stmts, fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s ((doc->>'%s'))`,
			r.table, f, r.table, f,
		))
	}
	for _, s := range stmts {
		if _, err := r.pool.Exec(ctx, s); err != nil {
			return storeError("migrate "+r.table, err)
		}
	}
	return nil
}

func (r *PgCollection[T]) dropTable(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS `+r.table); err != nil {
		return storeError("drop "+r.table, err)
	}
	return nil
}

// sortExpr builds the ORDER BY expression for a document field. Only
// lower-case identifiers reach this point; they come from service code,
// never from requests.
func sortExpr(field string) string {
	if strings.HasSuffix(field, "_at") {
		return fmt.Sprintf(`(doc->>'%s')::timestamptz`, field)
	}
	return fmt.Sprintf(`doc->'%s'`, field)
}

func jsonParam[M ~map[string]any](m M) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode json param: %w", err)
	}
	return string(b), nil
}

type pgBackend struct {
	pool         *pgxpool.Pool
	contacts     *PgCollection[model.Contact]
	services     *PgCollection[model.Service]
	testimonials *PgCollection[model.Testimonial]
}

func (b *pgBackend) Ping(ctx context.Context) error {
	if err := b.pool.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (b *pgBackend) Migrate(ctx context.Context) error {
	if err := b.contacts.createTable(ctx, indexedFields[ContactsCollection]); err != nil {
		return err
	}
	if err := b.services.createTable(ctx, indexedFields[ServicesCollection]); err != nil {
		return err
	}
	return b.testimonials.createTable(ctx, indexedFields[TestimonialsCollection])
}

func (b *pgBackend) Drop(ctx context.Context) error {
	if err := b.contacts.dropTable(ctx); err != nil {
		return err
	}
	if err := b.services.dropTable(ctx); err != nil {
		return err
	}
	return b.testimonials.dropTable(ctx)
}

func (b *pgBackend) Close(context.Context) error {
	b.pool.Close()
	return nil
}

// OpenPostgres connects to PostgreSQL and returns a Store over JSONB tables.
func OpenPostgres(ctx context.Context, connString string) (*Store, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, storeError("connect", err)
	}
	b := &pgBackend{
		pool:         pool,
		contacts:     NewPgCollection[model.Contact](pool, ContactsCollection),
		services:     NewPgCollection[model.Service](pool, ServicesCollection),
		testimonials: NewPgCollection[model.Testimonial](pool, TestimonialsCollection),
	}
	return &Store{
		Contacts:     b.contacts,
		Services:     b.services,
		Testimonials: b.testimonials,
		backend:      b,
	}, nil
}
