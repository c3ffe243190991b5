package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/stinex/backend/internal/model"
)

// MemoryCollection is an in-process Collection used by tests and by
// STORE_DRIVER=memory. Documents are kept as JSON-normalized copies so
// callers never share slices with the stored state.
type MemoryCollection[T Document] struct {
	mu   sync.RWMutex
	docs map[string]memoryEntry
	seq  int64
	now  func() time.Time
}

type memoryEntry struct {
	seq int64
	doc map[string]any
}

// NewMemoryCollection creates an empty MemoryCollection.
func NewMemoryCollection[T Document]() *MemoryCollection[T] {
	return &MemoryCollection[T]{
		docs: make(map[string]memoryEntry),
		now:  storeNow,
	}
}

var _ Collection[model.Contact] = (*MemoryCollection[model.Contact])(nil)

// FindMany returns matching documents, sorted and capped at MaxResults.
func (c *MemoryCollection[T]) FindMany(_ context.Context, q Query) ([]T, error) {
	filter, err := normalize(q.Filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	var matched []memoryEntry
	for _, e := range c.docs {
		if matches(e.doc, filter) {
			matched = append(matched, e)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if q.Sort.Field != "" {
			cmp := compareValues(matched[i].doc[q.Sort.Field], matched[j].doc[q.Sort.Field])
			if q.Sort.Desc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return matched[i].seq < matched[j].seq
	})

	if len(matched) > q.limit() {
		matched = matched[:q.limit()]
	}
	out := make([]T, 0, len(matched))
	for _, e := range matched {
		doc, err := fromMap[T](e.doc)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// FindOne returns the document with the given id.
func (c *MemoryCollection[T]) FindOne(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	e, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return fromMap[T](e.doc)
}

// Insert stores doc. Ids must be unique.
func (c *MemoryCollection[T]) Insert(_ context.Context, doc T) error {
	m, err := toMap(doc)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[doc.DocumentID()]; exists {
		return fmt.Errorf("memory: duplicate id %q", doc.DocumentID())
	}
	c.seq++
	c.docs[doc.DocumentID()] = memoryEntry{seq: c.seq, doc: m}
	return nil
}

// Update merges fields into the stored document and stamps updated_at.
func (c *MemoryCollection[T]) Update(_ context.Context, id string, fields Fields) error {
	patch, err := normalize(fields)
	if err != nil {
		return err
	}
	stamp, err := normalize(map[string]any{"updated_at": c.now()})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	merged := make(map[string]any, len(e.doc))
	for k, v := range e.doc {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["updated_at"] = stamp["updated_at"]
	c.docs[id] = memoryEntry{seq: e.seq, doc: merged}
	return nil
}

// Delete removes the document with the given id.
func (c *MemoryCollection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

// Count returns the number of documents matching filter.
func (c *MemoryCollection[T]) Count(_ context.Context, filter Filter) (int64, error) {
	f, err := normalize(filter)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, e := range c.docs {
		if matches(e.doc, f) {
			n++
		}
	}
	return n, nil
}

// reset drops every document.
func (c *MemoryCollection[T]) reset() {
	c.mu.Lock()
	c.docs = make(map[string]memoryEntry)
	c.mu.Unlock()
}

func matches(doc, filter map[string]any) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

// compareValues orders JSON-decoded scalars. Strings that parse as
// RFC 3339 timestamps compare chronologically.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		at, aerr := time.Parse(time.RFC3339Nano, av)
		bt, berr := time.Parse(time.RFC3339Nano, bv)
		if aerr == nil && berr == nil {
			return at.Compare(bt)
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	}
	return 0
}

func normalize[M ~map[string]any](m M) (map[string]any, error) {
	if len(m) == 0 {
		return map[string]any{}, nil
	}
	return toMap(m)
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memory: encode: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("memory: decode: %w", err)
	}
	return m, nil
}

func fromMap[T any](m map[string]any) (T, error) {
	var out T
	b, err := json.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("memory: encode: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("memory: decode: %w", err)
	}
	return out, nil
}
