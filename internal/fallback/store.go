// Package fallback holds the offline dataset of batch records used when the
// batch API cannot be reached. The dataset is embedded at build time, parsed
// once, and never mutated afterwards, so a single Store is safe to share
// between any number of readers without locking.
package fallback

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/batchview/internal/batch"
)

//go:embed dataset.toml
var embedded []byte

// Store is an immutable id -> record mapping.
type Store struct {
	records map[string]batch.Record
	ids     []string
}

var loadDefault = sync.OnceValues(func() (*Store, error) {
	return Load(embedded)
})

// Default returns the embedded dataset.
func Default() (*Store, error) {
	return loadDefault()
}

// Load parses a TOML document made of [[batch]] tables.
func Load(data []byte) (*Store, error) {
	var doc struct {
		Batches []batch.Record `toml:"batch"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback dataset: %w", err)
	}

	s := &Store{records: make(map[string]batch.Record, len(doc.Batches))}
	for i, rec := range doc.Batches {
		rec.ID = strings.TrimSpace(rec.ID)
		if err := batch.Validate(rec); err != nil {
			return nil, fmt.Errorf("fallback entry %d: %w", i, err)
		}
		if _, dup := s.records[rec.ID]; dup {
			return nil, fmt.Errorf("fallback entry %d: duplicate id %q", i, rec.ID)
		}
		s.records[rec.ID] = rec
		s.ids = append(s.ids, rec.ID)
	}
	slices.Sort(s.ids)
	return s, nil
}

// Lookup returns the record for id. The second result is false when absent.
func (s *Store) Lookup(id string) (batch.Record, bool) {
	if s == nil {
		return batch.Record{}, false
	}
	rec, ok := s.records[id]
	return rec, ok
}

// IDs returns the sorted identifiers in the dataset.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ids)
}

// Len reports the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// FixedClient serves records straight from a Store. It lets the sync
// controller run against the offline dataset alone.
type FixedClient struct {
	store *Store
}

var _ batch.Fetcher = (*FixedClient)(nil)

// NewFixedClient wraps store as a batch.Fetcher.
func NewFixedClient(store *Store) *FixedClient {
	return &FixedClient{store: store}
}

// FetchRecord returns the stored record or a 404-style FetchError.
func (c *FixedClient) FetchRecord(ctx context.Context, id string) (batch.Record, error) {
	if err := ctx.Err(); err != nil {
		return batch.Record{}, &batch.FetchError{Kind: batch.KindTransport, ID: id, Err: err}
	}
	rec, ok := c.store.Lookup(id)
	if !ok {
		return batch.Record{}, &batch.FetchError{Kind: batch.KindStatus, ID: id, Status: 404}
	}
	return rec, nil
}
