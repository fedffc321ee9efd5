// Package cache holds ledger snapshots between requests. Entries expire
// after a freshness window and are dropped on every successful write so the
// next read goes to the store.
package cache

import (
	"context"
	"time"

	"aguacontrol/internal/model"
)

// Snapshot is one full read of the three ledger collections.
type Snapshot struct {
	Catalogo  []model.FilaCatalogo `json:"catalogo"`
	Cargas    []model.Carga        `json:"cargas"`
	Ventas    []model.Venta        `json:"ventas"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// SnapshotCache stores at most one snapshot.
//
// Every Invalidate advances a generation counter. A reader takes the
// generation before going to the store and hands it back to Set, which
// drops the snapshot when a write invalidated the cache in between. A slow
// read can then never put pre-write data back after the write.
type SnapshotCache interface {
	Get(ctx context.Context) (*Snapshot, bool)
	Generation(ctx context.Context) uint64
	// Set stores s only if the generation is still gen. Reports whether it did.
	Set(ctx context.Context, s *Snapshot, gen uint64) bool
	Invalidate(ctx context.Context)
}
