// Package store implements the Grid Store contract (spec §4.A): range
// queries over a chunked collection of cells, with an idempotent
// weather write-through path.
package store

import (
	"context"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

// Store is the Grid Store contract. Implementations must answer
// CellsInRect in O(k) plus O(chunks), per spec §4.A; no "by id" lookup
// is required of the store itself.
type Store interface {
	CellsInRect(ctx context.Context, b grid.Bounds) ([]grid.Cell, error)
	// UpsertWeather is the weather write-through path (spec §4.I):
	// an idempotent overwrite of a single cell's weather sub-record.
	UpsertWeather(ctx context.Context, lat, lon float64, w grid.Weather) error
	Ping(ctx context.Context) error
	Close() error
}

// ChunkMeta describes one chunk's bounding box, used to restrict which
// chunks a range query has to touch (spec §4.A's O(chunks) scan term).
type ChunkMeta struct {
	Index      int
	TotalCount int
	Bounds     grid.Bounds
}

// ChunkIndex is an in-memory index of chunk bounding boxes, built once
// at load time and held read-only by the chunked stores; MemoryStore
// has none and scans its cells directly.
type ChunkIndex struct {
	chunks []ChunkMeta
}

func NewChunkIndex(chunks []ChunkMeta) *ChunkIndex {
	return &ChunkIndex{chunks: chunks}
}

// MatchingChunks returns the indices of chunks whose bounds intersect b.
func (ci *ChunkIndex) MatchingChunks(b grid.Bounds) []int {
	if ci == nil {
		return nil
	}
	out := make([]int, 0, len(ci.chunks))
	for _, c := range ci.chunks {
		if c.Bounds.Intersects(b) {
			out = append(out, c.Index)
		}
	}
	return out
}

func (ci *ChunkIndex) Len() int {
	if ci == nil {
		return 0
	}
	return len(ci.chunks)
}
