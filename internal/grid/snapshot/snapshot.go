// Package snapshot reads and writes the grid cold-start file format
// (spec §6): a gzip-compressed JSON array of chunked records.
package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

// Chunk is one chunked record as stored in the snapshot file.
type Chunk struct {
	ChunkIndex int         `json:"chunk_index"`
	TotalCount int         `json:"total_chunks"`
	Resolution float64     `json:"resolution"`
	Bounds     ChunkBounds `json:"bounds"`
	Cells      []grid.Cell `json:"cells"`
}

// ChunkBounds mirrors the snapshot's n/s/e/w naming (spec §6), distinct
// from grid.Bounds' LatMin/LatMax/LonMin/LonMax field names.
type ChunkBounds struct {
	N float64 `json:"n"`
	S float64 `json:"s"`
	E float64 `json:"e"`
	W float64 `json:"w"`
}

func (b ChunkBounds) ToGridBounds() grid.Bounds {
	return grid.Bounds{LatMin: b.S, LatMax: b.N, LonMin: b.W, LonMax: b.E}
}

// Read decodes a gzip-compressed JSON array of Chunk from r.
func Read(r io.Reader) ([]Chunk, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip snapshot: %w", err)
	}
	defer gz.Close()

	var chunks []Chunk
	if err := json.NewDecoder(gz).Decode(&chunks); err != nil {
		return nil, fmt.Errorf("decoding snapshot json: %w", err)
	}
	return chunks, nil
}

// Write gzip-compresses chunks as JSON to w.
func Write(w io.Writer, chunks []Chunk) error {
	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(chunks); err != nil {
		_ = gz.Close()
		return fmt.Errorf("encoding snapshot json: %w", err)
	}
	return gz.Close()
}
