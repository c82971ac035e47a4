package store

import (
	"context"
	"testing"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

func TestMemoryStore_CellsInRectFiltersByBounds(t *testing.T) {
	cells := []grid.Cell{
		{Lat: 0, Lon: 0},
		{Lat: 5, Lon: 5},
		{Lat: 20, Lon: 20},
	}
	s := NewMemoryStore(cells)

	out, err := s.CellsInRect(context.Background(), grid.Bounds{LatMin: -1, LatMax: 10, LonMin: -1, LonMax: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 cells within bounds, got %d", len(out))
	}
}

func TestMemoryStore_UpsertWeatherOverwritesMatchingCell(t *testing.T) {
	cells := []grid.Cell{{Lat: 1, Lon: 2}}
	s := NewMemoryStore(cells)

	w := grid.Weather{WindSpeed: 12}
	if err := s.UpsertWeather(context.Background(), 1, 2, w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, _ := s.CellsInRect(context.Background(), grid.Bounds{LatMin: 0, LatMax: 5, LonMin: 0, LonMax: 5})
	if len(out) != 1 || out[0].Weather == nil || out[0].Weather.WindSpeed != 12 {
		t.Fatalf("expected weather to be written through to the matching cell, got %+v", out)
	}
}

func TestMemoryStore_UpsertWeatherNoMatchIsNoOp(t *testing.T) {
	s := NewMemoryStore([]grid.Cell{{Lat: 1, Lon: 2}})
	if err := s.UpsertWeather(context.Background(), 99, 99, grid.Weather{}); err != nil {
		t.Fatalf("expected a no-op for an unmatched cell, got error: %v", err)
	}
}

func TestMemoryStore_PingAndCloseAlwaysSucceed(t *testing.T) {
	s := NewMemoryStore(nil)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("expected Ping to succeed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
}

func TestChunkIndex_MatchingChunks(t *testing.T) {
	ci := NewChunkIndex([]ChunkMeta{
		{Index: 0, Bounds: grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}},
		{Index: 1, Bounds: grid.Bounds{LatMin: 20, LatMax: 30, LonMin: 20, LonMax: 30}},
	})

	matches := ci.MatchingChunks(grid.Bounds{LatMin: 5, LatMax: 6, LonMin: 5, LonMax: 6})
	if len(matches) != 1 || matches[0] != 0 {
		t.Fatalf("expected only chunk 0 to match, got %v", matches)
	}
}

func TestChunkIndex_NilIsSafe(t *testing.T) {
	var ci *ChunkIndex
	if ci.Len() != 0 {
		t.Fatalf("expected 0 length for a nil index")
	}
	if ci.MatchingChunks(grid.Bounds{}) != nil {
		t.Fatalf("expected nil matches for a nil index")
	}
}
