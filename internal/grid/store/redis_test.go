package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

func newMiniRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return &RedisStore{rdb: rdb, index: NewChunkIndex(nil), chunks: map[int][]grid.Cell{}}
}

func TestRedisStore_LoadChunksThenCellsInRect(t *testing.T) {
	s := newMiniRedisStore(t)
	ctx := context.Background()

	metas := []ChunkMeta{{Index: 0, TotalCount: 1, Bounds: grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}}}
	cellsByChunk := map[int][]grid.Cell{0: {{Lat: 5, Lon: 5}, {Lat: 20, Lon: 20}}}

	if err := s.LoadChunks(ctx, metas, cellsByChunk); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	out, err := s.CellsInRect(ctx, grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(out) != 1 || out[0].Lat != 5 {
		t.Fatalf("expected only the in-bounds cell, got %+v", out)
	}
}

func TestRedisStore_UpsertWeatherPersistsAcrossReload(t *testing.T) {
	s := newMiniRedisStore(t)
	ctx := context.Background()

	metas := []ChunkMeta{{Index: 0, TotalCount: 1, Bounds: grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}}}
	cellsByChunk := map[int][]grid.Cell{0: {{Lat: 5, Lon: 5}}}
	if err := s.LoadChunks(ctx, metas, cellsByChunk); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := s.UpsertWeather(ctx, 5, 5, grid.Weather{WindSpeed: 7}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := s.reload(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	out, _ := s.CellsInRect(ctx, grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10})
	if len(out) != 1 || out[0].Weather == nil || out[0].Weather.WindSpeed != 7 {
		t.Fatalf("expected the upserted weather to persist in redis, got %+v", out)
	}
}

func TestRedisStore_PingAndClose(t *testing.T) {
	s := newMiniRedisStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
}
