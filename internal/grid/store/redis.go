package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
)

// RedisStore is the process-local/dev backing for the Grid Store: one
// string key per chunk (grid:chunk:<index>), value is the JSON-encoded
// cell slice, plus the JSON chunk index under grid:chunk_index. Grounded
// on the teacher's cache/redisstore.Client pipelined-write pattern.
type RedisStore struct {
	rdb    *redis.Client
	index  *ChunkIndex
	chunks map[int][]grid.Cell // in-memory mirror, refreshed from redis at load
}

func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     64,
		MinIdleConns: 4,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	observability.ObserveCacheOp("grid_ping", err, time.Since(start).Seconds())
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	s := &RedisStore{rdb: rdb, chunks: map[int][]grid.Cell{}}
	if err := s.reload(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return s, nil
}

const chunkIndexKey = "grid:chunk_index"

func chunkKey(i int) string { return fmt.Sprintf("grid:chunk:%d", i) }

func (s *RedisStore) reload(ctx context.Context) error {
	raw, err := s.rdb.Get(ctx, chunkIndexKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			s.index = NewChunkIndex(nil)
			return nil
		}
		return fmt.Errorf("redis GET %q: %w", chunkIndexKey, err)
	}
	var metas []ChunkMeta
	if err := json.Unmarshal(raw, &metas); err != nil {
		return fmt.Errorf("decode chunk index: %w", err)
	}
	s.index = NewChunkIndex(metas)

	for _, m := range metas {
		cellsRaw, err := s.rdb.Get(ctx, chunkKey(m.Index)).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return fmt.Errorf("redis GET %q: %w", chunkKey(m.Index), err)
		}
		var cells []grid.Cell
		if err := json.Unmarshal(cellsRaw, &cells); err != nil {
			return fmt.Errorf("decode chunk %d: %w", m.Index, err)
		}
		s.chunks[m.Index] = cells
	}
	return nil
}

// LoadChunks seeds the store with chunked records (spec §6 grid
// storage format) for cold-start loading. cmd/gridimport does not use
// it; that tool imports into Postgres only.
func (s *RedisStore) LoadChunks(ctx context.Context, metas []ChunkMeta, cellsByChunk map[int][]grid.Cell) error {
	metaRaw, err := json.Marshal(metas)
	if err != nil {
		return fmt.Errorf("encode chunk index: %w", err)
	}
	if err := s.rdb.Set(ctx, chunkIndexKey, metaRaw, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %q: %w", chunkIndexKey, err)
	}

	_, err = s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, m := range metas {
			cells := cellsByChunk[m.Index]
			raw, err := json.Marshal(cells)
			if err != nil {
				return fmt.Errorf("encode chunk %d: %w", m.Index, err)
			}
			if err := p.Set(ctx, chunkKey(m.Index), raw, 0).Err(); err != nil {
				return fmt.Errorf("pipeline SET chunk %d: %w", m.Index, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis pipeline load chunks: %w", err)
	}
	return s.reload(ctx)
}

func (s *RedisStore) CellsInRect(ctx context.Context, b grid.Bounds) ([]grid.Cell, error) {
	start := time.Now()
	idxs := s.index.MatchingChunks(b)
	var out []grid.Cell
	for _, i := range idxs {
		for _, c := range s.chunks[i] {
			if b.Contains(c.Lat, c.Lon) {
				out = append(out, c)
			}
		}
	}
	observability.ObserveCacheOp("grid_cells_in_rect", nil, time.Since(start).Seconds())
	return out, nil
}

func (s *RedisStore) UpsertWeather(ctx context.Context, lat, lon float64, w grid.Weather) error {
	start := time.Now()
	b := grid.Bounds{LatMin: lat, LatMax: lat, LonMin: lon, LonMax: lon}
	for _, i := range s.index.MatchingChunks(b) {
		cells := s.chunks[i]
		for j := range cells {
			if cells[j].Lat == lat && cells[j].Lon == lon {
				wc := w
				cells[j].Weather = &wc
				raw, err := json.Marshal(cells)
				if err != nil {
					observability.ObserveCacheOp("grid_upsert_weather", err, time.Since(start).Seconds())
					return fmt.Errorf("encode chunk %d: %w", i, err)
				}
				err = s.rdb.Set(ctx, chunkKey(i), raw, 0).Err()
				observability.ObserveCacheOp("grid_upsert_weather", err, time.Since(start).Seconds())
				if err != nil {
					return fmt.Errorf("redis SET chunk %d: %w", i, err)
				}
				return nil
			}
		}
	}
	observability.ObserveCacheOp("grid_upsert_weather", nil, time.Since(start).Seconds())
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("grid store ping: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.rdb.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}
