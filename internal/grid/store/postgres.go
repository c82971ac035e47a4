package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/snapshot"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
)

// PostgresStore is the durable Grid Store backing: one row per cell in
// a `cells` table, partitioned logically by the chunk index loaded at
// startup (spec §6 "chunked records").
type PostgresStore struct {
	pool  *pgxpool.Pool
	index *ChunkIndex
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to grid store: %w", err)
	}
	start := time.Now()
	err = pool.Ping(ctx)
	observability.ObserveCacheOp("grid_ping", err, time.Since(start).Seconds())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging grid store: %w", err)
	}

	idx, err := loadChunkIndex(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("loading chunk index: %w", err)
	}

	return &PostgresStore{pool: pool, index: idx}, nil
}

func loadChunkIndex(ctx context.Context, pool *pgxpool.Pool) (*ChunkIndex, error) {
	rows, err := pool.Query(ctx, `SELECT chunk_index, total_chunks, lat_min, lat_max, lon_min, lon_max FROM grid_chunks ORDER BY chunk_index`)
	if err != nil {
		return nil, fmt.Errorf("query grid_chunks: %w", err)
	}
	defer rows.Close()

	var metas []ChunkMeta
	for rows.Next() {
		var m ChunkMeta
		var b grid.Bounds
		if err := rows.Scan(&m.Index, &m.TotalCount, &b.LatMin, &b.LatMax, &b.LonMin, &b.LonMax); err != nil {
			return nil, fmt.Errorf("scan grid_chunks row: %w", err)
		}
		m.Bounds = b
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grid_chunks: %w", err)
	}
	return NewChunkIndex(metas), nil
}

func (s *PostgresStore) CellsInRect(ctx context.Context, b grid.Bounds) ([]grid.Cell, error) {
	start := time.Now()
	chunks := s.index.MatchingChunks(b)
	if len(chunks) == 0 {
		observability.ObserveCacheOp("grid_cells_in_rect", nil, time.Since(start).Seconds())
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT lat, lon, is_land, obstacle, zone,
		       wind_speed, wind_direction, wind_gusts, wave_height, wave_direction,
		       wave_period, visibility, cloud_cover, precipitation, temperature, weather_ts
		FROM cells
		WHERE chunk_index = ANY($1) AND lat BETWEEN $2 AND $3 AND lon BETWEEN $4 AND $5
	`, chunks, b.LatMin, b.LatMax, b.LonMin, b.LonMax)
	observability.ObserveCacheOp("grid_cells_in_rect", err, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	var out []grid.Cell
	for rows.Next() {
		var c grid.Cell
		var zone string
		var windSpeed, windDir, windGusts, waveH, waveDir, wavePeriod, vis, cloud, precip, temp *float64
		var ts *time.Time
		if err := rows.Scan(&c.Lat, &c.Lon, &c.IsLand, &c.Obstacle, &zone,
			&windSpeed, &windDir, &windGusts, &waveH, &waveDir, &wavePeriod, &vis, &cloud, &precip, &temp, &ts); err != nil {
			return nil, fmt.Errorf("scan cell row: %w", err)
		}
		c.Zone = grid.Zone(zone)
		if windSpeed != nil {
			w := &grid.Weather{
				WindSpeed: deref(windSpeed), WindDirection: deref(windDir), WindGusts: deref(windGusts),
				WaveHeight: deref(waveH), WaveDirection: deref(waveDir), WavePeriod: deref(wavePeriod),
				Visibility: deref(vis), CloudCover: deref(cloud), Precipitation: deref(precip),
				Temperature: deref(temp),
			}
			if ts != nil {
				w.Timestamp = *ts
			}
			c.Weather = w
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	return out, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func (s *PostgresStore) UpsertWeather(ctx context.Context, lat, lon float64, w grid.Weather) error {
	start := time.Now()
	_, err := s.pool.Exec(ctx, `
		UPDATE cells SET
			wind_speed = $3, wind_direction = $4, wind_gusts = $5,
			wave_height = $6, wave_direction = $7, wave_period = $8,
			visibility = $9, cloud_cover = $10, precipitation = $11,
			temperature = $12, weather_ts = $13
		WHERE lat = $1 AND lon = $2
	`, lat, lon, w.WindSpeed, w.WindDirection, w.WindGusts, w.WaveHeight, w.WaveDirection,
		w.WavePeriod, w.Visibility, w.CloudCover, w.Precipitation, w.Temperature, w.Timestamp)
	observability.ObserveCacheOp("grid_upsert_weather", err, time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("upsert weather at (%f,%f): %w", lat, lon, err)
	}
	return nil
}

// ImportChunk writes one snapshot chunk's grid_chunks row and all of
// its cell rows, used by the cold-start import tool (spec §6).
func (s *PostgresStore) ImportChunk(ctx context.Context, c snapshot.Chunk) error {
	b := c.Bounds.ToGridBounds()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO grid_chunks (chunk_index, total_chunks, lat_min, lat_max, lon_min, lon_max)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chunk_index) DO UPDATE SET
			total_chunks = EXCLUDED.total_chunks,
			lat_min = EXCLUDED.lat_min, lat_max = EXCLUDED.lat_max,
			lon_min = EXCLUDED.lon_min, lon_max = EXCLUDED.lon_max
	`, c.ChunkIndex, c.TotalCount, b.LatMin, b.LatMax, b.LonMin, b.LonMax)
	if err != nil {
		return fmt.Errorf("upserting grid_chunks row %d: %w", c.ChunkIndex, err)
	}

	if len(c.Cells) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(c.Cells))
	for _, cell := range c.Cells {
		var windSpeed, windDir, windGusts, waveH, waveDir, wavePeriod, vis, cloud, precip, temp *float64
		var ts *time.Time
		if cell.Weather != nil {
			w := cell.Weather
			windSpeed, windDir, windGusts = &w.WindSpeed, &w.WindDirection, &w.WindGusts
			waveH, waveDir, wavePeriod = &w.WaveHeight, &w.WaveDirection, &w.WavePeriod
			vis, cloud, precip, temp = &w.Visibility, &w.CloudCover, &w.Precipitation, &w.Temperature
			ts = &w.Timestamp
		}
		rows = append(rows, []any{
			c.ChunkIndex, cell.Lat, cell.Lon, cell.IsLand, cell.Obstacle, string(cell.Zone),
			windSpeed, windDir, windGusts, waveH, waveDir, wavePeriod, vis, cloud, precip, temp, ts,
		})
	}

	start := time.Now()
	_, err = s.pool.CopyFrom(ctx,
		pgx.Identifier{"cells"},
		[]string{
			"chunk_index", "lat", "lon", "is_land", "obstacle", "zone",
			"wind_speed", "wind_direction", "wind_gusts", "wave_height", "wave_direction",
			"wave_period", "visibility", "cloud_cover", "precipitation", "temperature", "weather_ts",
		},
		pgx.CopyFromRows(rows),
	)
	observability.ObserveCacheOp("grid_import_chunk", err, time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("copying cells for chunk %d: %w", c.ChunkIndex, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("grid store ping: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
