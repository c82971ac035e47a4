package store

import (
	"context"
	"sync"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

// MemoryStore is an in-process Store used by tests and as the fallback
// store of cmd/routeserver and cmd/gridwarm; never touches the
// network.
type MemoryStore struct {
	mu    sync.RWMutex
	cells []grid.Cell
}

func NewMemoryStore(cells []grid.Cell) *MemoryStore {
	return &MemoryStore{cells: cells}
}

func (s *MemoryStore) CellsInRect(_ context.Context, b grid.Bounds) ([]grid.Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []grid.Cell
	for _, c := range s.cells {
		if b.Contains(c.Lat, c.Lon) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpsertWeather(_ context.Context, lat, lon float64, w grid.Weather) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cells {
		if s.cells[i].Lat == lat && s.cells[i].Lon == lon {
			wc := w
			s.cells[i].Weather = &wc
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }
func (s *MemoryStore) Close() error                 { return nil }
