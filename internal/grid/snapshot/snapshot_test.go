package snapshot

import (
	"bytes"
	"testing"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	chunks := []Chunk{
		{
			ChunkIndex: 0, TotalCount: 2, Resolution: 0.2,
			Bounds: ChunkBounds{N: 10, S: 0, E: 80, W: 70},
			Cells:  []grid.Cell{{Lat: 5, Lon: 75}},
		},
		{
			ChunkIndex: 1, TotalCount: 2, Resolution: 0.2,
			Bounds: ChunkBounds{N: 20, S: 10, E: 80, W: 70},
			Cells:  []grid.Cell{{Lat: 15, Lon: 75, IsLand: true}},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, chunks); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(out) != len(chunks) {
		t.Fatalf("expected %d chunks, got %d", len(chunks), len(out))
	}
	if out[1].Cells[0].IsLand != true {
		t.Fatalf("expected the second chunk's cell to round-trip as land")
	}
}

func TestRead_RejectsNonGzipInput(t *testing.T) {
	_, err := Read(bytes.NewBufferString("not gzip data"))
	if err == nil {
		t.Fatalf("expected an error for non-gzip input")
	}
}

func TestChunkBounds_ToGridBounds(t *testing.T) {
	b := ChunkBounds{N: 10, S: 0, E: 80, W: 70}
	g := b.ToGridBounds()
	if g.LatMin != 0 || g.LatMax != 10 || g.LonMin != 70 || g.LonMax != 80 {
		t.Fatalf("unexpected conversion: %+v", g)
	}
}
