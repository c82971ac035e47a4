// Package fineplanner implements the weighted A* search over a loaded
// corridor (spec §4.F).
package fineplanner

import (
	"container/heap"
	"time"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/apperr"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/cost"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

// step order fixes the 8-direction neighbour iteration order (design
// note #3): the spec fixes this order but not any stronger tie-break
// than insertion order.
var steps = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func isDiagonal(step [2]int) bool { return step[0] != 0 && step[1] != 0 }

// Limits bounds the search (spec §4.F).
type Limits struct {
	MaxNodes int
	MaxTime  time.Duration
}

func DefaultLimits() Limits {
	return Limits{MaxNodes: 100_000, MaxTime: 3 * time.Minute}
}

// Params bundles one segment's planning inputs.
type Params struct {
	Start, Goal grid.Cell
	Mode        mode.Mode
	Index       *coastal.Index
	Resolution  float64
	LengthFactorKm float64 // total corridor span, used for Heuristic's length factor
	Limits      Limits
}

// Result is one fine-planner segment's output.
type Result struct {
	Path          []grid.Cell
	DistanceKm    float64
	NodesExpanded int
}

// node is one A* search state; heapIndex is maintained by container/heap.
type node struct {
	cell      grid.Cell
	g, f      float64
	seq       int // insertion order, the tie-break
	heapIndex int
	came      *node
}

type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].heapIndex = i
	pq[j].heapIndex = j
}
func (pq *priorityQueue) Push(x any) {
	n := x.(*node)
	n.heapIndex = len(*pq)
	*pq = append(*pq, n)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Plan runs weighted A* from p.Start to p.Goal, both already snapped to
// water cells by the caller (spec §4.F snap-to-nearest-water is the
// orchestrator's responsibility, see routing/orchestrator).
func Plan(p Params) (Result, error) {
	weights := p.Mode.Weights()
	lengthFactor := mode.HeuristicFactorForDistance(p.LengthFactorKm)

	goalPt := geo.Point{Lat: p.Goal.Lat, Lon: p.Goal.Lon}

	startNode := &node{cell: p.Start, g: 0}
	startNode.f = cost.Heuristic(geo.Point{Lat: p.Start.Lat, Lon: p.Start.Lon}, goalPt, weights, lengthFactor)

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, startNode)

	best := map[grid.CellKey]*node{p.Start.Key(): startNode}
	closed := map[grid.CellKey]bool{}

	limits := p.Limits
	if limits.MaxNodes <= 0 {
		limits = DefaultLimits()
	}
	deadline := time.Now().Add(limits.MaxTime)

	seq := 0
	expanded := 0

	for open.Len() > 0 {
		expanded++
		if expanded > limits.MaxNodes {
			return Result{}, apperr.New(apperr.NoPath, "exceeded max A* node budget")
		}
		if expanded%10_000 == 0 && time.Now().After(deadline) {
			return Result{}, apperr.New(apperr.NoPath, "exceeded wall-clock budget")
		}

		cur := heap.Pop(open).(*node)
		curKey := cur.cell.Key()
		if closed[curKey] {
			continue
		}
		closed[curKey] = true

		if curKey == p.Goal.Key() {
			return buildResult(cur, expanded), nil
		}

		for _, step := range steps {
			nLat := cur.cell.Lat + float64(step[0])*p.Resolution
			nLon := cur.cell.Lon + float64(step[1])*p.Resolution
			nCell, ok := p.Index.Get(nLat, nLon)
			if !ok || !nCell.Navigable() {
				continue
			}
			if p.Index.NarrowPassage(nCell, 3) {
				continue
			}
			if isDiagonal(step) {
				orth1, ok1 := p.Index.Get(cur.cell.Lat, nLon)
				orth2, ok2 := p.Index.Get(nLat, cur.cell.Lon)
				if !ok1 || !orth1.Navigable() || !ok2 || !orth2.Navigable() {
					continue
				}
				if p.Index.SegmentCrossesLand(cur.cell.Lat, cur.cell.Lon, nCell.Lat, nCell.Lon) {
					continue
				}
			}

			nKey := nCell.Key()
			if closed[nKey] {
				continue
			}

			distKm := geo.Haversine(cur.cell.Lat, cur.cell.Lon, nCell.Lat, nCell.Lon)
			var turnKm float64
			if cur.came != nil {
				turnKm = geo.TurnPenalty(true,
					geo.Point{Lat: cur.came.cell.Lat, Lon: cur.came.cell.Lon},
					geo.Point{Lat: cur.cell.Lat, Lon: cur.cell.Lon},
					geo.Point{Lat: nCell.Lat, Lon: nCell.Lon})
			}

			// No caller records port proximity on cells, so the near-port
			// halving of the coastal penalty never applies here.
			nearPort := false
			edgeCost := cost.EdgeCost(cost.EdgeParams{
				DistanceKm:      distKm,
				SafetyV:         nCell.SafetyScore,
				FuelEfficiencyV: nCell.FuelEfficiencyScore,
				CoastalPenaltyV: cost.CoastalPenalty(nCell.DistanceToLand, nearPort, weights),
				TurnPenaltyKm:   turnKm,
				OpenWaterBonusV: cost.OpenWaterBonus(!nCell.NearCoast, weights),
			}, weights)

			tentativeG := cur.g + edgeCost
			if existing, ok := best[nKey]; ok && existing.g <= tentativeG {
				continue
			}

			seq++
			nn := &node{
				cell: nCell,
				g:    tentativeG,
				f:    tentativeG + cost.Heuristic(geo.Point{Lat: nCell.Lat, Lon: nCell.Lon}, goalPt, weights, lengthFactor),
				seq:  seq,
				came: cur,
			}
			best[nKey] = nn
			heap.Push(open, nn)
		}
	}

	return Result{}, apperr.New(apperr.NoPath, "search exhausted without reaching goal (disconnected basin or blocked by land)")
}

func buildResult(goal *node, expanded int) Result {
	var cells []grid.Cell
	dist := 0.0
	for n := goal; n != nil; n = n.came {
		cells = append(cells, n.cell)
		if n.came != nil {
			dist += geo.Haversine(n.cell.Lat, n.cell.Lon, n.came.cell.Lat, n.came.cell.Lon)
		}
	}
	// reverse into start->goal order
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Result{Path: cells, DistanceKm: dist, NodesExpanded: expanded}
}

// Smooth applies Douglas-Peucker simplification to remove dense
// coastal waypoints (spec §4.F).
func Smooth(cells []grid.Cell, epsilon float64) []grid.Cell {
	pts := make([]geo.Point, len(cells))
	byPt := make(map[geo.Point]grid.Cell, len(cells))
	for i, c := range cells {
		p := geo.Point{Lat: c.Lat, Lon: c.Lon}
		pts[i] = p
		byPt[p] = c
	}
	simplified := geo.DouglasPeucker(pts, epsilon)
	out := make([]grid.Cell, len(simplified))
	for i, p := range simplified {
		out[i] = byPt[p]
	}
	return out
}
