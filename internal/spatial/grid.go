// Package spatial provides the uniform cell hash used to limit force
// evaluation to nearby particles.
package spatial

import (
	"math"

	"github.com/san-kum/particlelife/internal/life"
)

type cellKey struct {
	x, y int
}

// Grid groups particle indices by cell. Cell size equals the interaction
// radius so a 3x3 block always covers every true neighbor.
//
// A Grid carries no particle data between builds: Build discards every
// entry. Cell slices are recycled to keep the per-step loop allocation free.
type Grid struct {
	cellSize float64
	inv      float64
	cells    map[cellKey][]int
	free     [][]int
}

func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[cellKey][]int),
	}
}

func (g *Grid) CellSize() float64 { return g.cellSize }

// Resize changes the cell size. The next Build uses it.
func (g *Grid) Resize(cellSize float64) {
	g.cellSize = cellSize
	g.inv = 1 / cellSize
}

// Extent returns the number of cells covering length, rounded up.
func (g *Grid) Extent(length float64) int {
	n := int(math.Ceil(length * g.inv))
	if n < 1 {
		n = 1
	}
	return n
}

// Cell returns the unbounded cell coordinates of a position.
func (g *Grid) Cell(x, y float64) (int, int) {
	return int(math.Floor(x * g.inv)), int(math.Floor(y * g.inv))
}

// Build assigns every particle index to its cell. No modulo is applied;
// wrap is a query-time concern.
func (g *Grid) Build(particles []life.Particle) {
	for k, s := range g.cells {
		g.free = append(g.free, s[:0])
		delete(g.cells, k)
	}
	for i := range particles {
		cx, cy := g.Cell(particles[i].X, particles[i].Y)
		k := cellKey{cx, cy}
		s, ok := g.cells[k]
		if !ok && len(g.free) > 0 {
			s = g.free[len(g.free)-1]
			g.free = g.free[:len(g.free)-1]
		}
		g.cells[k] = append(s, i)
	}
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int { return len(g.cells) }

// Candidates appends the indices found in the 3x3 block around (x, y) to
// dst. The result is a superset of the true neighbors and includes the
// querying particle itself.
//
// With wrap, cell coordinates outside [0, extent) fold modulo the extent and
// a cell reached twice contributes once. The superset holds under wrap only
// when each domain side is a whole multiple of the cell size. When an
// extent is below 3 the fold differs from concatenating all nine cells: a
// plain concatenation would list the same neighbor twice and apply its
// force twice, here it acts once.
// Without wrap, cells beyond the domain are empty and contribute nothing.
func (g *Grid) Candidates(dst []int, x, y float64, wrap bool, extentX, extentY int) []int {
	cx, cy := g.Cell(x, y)

	var seen [9]cellKey
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			k := cellKey{cx + dx, cy + dy}
			if wrap {
				k.x = fold(k.x, extentX)
				k.y = fold(k.y, extentY)
				if visited(seen[:n], k) {
					continue
				}
				seen[n] = k
				n++
			}
			dst = append(dst, g.cells[k]...)
		}
	}
	return dst
}

func fold(c, extent int) int {
	if extent < 1 {
		return c
	}
	c %= extent
	if c < 0 {
		c += extent
	}
	return c
}

func visited(seen []cellKey, k cellKey) bool {
	for _, s := range seen {
		if s == k {
			return true
		}
	}
	return false
}
