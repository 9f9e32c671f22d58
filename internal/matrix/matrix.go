// Package matrix holds the signed interaction strengths between particle
// types.
package matrix

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/san-kum/particlelife/internal/life"
)

// IndexError reports an out-of-range type index.
type IndexError struct {
	Row, Col int
	Size     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: (%d, %d) in %dx%d matrix", life.ErrIndex, e.Row, e.Col, e.Size, e.Size)
}

func (e *IndexError) Unwrap() error {
	return life.ErrIndex
}

// Matrix is a dense square table. Row is the acting particle's type,
// column the type it reacts to; m[i][j] need not equal m[j][i].
type Matrix struct {
	n     int
	cells []float64
}

func New(n int) *Matrix {
	if n < 0 {
		n = 0
	}
	return &Matrix{n: n, cells: make([]float64, n*n)}
}

// Random draws every cell independently from [-1, 1]. A nil rng uses a
// time-seeded source.
func Random(n int, rng *rand.Rand) *Matrix {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := New(n)
	for i := range m.cells {
		m.cells[i] = rng.Float64()*2 - 1
	}
	return m
}

// FromRows copies an externally supplied table, clamping every value.
func FromRows(rows [][]float64) (*Matrix, error) {
	m := New(len(rows))
	for i, row := range rows {
		if len(row) != m.n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", life.ErrDimensionMismatch, i, len(row), m.n)
		}
		for j, v := range row {
			m.cells[i*m.n+j] = clamp(v)
		}
	}
	return m, nil
}

func (m *Matrix) Size() int { return m.n }

// Strength is the unchecked hot-path read.
func (m *Matrix) Strength(i, j int) float64 {
	return m.cells[i*m.n+j]
}

func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.check(i, j); err != nil {
		return 0, err
	}
	return m.cells[i*m.n+j], nil
}

// SetCell stores v clamped to [-1, 1].
func (m *Matrix) SetCell(i, j int, v float64) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.cells[i*m.n+j] = clamp(v)
	return nil
}

func (m *Matrix) Clone() *Matrix {
	c := New(m.n)
	copy(c.cells, m.cells)
	return c
}

// Rows returns a copy as nested slices.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = make([]float64, m.n)
		copy(rows[i], m.cells[i*m.n:(i+1)*m.n])
	}
	return rows
}

func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%+.2f", m.cells[i*m.n+j])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Matrix) check(i, j int) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return &IndexError{Row: i, Col: j, Size: m.n}
	}
	return nil
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	case math.IsNaN(v):
		return 0
	}
	return v
}
