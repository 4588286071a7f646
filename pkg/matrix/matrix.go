// Package matrix provides a dense rectangular matrix over exact rational
// numbers with determinant, cofactor, adjoint, inverse and a Cramer's-rule
// linear solver. It has no notion of chemistry.
//
// Determinants are computed by cofactor expansion, which is exponential in
// the matrix dimension. That is acceptable at the sizes this project
// produces (at most around 8 unknowns); the package itself imposes no size
// limits.
package matrix

import (
	"errors"
	"math/big"
	"strings"
)

var (
	// ErrNotSquare is returned by operations that require a square matrix.
	ErrNotSquare = errors.New("matrix is not square")
	// ErrSingular is returned when a matrix with zero determinant is
	// inverted or used as the coefficient matrix of a linear system.
	ErrSingular = errors.New("matrix is singular")
	// ErrDimensionMismatch is returned when operand shapes do not agree.
	ErrDimensionMismatch = errors.New("matrix dimensions do not match")
)

// Matrix is a dense rows×cols matrix of exact rationals.
type Matrix struct {
	rows, cols int
	data       []*big.Rat
}

// New creates a zero matrix of the given shape.
func New(rows, cols int) *Matrix {
	data := make([]*big.Rat, rows*cols)
	for i := range data {
		data[i] = new(big.Rat)
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// FromInts creates a matrix from integer rows. All rows must be the same
// length.
func FromInts(rows [][]int64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrDimensionMismatch
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, ErrDimensionMismatch
		}
		for c, v := range row {
			m.data[r*cols+c].SetInt64(v)
		}
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i].SetInt64(1)
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the entry at row r, column c.
func (m *Matrix) At(r, c int) *big.Rat {
	return m.data[r*m.cols+c]
}

// Set assigns the entry at row r, column c.
func (m *Matrix) Set(r, c int, v *big.Rat) {
	m.data[r*m.cols+c].Set(v)
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i].Set(v)
	}
	return out
}

// Transpose returns a new transposed matrix.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.data[c*m.rows+r].Set(m.At(r, c))
		}
	}
	return out
}

// Scale returns a new matrix with every entry multiplied by f.
func (m *Matrix) Scale(f *big.Rat) *Matrix {
	out := m.Clone()
	for _, v := range out.data {
		v.Mul(v, f)
	}
	return out
}

// WithoutRowCol returns a copy of the matrix with row r and column c
// removed.
func (m *Matrix) WithoutRowCol(r, c int) *Matrix {
	out := New(m.rows-1, m.cols-1)
	i := 0
	for row := 0; row < m.rows; row++ {
		if row == r {
			continue
		}
		for col := 0; col < m.cols; col++ {
			if col == c {
				continue
			}
			out.data[i].Set(m.At(row, col))
			i++
		}
	}
	return out
}

// Determinant computes the determinant by cofactor expansion along the
// first row. The 1×1 base case returns the single entry. Fails with
// ErrNotSquare for rectangular matrices.
func (m *Matrix) Determinant() (*big.Rat, error) {
	if m.rows != m.cols {
		return nil, ErrNotSquare
	}
	return m.determinant(), nil
}

// determinant assumes the matrix is square.
func (m *Matrix) determinant() *big.Rat {
	if m.rows == 1 {
		return new(big.Rat).Set(m.data[0])
	}
	det := new(big.Rat)
	term := new(big.Rat)
	for c := 0; c < m.cols; c++ {
		if m.At(0, c).Sign() == 0 {
			continue
		}
		term.Mul(m.At(0, c), m.WithoutRowCol(0, c).determinant())
		if c%2 == 0 {
			det.Add(det, term)
		} else {
			det.Sub(det, term)
		}
	}
	return det
}

// Minor returns the determinant of the matrix with row r and column c
// removed.
func (m *Matrix) Minor(r, c int) (*big.Rat, error) {
	return m.WithoutRowCol(r, c).Determinant()
}

// Cofactor returns the signed minor at (r, c).
func (m *Matrix) Cofactor(r, c int) (*big.Rat, error) {
	minor, err := m.Minor(r, c)
	if err != nil {
		return nil, err
	}
	if (r+c)%2 != 0 {
		minor.Neg(minor)
	}
	return minor, nil
}

// CofactorMatrix returns the matrix of cofactors.
func (m *Matrix) CofactorMatrix() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrNotSquare
	}
	out := New(m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			cf, err := m.Cofactor(r, c)
			if err != nil {
				return nil, err
			}
			out.data[r*m.cols+c].Set(cf)
		}
	}
	return out, nil
}

// Adjoint returns the transpose of the cofactor matrix.
func (m *Matrix) Adjoint() (*Matrix, error) {
	cof, err := m.CofactorMatrix()
	if err != nil {
		return nil, err
	}
	return cof.Transpose(), nil
}

// Inverse returns the adjoint divided by the determinant. Fails with
// ErrSingular when the determinant is zero.
func (m *Matrix) Inverse() (*Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return nil, err
	}
	if det.Sign() == 0 {
		return nil, ErrSingular
	}
	adj, err := m.Adjoint()
	if err != nil {
		return nil, err
	}
	return adj.Scale(det.Inv(det)), nil
}

// String renders the matrix one row per line, for diagnostics.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.At(r, c).RatString())
		}
	}
	return sb.String()
}
