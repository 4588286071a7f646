package matrix

import "math/big"

// Solve solves A·x = b by the determinant-ratio method (Cramer's rule):
// each unknown x_i is det(A_i)/det(A), where A_i is A with column i
// replaced by b. Fails with ErrNotSquare when A is rectangular, with
// ErrDimensionMismatch when b has the wrong length, and with ErrSingular
// when det(A) is zero.
func Solve(a *Matrix, b []*big.Rat) ([]*big.Rat, error) {
	if a.rows != a.cols {
		return nil, ErrNotSquare
	}
	if len(b) != a.rows {
		return nil, ErrDimensionMismatch
	}

	det, err := a.Determinant()
	if err != nil {
		return nil, err
	}
	if det.Sign() == 0 {
		return nil, ErrSingular
	}

	x := make([]*big.Rat, a.cols)
	for i := 0; i < a.cols; i++ {
		ai := a.Clone()
		for r := 0; r < a.rows; r++ {
			ai.Set(r, i, b[r])
		}
		di, err := ai.Determinant()
		if err != nil {
			return nil, err
		}
		x[i] = di.Quo(di, det)
	}
	return x, nil
}
