package balance

import "math/big"

// limitDenominator returns the closest rational to r whose denominator is
// at most maxDen, using continued-fraction convergents. A rational whose
// denominator is already within the bound is returned as is.
func limitDenominator(r *big.Rat, maxDen int64) *big.Rat {
	bound := big.NewInt(maxDen)
	if r.Denom().Cmp(bound) <= 0 {
		return new(big.Rat).Set(r)
	}

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(r.Num())
	d := new(big.Int).Set(r.Denom())

	a, q2 := new(big.Int), new(big.Int)
	for {
		a.Div(n, d) // floor division; d stays positive throughout
		q2.Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(bound) > 0 {
			break
		}
		p2 := new(big.Int).Add(p0, new(big.Int).Mul(a, p1))
		p0, q0 = p1, q1
		p1, q1 = p2, new(big.Int).Set(q2)
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}

	k := new(big.Int).Div(new(big.Int).Sub(bound, q0), q1)
	first := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	second := new(big.Rat).SetFrac(p1, q1)

	// Pick whichever convergent is closer; ties go to the simpler one.
	d1 := new(big.Rat).Sub(first, r)
	d2 := new(big.Rat).Sub(second, r)
	if d2.Abs(d2).Cmp(d1.Abs(d1)) <= 0 {
		return second
	}
	return first
}

// lcm returns the least common multiple of two positive integers.
func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}

// gcd returns the greatest common divisor of two non-negative integers.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
