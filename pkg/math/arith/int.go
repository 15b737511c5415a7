package arith

import "math/big"

var one = big.NewInt(1)

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	var gcd big.Int
	return gcd.GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b)).Cmp(one) == 0
}

// Lcm returns the least common multiple of |a| and |b|.
//
// Lcm(0, x) is 0, matching the usual convention.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	var gcd big.Int
	gcd.GCD(nil, nil, x, y)
	// lcm = |a| / gcd ⋅ |b|
	x.Quo(x, &gcd)
	return x.Mul(x, y)
}
