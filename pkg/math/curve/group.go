package curve

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/field"
)

var (
	natTwo   = new(saferith.Nat).SetUint64(2)
	natThree = new(saferith.Nat).SetUint64(3)
)

// Negate returns -P.
func (c *Curve) Negate(P Point) Point {
	if P.IsIdentity() {
		return P
	}
	return Point{x: c.f.Reduce(P.x), y: c.f.Neg(P.y)}
}

// Add returns P + Q.
//
// Neither point is checked to be on the curve. Two distinct points sharing an
// x coordinate without being opposite cannot both lie on c; for such inputs
// Add returns field.ErrNoInverse, as would any other failed inversion.
func (c *Curve) Add(P, Q Point) (Point, error) {
	if P.IsIdentity() {
		return c.reduce(Q), nil
	}
	if Q.IsIdentity() {
		return c.reduce(P), nil
	}
	f := c.f
	P, Q = c.reduce(P), c.reduce(Q)
	x1, y1, x2, y2 := P.x, P.y, Q.x, Q.y

	// P + (-P) = ∞
	if f.Equal(x1, x2) && f.IsZero(f.Add(y1, y2)) {
		return Point{}, nil
	}

	var m *saferith.Nat
	if P.Equal(Q) {
		// m = (3⋅x₁² + A) / (2⋅y₁)
		den, err := f.Inverse(f.Mul(natTwo, y1))
		if err != nil {
			return Point{}, fmt.Errorf("curve: tangent at %v: %w", P, err)
		}
		m = f.Mul(f.Add(f.Mul(natThree, f.Square(x1)), c.a), den)
	} else {
		if f.Equal(x1, x2) {
			return Point{}, fmt.Errorf("curve: vertical chord through %v and %v: %w", P, Q, field.ErrNoInverse)
		}
		// m = (y₂ - y₁) / (x₂ - x₁)
		den, err := f.Inverse(f.Sub(x2, x1))
		if err != nil {
			return Point{}, fmt.Errorf("curve: chord through %v and %v: %w", P, Q, err)
		}
		m = f.Mul(f.Sub(y2, y1), den)
	}

	// x₃ = m² - x₁ - x₂
	x3 := f.Sub(f.Sub(f.Square(m), x1), x2)
	// y₃ = m⋅(x₁ - x₃) - y₁
	y3 := f.Sub(f.Mul(m, f.Sub(x1, x3)), y1)
	return Point{x: x3, y: y3}, nil
}

// Double returns P + P.
func (c *Curve) Double(P Point) (Point, error) {
	return c.Add(P, P)
}

// Sub returns P - Q.
func (c *Curve) Sub(P, Q Point) (Point, error) {
	return c.Add(P, c.Negate(Q))
}

// ScalarMultiply returns k⋅P, using double-and-add from the lowest bit of k.
//
// The running time depends on k; this is not constant time.
func (c *Curve) ScalarMultiply(k *saferith.Nat, P Point) (Point, error) {
	kBig := k.Big()
	bits := kBig.BitLen()

	result := Point{}
	addend := c.reduce(P)
	for i := 0; i < bits; i++ {
		var err error
		if kBig.Bit(i) == 1 {
			if result, err = c.Add(addend, result); err != nil {
				return Point{}, err
			}
		}
		// the doubling after the top bit would be discarded
		if i+1 < bits {
			if addend, err = c.Double(addend); err != nil {
				return Point{}, err
			}
		}
	}
	return result, nil
}

// Order returns the smallest n > 0 such that n⋅G = ∞.
//
// The order is found by adding G to itself until the identity is reached,
// which takes O(n) additions. This is only usable on small curves; large
// curves must come with a known order (see Secp256k1).
//
// G must be on the curve, and the search gives up with ErrOrderBound after
// p + 1 + 2⌈√p⌉ steps, which no point of a curve over a prime field exceeds.
func (c *Curve) Order(G Point) (*saferith.Nat, error) {
	if err := c.Validate(G); err != nil {
		return nil, err
	}
	bound := c.hasseBound()

	n := big.NewInt(1)
	Q := c.reduce(G)
	for !Q.IsIdentity() {
		if n.Cmp(bound) > 0 {
			return nil, ErrOrderBound
		}
		var err error
		if Q, err = c.Add(Q, G); err != nil {
			return nil, fmt.Errorf("curve: order of %v: %w", G, err)
		}
		n.Add(n, bigOne)
	}
	return new(saferith.Nat).SetBig(n, n.BitLen()), nil
}

var bigOne = big.NewInt(1)

// hasseBound returns p + 1 + 2⌈√p⌉.
func (c *Curve) hasseBound() *big.Int {
	p := c.P()
	s := new(big.Int).Sqrt(p)
	if new(big.Int).Mul(s, s).Cmp(p) != 0 {
		s.Add(s, bigOne)
	}
	bound := new(big.Int).Add(p, bigOne)
	return bound.Add(bound, s.Lsh(s, 1))
}
