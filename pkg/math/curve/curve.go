// Package curve implements the group of points of a short Weierstrass curve
//
//	y² = x³ + A⋅x + B (mod p)
//
// whose coefficients are specified as rationals a = aNum/aDen and b = bNum/bDen.
// With l = lcm(aDen, bDen), the integer coefficients are
//
//	A = a⋅l⁴ (mod p),  B = b⋅l⁶ (mod p),
//
// which are the weights keeping the equation homogeneous under x → x⋅l², y → y⋅l³.
// The same scaling is used by the fractional codec (see ToFractional).
package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/arith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/field"
)

var (
	// ErrInvalidModulus is returned when the modulus is not greater than 3.
	ErrInvalidModulus = errors.New("curve: modulus must be greater than 3")
	// ErrZeroDenominator is returned when a coefficient has a zero denominator.
	ErrZeroDenominator = errors.New("curve: coefficient has a zero denominator")
	// ErrNotOnCurve is returned when a point does not satisfy the curve equation.
	ErrNotOnCurve = errors.New("curve: point is not on the curve")
	// ErrOrderBound is returned when the order search runs past the Hasse bound.
	ErrOrderBound = errors.New("curve: order search exceeded the Hasse bound")
)

var bigThree = big.NewInt(3)

// Rational is a coefficient given as Num / Den.
type Rational struct {
	Num, Den *big.Int
}

// NewRational returns num / den.
func NewRational(num, den int64) Rational {
	return Rational{Num: big.NewInt(num), Den: big.NewInt(den)}
}

// String implements fmt.Stringer.
func (r Rational) String() string {
	return fmt.Sprintf("%v/%v", r.Num, r.Den)
}

// Curve is an immutable short Weierstrass curve over F_p.
//
// A Curve is safe for concurrent use.
type Curve struct {
	f *field.Field
	// l = lcm(aDen, bDen), as an integer
	l *big.Int
	// lNat = l (mod p)
	lNat *saferith.Nat
	// lSquare = l² (mod p), lCube = l³ (mod p)
	lSquare, lCube *saferith.Nat
	a, b           *saferith.Nat
}

// New creates the curve y² = x³ + A⋅x + B (mod p) from rational coefficients a and b.
//
// p is only checked to be greater than 3, it is the caller's responsibility
// to supply a prime. A denominator with no inverse mod p makes New fail with
// field.ErrNoInverse.
func New(p *big.Int, a, b Rational) (*Curve, error) {
	if p == nil || p.Cmp(bigThree) <= 0 {
		return nil, ErrInvalidModulus
	}
	if a.Num == nil || a.Den == nil || b.Num == nil || b.Den == nil {
		return nil, errors.New("curve: nil coefficient")
	}
	if a.Den.Sign() == 0 || b.Den.Sign() == 0 {
		return nil, ErrZeroDenominator
	}

	f := field.FromBigModulus(p)
	l := arith.Lcm(a.Den, b.Den)
	lNat := f.FromBig(l)

	A, err := scaledCoefficient(f, a, lNat, 4)
	if err != nil {
		return nil, fmt.Errorf("curve: coefficient a = %v: %w", a, err)
	}
	B, err := scaledCoefficient(f, b, lNat, 6)
	if err != nil {
		return nil, fmt.Errorf("curve: coefficient b = %v: %w", b, err)
	}

	return &Curve{
		f:       f,
		l:       l,
		lNat:    lNat,
		lSquare: f.ExpUint64(lNat, 2),
		lCube:   f.ExpUint64(lNat, 3),
		a:       A,
		b:       B,
	}, nil
}

// FromInt64 is New for the five integers (p, aNum, aDen, bNum, bDen).
func FromInt64(p, aNum, aDen, bNum, bDen int64) (*Curve, error) {
	return New(big.NewInt(p), NewRational(aNum, aDen), NewRational(bNum, bDen))
}

// scaledCoefficient returns num ⋅ den⁻¹ ⋅ lᵉ (mod p).
func scaledCoefficient(f *field.Field, r Rational, l *saferith.Nat, e uint64) (*saferith.Nat, error) {
	denInv, err := f.Inverse(f.FromBig(r.Den))
	if err != nil {
		return nil, err
	}
	return f.Mul(f.Mul(f.FromBig(r.Num), denInv), f.ExpUint64(l, e)), nil
}

// Field returns the base field F_p.
func (c *Curve) Field() *field.Field {
	return c.f
}

// P returns the modulus p.
func (c *Curve) P() *big.Int {
	return c.f.Modulus().Big()
}

// A returns the reduced coefficient A.
func (c *Curve) A() *saferith.Nat {
	return new(saferith.Nat).SetNat(c.a)
}

// B returns the reduced coefficient B.
func (c *Curve) B() *saferith.Nat {
	return new(saferith.Nat).SetNat(c.b)
}

// L returns the scaling factor l = lcm(aDen, bDen).
func (c *Curve) L() *big.Int {
	return new(big.Int).Set(c.l)
}

// String implements fmt.Stringer.
func (c *Curve) String() string {
	return fmt.Sprintf("y² = x³ + %v⋅x + %v mod %v", c.a.Big(), c.b.Big(), c.P())
}

// IsOnCurve returns true if P is the identity, or if y² - x³ - A⋅x - B ≡ 0 (mod p).
func (c *Curve) IsOnCurve(P Point) bool {
	if P.IsIdentity() {
		return true
	}
	f := c.f
	// rhs = x³ + A⋅x + B
	rhs := f.Add(f.Mul(f.Add(f.Square(P.x), c.a), P.x), c.b)
	return f.Equal(f.Square(P.y), rhs)
}

// Validate returns ErrNotOnCurve if P is not on c.
func (c *Curve) Validate(P Point) error {
	if !c.IsOnCurve(P) {
		return fmt.Errorf("%w: %v", ErrNotOnCurve, P)
	}
	return nil
}

// PointFromBig reduces (x, y) mod p and returns it as a point of c.
func (c *Curve) PointFromBig(x, y *big.Int) (Point, error) {
	P := Point{x: c.f.FromBig(x), y: c.f.FromBig(y)}
	if err := c.Validate(P); err != nil {
		return Point{}, err
	}
	return P, nil
}

// reduce returns P with coordinates in [0, p).
func (c *Curve) reduce(P Point) Point {
	if P.IsIdentity() {
		return P
	}
	return Point{x: c.f.Reduce(P.x), y: c.f.Reduce(P.y)}
}
