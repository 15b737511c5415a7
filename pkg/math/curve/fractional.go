package curve

import (
	"fmt"

	"github.com/taurusgroup/fractional-elgamal/pkg/math/arith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/field"
)

// ToFractional returns P in fractional coordinates (x⋅l², y⋅l³).
//
// This is the form in which points cross the transmission boundary; the true
// coordinates cannot be recovered from it without l.
func (c *Curve) ToFractional(P Point) Point {
	if P.IsIdentity() {
		return P
	}
	return Point{
		x: c.f.Mul(P.x, c.lSquare),
		y: c.f.Mul(P.y, c.lCube),
	}
}

// FromFractional inverts ToFractional, returning (X⋅l⁻², Y⋅l⁻³).
//
// It fails with field.ErrNoInverse when l is not invertible mod p.
func (c *Curve) FromFractional(P Point) (Point, error) {
	if P.IsIdentity() {
		return P, nil
	}
	if !arith.IsCoprime(c.l, c.P()) {
		return Point{}, fmt.Errorf("curve: scaling factor l = %v shares a factor with p: %w", c.l, field.ErrNoInverse)
	}
	lInv, err := c.f.Inverse(c.lNat)
	if err != nil {
		return Point{}, fmt.Errorf("curve: scaling factor l = %v: %w", c.l, err)
	}
	return Point{
		x: c.f.Mul(P.x, c.f.ExpUint64(lInv, 2)),
		y: c.f.Mul(P.y, c.f.ExpUint64(lInv, 3)),
	}, nil
}
