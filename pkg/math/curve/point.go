package curve

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Point is either the point at infinity or an affine pair (x, y).
//
// The zero value is the point at infinity. A Point does not know which curve
// it belongs to: the Curve passed to each operation must be the one the point
// was created on.
type Point struct {
	// x, y are nil for the identity
	x, y *saferith.Nat
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y).
//
// The coordinates are copied, and are not checked against any curve;
// use Curve.Validate or Curve.PointFromBig for that.
func NewPoint(x, y *saferith.Nat) Point {
	return Point{
		x: new(saferith.Nat).SetNat(x),
		y: new(saferith.Nat).SetNat(y),
	}
}

// PointFromUint64 returns the affine point (x, y).
func PointFromUint64(x, y uint64) Point {
	return Point{
		x: new(saferith.Nat).SetUint64(x),
		y: new(saferith.Nat).SetUint64(y),
	}
}

// IsIdentity returns true if P is the point at infinity.
func (P Point) IsIdentity() bool {
	return P.x == nil || P.y == nil
}

// X returns a copy of the x coordinate, or nil for the identity.
func (P Point) X() *saferith.Nat {
	if P.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(P.x)
}

// Y returns a copy of the y coordinate, or nil for the identity.
func (P Point) Y() *saferith.Nat {
	if P.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(P.y)
}

// Coordinates returns (x, y) as integers, and false for the identity.
func (P Point) Coordinates() (x, y *big.Int, ok bool) {
	if P.IsIdentity() {
		return nil, nil, false
	}
	return P.x.Big(), P.y.Big(), true
}

// Equal returns true if P and Q are both the identity, or have the same coordinates.
func (P Point) Equal(Q Point) bool {
	if P.IsIdentity() || Q.IsIdentity() {
		return P.IsIdentity() && Q.IsIdentity()
	}
	return P.x.Big().Cmp(Q.x.Big()) == 0 && P.y.Big().Cmp(Q.y.Big()) == 0
}

// String implements fmt.Stringer.
func (P Point) String() string {
	if P.IsIdentity() {
		return "Point{Identity}"
	}
	return fmt.Sprintf("(%v, %v)", P.x.Big(), P.y.Big())
}

// WriteTo implements io.WriterTo, writing the binary encoding of P.
func (P Point) WriteTo(w io.Writer) (int64, error) {
	data, err := P.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (Point) Domain() string {
	return "Weierstrass Point"
}
