package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is a CBOR array: empty for the identity, or [x, y] with each
// coordinate as a big-endian byte string.
func (P Point) MarshalBinary() ([]byte, error) {
	coords := [][]byte{}
	if !P.IsIdentity() {
		coords = append(coords, P.x.Big().Bytes(), P.y.Big().Bytes())
	}
	return cbor.Marshal(coords)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The decoded point is not checked against any curve.
func (P *Point) UnmarshalBinary(data []byte) error {
	var coords [][]byte
	if err := cbor.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("curve.Point.Unmarshal: %w", err)
	}
	switch len(coords) {
	case 0:
		*P = Point{}
	case 2:
		*P = Point{
			x: new(saferith.Nat).SetBytes(coords[0]),
			y: new(saferith.Nat).SetBytes(coords[1]),
		}
	default:
		return fmt.Errorf("curve.Point.Unmarshal: expected 0 or 2 coordinates, got %d", len(coords))
	}
	return nil
}

// UnmarshalPoint decodes a point and checks that its coordinates lie in [0, p).
//
// The point is not checked against the curve equation, since fractional
// points are encoded the same way; call Validate once it is in true form.
func (c *Curve) UnmarshalPoint(data []byte) (Point, error) {
	var P Point
	if err := P.UnmarshalBinary(data); err != nil {
		return Point{}, err
	}
	if P.IsIdentity() {
		return P, nil
	}
	p := c.P()
	for _, coord := range []*big.Int{P.x.Big(), P.y.Big()} {
		if coord.Cmp(p) >= 0 {
			return Point{}, errors.New("curve.Point.Unmarshal: coordinate was not reduced mod p")
		}
	}
	return c.reduce(P), nil
}
