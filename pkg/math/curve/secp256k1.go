package curve

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 returns secp256k1 as the rational curve y² = x³ + 0/1⋅x + 7/1, so l = 1
// and fractional coordinates coincide with true ones.
//
// It also returns the standard generator and its order, which is far too
// large for Order and is taken from the curve parameters instead.
func Secp256k1() (*Curve, Point, *saferith.Nat) {
	params := secp256k1.S256().Params()
	one := big.NewInt(1)
	c, err := New(params.P, Rational{Num: new(big.Int), Den: one}, Rational{Num: params.B, Den: one})
	if err != nil {
		panic(fmt.Sprintf("curve: secp256k1 parameters: %v", err))
	}
	G := Point{x: c.f.FromBig(params.Gx), y: c.f.FromBig(params.Gy)}
	n := new(saferith.Nat).SetBig(params.N, params.N.BitLen())
	return c, G, n
}
