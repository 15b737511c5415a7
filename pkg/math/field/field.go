// Package field implements arithmetic modulo a fixed prime p.
//
// Every element handed out by a Field is reduced into [0, p). Inputs that are
// not reduced are accepted and reduced first.
package field

import (
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrNoInverse is returned when a modular inverse does not exist, that is when
// the element is 0 mod p, or shares a factor with p.
var ErrNoInverse = errors.New("field: element has no inverse")

var natOne = new(saferith.Nat).SetUint64(1)

// Field represents ℤ/pℤ.
type Field struct {
	p    *saferith.Modulus
	pBig *big.Int
}

// New returns the field modulo p.
//
// p is not tested for primality; that is the caller's job.
func New(p *saferith.Modulus) *Field {
	return &Field{p: p, pBig: p.Big()}
}

// FromBigModulus returns the field modulo p, for p > 0.
func FromBigModulus(p *big.Int) *Field {
	return New(saferith.ModulusFromNat(new(saferith.Nat).SetBig(p, p.BitLen())))
}

// Modulus returns p.
func (f *Field) Modulus() *saferith.Modulus {
	return f.p
}

// Bits returns the bit length of p.
func (f *Field) Bits() int {
	return f.p.BitLen()
}

// Reduce returns x mod p.
func (f *Field) Reduce(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Mod(x, f.p)
}

// FromBig returns x mod p, for any sign of x.
func (f *Field) FromBig(x *big.Int) *saferith.Nat {
	var r big.Int
	// big.Int.Mod is Euclidean, so r ∈ [0, p)
	r.Mod(x, f.pBig)
	return new(saferith.Nat).SetBig(&r, f.p.BitLen())
}

// FromUint64 returns x mod p.
func (f *Field) FromUint64(x uint64) *saferith.Nat {
	return f.Reduce(new(saferith.Nat).SetUint64(x))
}

// Add returns x + y mod p.
func (f *Field) Add(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModAdd(f.Reduce(x), f.Reduce(y), f.p)
}

// Sub returns x - y mod p.
func (f *Field) Sub(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModSub(f.Reduce(x), f.Reduce(y), f.p)
}

// Mul returns x ⋅ y mod p.
func (f *Field) Mul(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModMul(f.Reduce(x), f.Reduce(y), f.p)
}

// Neg returns -x mod p.
func (f *Field) Neg(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModNeg(f.Reduce(x), f.p)
}

// Square returns x² mod p.
func (f *Field) Square(x *saferith.Nat) *saferith.Nat {
	return f.Mul(x, x)
}

// Exp returns baseᵉˣᵖ mod p, with 0⁰ = 1.
func (f *Field) Exp(base, exp *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Exp(f.Reduce(base), exp, f.p)
}

// ExpUint64 is Exp with a small exponent.
func (f *Field) ExpUint64(base *saferith.Nat, exp uint64) *saferith.Nat {
	return f.Exp(base, new(saferith.Nat).SetUint64(exp))
}

// Inverse returns x⁻¹ mod p.
//
// The result is checked against x, so a composite modulus never produces a
// wrong inverse; it produces ErrNoInverse instead.
func (f *Field) Inverse(x *saferith.Nat) (*saferith.Nat, error) {
	xr := f.Reduce(x)
	if f.IsZero(xr) || xr.IsUnit(f.p) != 1 {
		return nil, ErrNoInverse
	}
	inv := new(saferith.Nat).ModInverse(xr, f.p)
	if !f.Equal(f.Mul(inv, xr), natOne) {
		return nil, ErrNoInverse
	}
	return inv, nil
}

// Equal returns true if x ≡ y mod p.
func (f *Field) Equal(x, y *saferith.Nat) bool {
	return f.Reduce(x).Eq(f.Reduce(y)) == 1
}

// IsZero returns true if x ≡ 0 mod p.
func (f *Field) IsZero(x *saferith.Nat) bool {
	return f.Reduce(x).EqZero() == 1
}
