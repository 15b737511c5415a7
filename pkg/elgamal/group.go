package elgamal

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/curve"
)

var (
	// ErrInvalidGroup is returned for unusable public parameters.
	ErrInvalidGroup = errors.New("elgamal: invalid group parameters")
	// ErrInvalidScalar is returned for a scalar outside [1, n-1], or one that
	// sends G to the identity.
	ErrInvalidScalar = errors.New("elgamal: invalid scalar")
	// ErrInvalidPublicKey is returned for a public key equal to the identity.
	ErrInvalidPublicKey = errors.New("elgamal: public key is the identity")
	// ErrInvalidCiphertext is returned for a malformed ciphertext.
	ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")
)

// Group holds the publicly agreed parameters: a curve, a generator G,
// and the order n of G.
//
// A Group is immutable and safe for concurrent use.
type Group struct {
	curve     *curve.Curve
	generator curve.Point
	order     *saferith.Modulus
}

// NewGroup checks and bundles the public parameters.
//
// G must be a point of c other than the identity, and n must satisfy n⋅G = ∞.
// Only the product is checked, so n may be a multiple of the true order. In
// that case scalars with k⋅G = ∞ exist in [1, n-1]; KeyGen and Encrypt reject
// and redraw them.
func NewGroup(c *curve.Curve, G curve.Point, n *saferith.Nat) (*Group, error) {
	if c == nil || n == nil {
		return nil, fmt.Errorf("%w: nil curve or order", ErrInvalidGroup)
	}
	if err := c.Validate(G); err != nil {
		return nil, fmt.Errorf("%w: generator: %w", ErrInvalidGroup, err)
	}
	if G.IsIdentity() {
		return nil, fmt.Errorf("%w: generator is the identity", ErrInvalidGroup)
	}
	if n.Big().BitLen() < 2 {
		return nil, fmt.Errorf("%w: order must be at least 2", ErrInvalidGroup)
	}
	nG, err := c.ScalarMultiply(n, G)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGroup, err)
	}
	if !nG.IsIdentity() {
		return nil, fmt.Errorf("%w: %v⋅G is not the identity", ErrInvalidGroup, n.Big())
	}
	return &Group{
		curve:     c,
		generator: G,
		order:     saferith.ModulusFromNat(n),
	}, nil
}

// GroupFromGenerator computes the order of G with curve.Order, and calls NewGroup.
//
// This inherits the O(n) cost of Order and is only meant for small curves.
func GroupFromGenerator(c *curve.Curve, G curve.Point) (*Group, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil curve", ErrInvalidGroup)
	}
	n, err := c.Order(G)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGroup, err)
	}
	return NewGroup(c, G, n)
}

// Curve returns the curve of the group.
func (g *Group) Curve() *curve.Curve {
	return g.curve
}

// Generator returns G.
func (g *Group) Generator() curve.Point {
	return g.generator
}

// Order returns n.
func (g *Group) Order() *saferith.Modulus {
	return g.order
}

// checkScalar returns ErrInvalidScalar unless k ∈ [1, n-1].
func (g *Group) checkScalar(k *saferith.Nat) error {
	if k == nil || k.EqZero() == 1 {
		return ErrInvalidScalar
	}
	if _, _, lt := k.CmpMod(g.order); lt != 1 {
		return ErrInvalidScalar
	}
	return nil
}

// validatePublic checks that Q is a usable public key.
func (g *Group) validatePublic(Q PublicKey) error {
	if err := g.curve.Validate(Q); err != nil {
		return fmt.Errorf("elgamal: public key: %w", err)
	}
	if Q.IsIdentity() {
		return ErrInvalidPublicKey
	}
	return nil
}
