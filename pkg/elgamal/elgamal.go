// Package elgamal implements two-party ElGamal encryption of curve points.
//
// A receiver publishes Q = d⋅G. A sender encrypts a point M as
//
//	C1 = r⋅G,  C2 = M + r⋅Q
//
// for a fresh nonce r, and transmits both points in fractional form.
// The receiver recovers M = C2 - d⋅C1, since d⋅r⋅G = r⋅d⋅G.
//
// Mapping arbitrary payloads onto curve points is left to the caller.
package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/curve"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/sample"
)

type (
	PublicKey = curve.Point
	Nonce     = *saferith.Nat
)

// KeyPair is owned by the receiving party.
//
// The private scalar is never exposed; decryption goes through the KeyPair.
type KeyPair struct {
	secret *saferith.Nat
	// Public = secret⋅G
	Public PublicKey
}

// maxAttempts bounds the number of scalars drawn by KeyGen and Encrypt.
const maxAttempts = 255

// KeyGen draws d uniformly from [1, n-1] and returns the key pair (d, d⋅G).
//
// Scalars with d⋅G = ∞, which exist when n is a multiple of the order of G,
// are rejected and drawn again.
//
// rand should be crypto/rand.Reader outside of tests.
func KeyGen(rand io.Reader, g *Group) (*KeyPair, error) {
	for i := 0; i < maxAttempts; i++ {
		d, err := sample.Scalar(rand, g.order)
		if err != nil {
			return nil, fmt.Errorf("elgamal: keygen: %w", err)
		}
		kp, err := NewKeyPair(g, d)
		if errors.Is(err, ErrInvalidScalar) {
			continue
		}
		return kp, err
	}
	return nil, fmt.Errorf("elgamal: keygen: %w", sample.ErrMaxIterations)
}

// NewKeyPair recreates the key pair of a known private scalar d ∈ [1, n-1].
//
// It fails with ErrInvalidScalar if d⋅G = ∞.
func NewKeyPair(g *Group, d *saferith.Nat) (*KeyPair, error) {
	if err := g.checkScalar(d); err != nil {
		return nil, err
	}
	Q, err := g.curve.ScalarMultiply(d, g.generator)
	if err != nil {
		return nil, fmt.Errorf("elgamal: public key: %w", err)
	}
	if Q.IsIdentity() {
		return nil, fmt.Errorf("%w: d⋅G is the identity", ErrInvalidScalar)
	}
	return &KeyPair{
		secret: new(saferith.Nat).SetNat(d),
		Public: Q,
	}, nil
}

// Decrypt decrypts ct with the private scalar of kp.
func (kp *KeyPair) Decrypt(g *Group, ct *Ciphertext) (curve.Point, error) {
	return Decrypt(g, kp.secret, ct)
}

// Encrypt encrypts the point M to the public key Q, with a nonce drawn from rand.
//
// Both Q and M must be on the curve. A nonce with r⋅G = ∞ is drawn again.
// The nonce is returned for callers that need it, for instance to prove
// something about the ciphertext; otherwise it must be discarded, since it
// reveals M.
func Encrypt(rand io.Reader, g *Group, Q PublicKey, M curve.Point) (*Ciphertext, Nonce, error) {
	for i := 0; i < maxAttempts; i++ {
		r, err := sample.Scalar(rand, g.order)
		if err != nil {
			return nil, nil, fmt.Errorf("elgamal: nonce: %w", err)
		}
		ct, err := EncryptWithNonce(g, Q, M, r)
		if errors.Is(err, ErrInvalidScalar) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return ct, r, nil
	}
	return nil, nil, fmt.Errorf("elgamal: nonce: %w", sample.ErrMaxIterations)
}

// EncryptWithNonce is Encrypt with a caller-chosen nonce r ∈ [1, n-1].
//
// It fails with ErrInvalidScalar if r⋅G = ∞, since Decrypt rejects such a
// ciphertext. Reusing a nonce for two messages leaks their difference.
func EncryptWithNonce(g *Group, Q PublicKey, M curve.Point, r Nonce) (*Ciphertext, error) {
	c := g.curve
	if err := g.validatePublic(Q); err != nil {
		return nil, err
	}
	if err := c.Validate(M); err != nil {
		return nil, fmt.Errorf("elgamal: message: %w", err)
	}
	if err := g.checkScalar(r); err != nil {
		return nil, fmt.Errorf("elgamal: nonce: %w", err)
	}

	// C1 = r⋅G
	C1, err := c.ScalarMultiply(r, g.generator)
	if err != nil {
		return nil, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	if C1.IsIdentity() {
		return nil, fmt.Errorf("elgamal: nonce: %w: r⋅G is the identity", ErrInvalidScalar)
	}
	// S = r⋅Q
	S, err := c.ScalarMultiply(r, Q)
	if err != nil {
		return nil, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	// C2 = M + S
	C2, err := c.Add(M, S)
	if err != nil {
		return nil, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	return &Ciphertext{
		C1: c.ToFractional(C1),
		C2: c.ToFractional(C2),
	}, nil
}

// Decrypt recovers M = C2 - d⋅C1 from a ciphertext in fractional form.
//
// Both parts are checked to lie on the curve once converted back, so a
// corrupted ciphertext fails with curve.ErrNotOnCurve.
func Decrypt(g *Group, d *saferith.Nat, ct *Ciphertext) (curve.Point, error) {
	c := g.curve
	if err := g.checkScalar(d); err != nil {
		return curve.Point{}, err
	}
	if !ct.Valid() {
		return curve.Point{}, fmt.Errorf("%w: missing or identity C1", ErrInvalidCiphertext)
	}

	C1, err := c.FromFractional(ct.C1)
	if err != nil {
		return curve.Point{}, fmt.Errorf("elgamal: decrypt: %w", err)
	}
	C2, err := c.FromFractional(ct.C2)
	if err != nil {
		return curve.Point{}, fmt.Errorf("elgamal: decrypt: %w", err)
	}
	if err = c.Validate(C1); err != nil {
		return curve.Point{}, fmt.Errorf("%w: C1: %w", ErrInvalidCiphertext, err)
	}
	if err = c.Validate(C2); err != nil {
		return curve.Point{}, fmt.Errorf("%w: C2: %w", ErrInvalidCiphertext, err)
	}

	// S = d⋅C1
	S, err := c.ScalarMultiply(d, C1)
	if err != nil {
		return curve.Point{}, fmt.Errorf("elgamal: decrypt: %w", err)
	}
	M, err := c.Add(C2, c.Negate(S))
	if err != nil {
		return curve.Point{}, fmt.Errorf("elgamal: decrypt: %w", err)
	}
	return M, nil
}
