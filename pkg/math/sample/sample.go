// Package sample draws uniform scalars from an injected source of randomness.
//
// Production code should pass crypto/rand.Reader; tests pass deterministic
// readers so that a run can be replayed.
package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

// ErrModulusTooSmall is returned by Scalar when [1, n-1] is empty.
var ErrModulusTooSmall = errors.New("sample: modulus must be at least 2")

func readBits(rand io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return fmt.Errorf("sample: reading randomness: %w", err)
	}
	return nil
}

// ModN samples an element of ℤₙ by rejection.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// clear the excess top bits so that each candidate is accepted with probability ≥ 1/2
	mask := byte(0xFF >> (8*len(buf) - bits))
	out := new(saferith.Nat)
	for i := 0; i < maxIterations; i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// Scalar samples a uniform scalar in [1, n-1].
func Scalar(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	if n.BitLen() < 2 {
		return nil, ErrModulusTooSmall
	}
	for i := 0; i < maxIterations; i++ {
		s, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		if s.EqZero() != 1 {
			return s, nil
		}
	}
	return nil, ErrMaxIterations
}
