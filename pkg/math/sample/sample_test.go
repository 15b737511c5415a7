package sample

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fractional-elgamal/internal/hash"
)

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x, err := ModN(rand.Reader, n)
	require.NoError(t, err)
	_, _, lt := x.CmpMod(n)
	assert.EqualValues(t, 1, lt, "ModN generated a number >= %v: %v", n, x)
}

func TestScalar_Range(t *testing.T) {
	for _, n := range []uint64{2, 3, 7, 256, 257, 178422} {
		mod := saferith.ModulusFromUint64(n)
		seen := make(map[uint64]bool)
		for i := 0; i < 200; i++ {
			s, err := Scalar(rand.Reader, mod)
			require.NoError(t, err)
			v := s.Uint64()
			assert.True(t, v >= 1 && v < n, "scalar %d outside [1, %d)", v, n)
			seen[v] = true
		}
		if n == 2 {
			assert.Equal(t, map[uint64]bool{1: true}, seen)
		}
	}
}

func TestScalar_Deterministic(t *testing.T) {
	n := saferith.ModulusFromUint64(178422)
	a, err := Scalar(hash.New("seed").Digest(), n)
	require.NoError(t, err)
	b, err := Scalar(hash.New("seed").Digest(), n)
	require.NoError(t, err)
	assert.Equal(t, a.Uint64(), b.Uint64())
}

func TestScalar_Errors(t *testing.T) {
	// a source of zeros never yields a non zero scalar
	_, err := Scalar(zeroReader{}, saferith.ModulusFromUint64(178422))
	assert.ErrorIs(t, err, ErrMaxIterations)

	_, err = Scalar(bytes.NewReader([]byte{1}), saferith.ModulusFromUint64(178422))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ModN(bytes.NewReader(nil), saferith.ModulusFromUint64(178422))
	assert.ErrorIs(t, err, io.EOF)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

var resultNat *saferith.Nat

func BenchmarkScalar(b *testing.B) {
	n := saferith.ModulusFromUint64(178422)
	for i := 0; i < b.N; i++ {
		resultNat, _ = Scalar(rand.Reader, n)
	}
}
