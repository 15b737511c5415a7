package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/fractional-elgamal/pkg/math/curve"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/sample"
	"github.com/taurusgroup/fractional-elgamal/pkg/pool"
)

// EncryptBatch encrypts each message to Q, spreading the work over pl.
//
// Nonces are drawn from rand on the calling goroutine, in message order, so
// rand needs no locking and a deterministic reader gives reproducible output.
// Messages whose nonce sends G to the identity are encrypted again afterwards,
// in order, with fresh nonces. A nil pl runs everything on the calling goroutine.
func EncryptBatch(pl *pool.Pool, rand io.Reader, g *Group, Q PublicKey, messages []curve.Point) ([]*Ciphertext, error) {
	if err := g.validatePublic(Q); err != nil {
		return nil, err
	}
	nonces := make([]Nonce, len(messages))
	for i := range nonces {
		r, err := sample.Scalar(rand, g.order)
		if err != nil {
			return nil, fmt.Errorf("elgamal: nonce %d: %w", i, err)
		}
		nonces[i] = r
	}

	results := pl.Parallelize(len(messages), func(i int) interface{} {
		ct, err := EncryptWithNonce(g, Q, messages[i], nonces[i])
		if err != nil {
			return fmt.Errorf("elgamal: message %d: %w", i, err)
		}
		return ct
	})

	cts := make([]*Ciphertext, len(results))
	for i, r := range results {
		switch r := r.(type) {
		case error:
			if !errors.Is(r, ErrInvalidScalar) {
				return nil, r
			}
			ct, _, err := Encrypt(rand, g, Q, messages[i])
			if err != nil {
				return nil, fmt.Errorf("elgamal: message %d: %w", i, err)
			}
			cts[i] = ct
		case *Ciphertext:
			cts[i] = r
		}
	}
	return cts, nil
}

// DecryptBatch decrypts each ciphertext with kp, spreading the work over pl.
func (kp *KeyPair) DecryptBatch(pl *pool.Pool, g *Group, cts []*Ciphertext) ([]curve.Point, error) {
	results := pl.Parallelize(len(cts), func(i int) interface{} {
		M, err := kp.Decrypt(g, cts[i])
		if err != nil {
			return fmt.Errorf("elgamal: ciphertext %d: %w", i, err)
		}
		return M
	})

	messages := make([]curve.Point, len(results))
	for i, r := range results {
		switch r := r.(type) {
		case error:
			return nil, r
		case curve.Point:
			messages[i] = r
		}
	}
	return messages, nil
}
