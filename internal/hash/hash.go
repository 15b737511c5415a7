// Package hash wraps blake3 with domain separation for the types of this module.
package hash

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the length of Sum.
const DigestLengthBytes = 32

// Hash is the hash function used for transcripts and derived randomness.
//
// Its output is extendable: Digest returns an unbounded stream, which makes a
// seeded Hash usable as a deterministic source of randomness.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash with the given data already written, see WriteAny.
func New(initialData ...interface{}) *Hash {
	hash := &Hash{h: blake3.New()}
	if err := hash.WriteAny(initialData...); err != nil {
		panic(fmt.Sprintf("hash.New: %v", err))
	}
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - uint64
//   - *big.Int
//   - *saferith.Nat
//   - hash.WriterToWithDomain
//
// This function will apply its own domain separation for the first types.
// The last type already suggests which domain to use, and this function respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var toBeWritten WriterToWithDomain
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			toBeWritten = &BytesWithDomain{TheDomain: "[]byte", Bytes: t}
		case string:
			toBeWritten = &BytesWithDomain{TheDomain: "string", Bytes: []byte(t)}
		case uint64:
			toBeWritten = &BytesWithDomain{TheDomain: "uint64", Bytes: new(big.Int).SetUint64(t).Bytes()}
		case *big.Int:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *big.Int: nil")
			}
			bytes, err := t.GobEncode()
			if err != nil {
				return fmt.Errorf("hash.Hash: GobEncode: %w", err)
			}
			toBeWritten = &BytesWithDomain{TheDomain: "big.Int", Bytes: bytes}
		case *saferith.Nat:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *saferith.Nat: nil")
			}
			toBeWritten = &BytesWithDomain{TheDomain: "saferith.Nat", Bytes: t.Big().Bytes()}
		case WriterToWithDomain:
			toBeWritten = t
		default:
			return fmt.Errorf("hash.Hash: unsupported type %T", d)
		}
		if err := writeWithDomain(hash.h, toBeWritten); err != nil {
			return fmt.Errorf("hash.Hash: write %s: %w", toBeWritten.Domain(), err)
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
