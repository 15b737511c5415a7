package elgamal

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/curve"
)

// Ciphertext is a pair of points, both in fractional form.
type Ciphertext struct {
	// C1 = r⋅G
	C1 curve.Point
	// C2 = M + r⋅Q
	C2 curve.Point
}

// Valid returns false for a ciphertext that no honest sender produces.
//
// It does not check the points against a curve; Decrypt does.
func (ct *Ciphertext) Valid() bool {
	return ct != nil && !ct.C1.IsIdentity()
}

// WriteTo implements io.WriterTo.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, P := range []curve.Point{ct.C1, ct.C2} {
		n, err := P.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain.
func (Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

// MarshalBinary implements encoding.BinaryMarshaler, as a CBOR array of the
// two point encodings.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	c1, err := ct.C1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c2, err := ct.C2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal([]cbor.RawMessage{c1, c2})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The points are not checked against a curve; see UnmarshalCiphertext.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	c1, c2, err := splitCiphertext(data)
	if err != nil {
		return err
	}
	var out Ciphertext
	if err = out.C1.UnmarshalBinary(c1); err != nil {
		return fmt.Errorf("elgamal.Ciphertext.Unmarshal: C1: %w", err)
	}
	if err = out.C2.UnmarshalBinary(c2); err != nil {
		return fmt.Errorf("elgamal.Ciphertext.Unmarshal: C2: %w", err)
	}
	*ct = out
	return nil
}

// UnmarshalCiphertext decodes a ciphertext received for group g, rejecting
// coordinates that are not reduced mod p.
func UnmarshalCiphertext(g *Group, data []byte) (*Ciphertext, error) {
	c1, c2, err := splitCiphertext(data)
	if err != nil {
		return nil, err
	}
	var ct Ciphertext
	if ct.C1, err = g.curve.UnmarshalPoint(c1); err != nil {
		return nil, fmt.Errorf("%w: C1: %w", ErrInvalidCiphertext, err)
	}
	if ct.C2, err = g.curve.UnmarshalPoint(c2); err != nil {
		return nil, fmt.Errorf("%w: C2: %w", ErrInvalidCiphertext, err)
	}
	return &ct, nil
}

func splitCiphertext(data []byte) ([]byte, []byte, error) {
	var parts []cbor.RawMessage
	if err := cbor.Unmarshal(data, &parts); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: expected 2 points, got %d", ErrInvalidCiphertext, len(parts))
	}
	return parts[0], parts[1], nil
}
