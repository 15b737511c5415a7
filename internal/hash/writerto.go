package hash

import "io"

// WriterToWithDomain is implemented by types that can write themselves into a
// Hash under a domain string of their own.
//
// curve.Point and elgamal.Ciphertext implement it.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, unique for each implementor
	Domain() string
}

var (
	openParen  = []byte("(")
	closeParen = []byte(")")
)

// writeWithDomain writes `(<domain><data>)` to w.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	if _, err := w.Write(openParen); err != nil {
		return err
	}
	if _, err := io.WriteString(w, object.Domain()); err != nil {
		return err
	}
	if _, err := object.WriteTo(w); err != nil {
		return err
	}
	_, err := w.Write(closeParen)
	return err
}

// BytesWithDomain annotates a chunk of data with a domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
