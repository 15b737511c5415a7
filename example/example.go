package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fractional-elgamal/pkg/elgamal"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/curve"
	"github.com/taurusgroup/fractional-elgamal/pkg/pool"
	"go.uber.org/zap"
)

// Params describes one run of the demonstration.
type Params struct {
	P     *big.Int
	A, B  curve.Rational
	G, M  [2]*big.Int
	Order *big.Int // nil means brute force
	Batch int
}

// ParseRational reads "num/den" or a bare integer, keeping the fraction as
// written so that the denominators determine the scaling factor.
func ParseRational(s string) (curve.Rational, error) {
	numStr, denStr, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		denStr = "1"
	}
	num, ok := new(big.Int).SetString(strings.TrimSpace(numStr), 10)
	if !ok {
		return curve.Rational{}, fmt.Errorf("invalid numerator in %q", s)
	}
	den, ok := new(big.Int).SetString(strings.TrimSpace(denStr), 10)
	if !ok {
		return curve.Rational{}, fmt.Errorf("invalid denominator in %q", s)
	}
	return curve.Rational{Num: num, Den: den}, nil
}

// Setup builds the curve and the group announced by the receiver.
func Setup(log *zap.SugaredLogger, params Params) (*elgamal.Group, curve.Point, error) {
	c, err := curve.New(params.P, params.A, params.B)
	if err != nil {
		return nil, curve.Point{}, err
	}
	G, err := c.PointFromBig(params.G[0], params.G[1])
	if err != nil {
		return nil, curve.Point{}, fmt.Errorf("generator: %w", err)
	}
	M, err := c.PointFromBig(params.M[0], params.M[1])
	if err != nil {
		return nil, curve.Point{}, fmt.Errorf("message: %w", err)
	}

	var g *elgamal.Group
	if params.Order == nil {
		log.Infow("computing generator order by brute force", "p", params.P)
		g, err = elgamal.GroupFromGenerator(c, G)
	} else {
		g, err = elgamal.NewGroup(c, G, new(saferith.Nat).SetBig(params.Order, params.Order.BitLen()))
	}
	if err != nil {
		return nil, curve.Point{}, err
	}
	log.Infow("group ready", "curve", c, "order", g.Order().Big())
	return g, M, nil
}

// BobKeyGen creates the receiver's key pair and prints the announcement.
func BobKeyGen(w io.Writer, rand io.Reader, g *elgamal.Group, params Params) (*elgamal.KeyPair, error) {
	kp, err := elgamal.KeyGen(rand, g)
	if err != nil {
		return nil, err
	}
	c := g.Curve()
	l := c.L()
	G := c.ToFractional(g.Generator())
	Q := c.ToFractional(kp.Public)

	fmt.Fprintln(w, "Bob announces:")
	fmt.Fprintf(w, "E(%v, %v), p=%v, P=%s, kP=%s\n", params.A, params.B, c.P(), fractional(G, l), fractional(Q, l))
	fmt.Fprintf(w, "E: y^2=x^3+%v x+%v mod %v\n", params.A, params.B, c.P())
	return kp, nil
}

// AlicePrecompute prints the change of variables that clears the denominators.
func AlicePrecompute(w io.Writer, g *elgamal.Group, params Params) {
	c := g.Curve()
	l := c.L()
	fmt.Fprintln(w, "\nAlice precomputes:")
	fmt.Fprintf(w, "x=X/%v^2, y=Y/%v^3\n", l, l)
	fmt.Fprintf(w, "(Y/%v^3)^2=(X/%v^2)^3+(X/%v^2)(%v)+(%v) mod %v\n", l, l, l, params.A, params.B, c.P())
	fmt.Fprintf(w, "=> Y^2=X^3+%v X+%v mod %v\n", c.A().Big(), c.B().Big(), c.P())
}

// AliceEncrypt encrypts M to Bob's public key and prints the ciphertext.
func AliceEncrypt(w io.Writer, rand io.Reader, g *elgamal.Group, Q elgamal.PublicKey, M curve.Point) (*elgamal.Ciphertext, error) {
	fmt.Fprintf(w, "\nAlice sets the message M: %v\n", M)
	ct, _, err := elgamal.Encrypt(rand, g, Q, M)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(w, "Alice encrypts and sends:")
	fmt.Fprintf(w, "  C1 = %v\n", ct.C1)
	fmt.Fprintf(w, "  C2 = %v\n", ct.C2)
	return ct, nil
}

// BobDecrypt decrypts the ciphertext and prints the message.
func BobDecrypt(w io.Writer, g *elgamal.Group, kp *elgamal.KeyPair, ct *elgamal.Ciphertext) (curve.Point, error) {
	M, err := kp.Decrypt(g, ct)
	if err != nil {
		return curve.Point{}, err
	}
	fmt.Fprintln(w, "\nBob decrypts the message:")
	fmt.Fprintf(w, "  M = %v\n", M)
	return M, nil
}

// Batch encrypts and decrypts count multiples of M over the pool.
func Batch(log *zap.SugaredLogger, rand io.Reader, pl *pool.Pool, g *elgamal.Group, kp *elgamal.KeyPair, M curve.Point, count int) error {
	c := g.Curve()
	messages := make([]curve.Point, count)
	for i := range messages {
		Mi, err := c.ScalarMultiply(new(saferith.Nat).SetUint64(uint64(i+1)), M)
		if err != nil {
			return err
		}
		messages[i] = Mi
	}
	cts, err := elgamal.EncryptBatch(pl, rand, g, kp.Public, messages)
	if err != nil {
		return err
	}
	decrypted, err := kp.DecryptBatch(pl, g, cts)
	if err != nil {
		return err
	}
	for i := range messages {
		if !decrypted[i].Equal(messages[i]) {
			return fmt.Errorf("batch message %d: decrypted %v, want %v", i, decrypted[i], messages[i])
		}
	}
	log.Infow("batch round trip", "messages", count, "workers", pl.Workers())
	return nil
}

// Run performs the whole exchange, writing the transcript to w.
func Run(w io.Writer, log *zap.SugaredLogger, rand io.Reader, pl *pool.Pool, params Params) (curve.Point, error) {
	g, M, err := Setup(log, params)
	if err != nil {
		return curve.Point{}, err
	}
	kp, err := BobKeyGen(w, rand, g, params)
	if err != nil {
		return curve.Point{}, err
	}
	AlicePrecompute(w, g, params)
	ct, err := AliceEncrypt(w, rand, g, kp.Public, M)
	if err != nil {
		return curve.Point{}, err
	}
	decrypted, err := BobDecrypt(w, g, kp, ct)
	if err != nil {
		return curve.Point{}, err
	}
	if !decrypted.Equal(M) {
		return decrypted, fmt.Errorf("decrypted %v, want %v", decrypted, M)
	}
	if params.Batch > 0 {
		if err = Batch(log, rand, pl, g, kp, M, params.Batch); err != nil {
			return decrypted, err
		}
	}
	return decrypted, nil
}

func fractional(P curve.Point, l *big.Int) string {
	x, y, ok := P.Coordinates()
	if !ok {
		return "Point{Identity}"
	}
	return fmt.Sprintf("(%v/%v^2, %v/%v^3)", x, l, y, l)
}
