package curve

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fractional-elgamal/pkg/math/field"
)

// toyCurve is y² = x³ + 7/3⋅x + 2/5 over p = 178987, so l = 15.
func toyCurve(t testing.TB) *Curve {
	t.Helper()
	c, err := FromInt64(178987, 7, 3, 2, 5)
	require.NoError(t, err)
	return c
}

// smallCurve is y² = x³ + 2/3⋅x + 5/7 over p = 97, so l = 21, A = 62, B = 1.
// It has 98 points, including the 2-torsion point (90, 0).
func smallCurve(t testing.TB) *Curve {
	t.Helper()
	c, err := FromInt64(97, 2, 3, 5, 7)
	require.NoError(t, err)
	return c
}

// allPoints enumerates a small curve, identity included.
func allPoints(c *Curve) []Point {
	p := c.P().Uint64()
	points := []Point{Infinity()}
	for x := uint64(0); x < p; x++ {
		for y := uint64(0); y < p; y++ {
			if P := PointFromUint64(x, y); c.IsOnCurve(P) {
				points = append(points, P)
			}
		}
	}
	return points
}

func nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

var (
	toyG = PointFromUint64(116485, 32401)
	toyM = PointFromUint64(47542, 46746)
)

func TestNew(t *testing.T) {
	c := toyCurve(t)
	assert.EqualValues(t, 15, c.L().Int64())
	assert.EqualValues(t, 178987, c.P().Int64())
	assert.EqualValues(t, 118125, c.A().Uint64())
	assert.EqualValues(t, 81575, c.B().Uint64())

	s := smallCurve(t)
	assert.EqualValues(t, 21, s.L().Int64())
	assert.EqualValues(t, 62, s.A().Uint64())
	assert.EqualValues(t, 1, s.B().Uint64())
}

func TestNew_NegativeDenominator(t *testing.T) {
	c1, err := FromInt64(178987, 7, -3, 2, 5)
	require.NoError(t, err)
	c2, err := FromInt64(178987, -7, 3, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, c2.A().Uint64(), c1.A().Uint64())
	assert.Equal(t, c2.B().Uint64(), c1.B().Uint64())
	assert.EqualValues(t, 15, c1.L().Int64())
}

func TestNew_Errors(t *testing.T) {
	for _, p := range []int64{-7, 0, 2, 3} {
		_, err := FromInt64(p, 7, 3, 2, 5)
		assert.ErrorIs(t, err, ErrInvalidModulus, "p = %d", p)
	}
	_, err := New(nil, NewRational(7, 3), NewRational(2, 5))
	assert.ErrorIs(t, err, ErrInvalidModulus)

	_, err = FromInt64(178987, 7, 0, 2, 5)
	assert.ErrorIs(t, err, ErrZeroDenominator)

	// p divides the denominator of b
	_, err = FromInt64(11, 7, 3, 2, 22)
	assert.ErrorIs(t, err, field.ErrNoInverse)

	_, err = New(big.NewInt(11), Rational{Num: big.NewInt(1)}, NewRational(2, 5))
	assert.Error(t, err)
}

func TestCurve_IsOnCurve(t *testing.T) {
	c := toyCurve(t)
	assert.True(t, c.IsOnCurve(toyG))
	assert.True(t, c.IsOnCurve(toyM))
	assert.True(t, c.IsOnCurve(Infinity()))
	assert.False(t, c.IsOnCurve(PointFromUint64(116485, 32402)))
	assert.False(t, c.IsOnCurve(PointFromUint64(1, 1)))

	assert.NoError(t, c.Validate(toyG))
	assert.ErrorIs(t, c.Validate(PointFromUint64(1, 1)), ErrNotOnCurve)
}

func TestCurve_PointFromBig(t *testing.T) {
	c := toyCurve(t)
	P, err := c.PointFromBig(big.NewInt(116485), big.NewInt(32401-178987))
	require.NoError(t, err)
	assert.True(t, P.Equal(toyG))

	_, err = c.PointFromBig(big.NewInt(1), big.NewInt(1))
	assert.ErrorIs(t, err, ErrNotOnCurve)
}

func TestCurve_Negate(t *testing.T) {
	c := toyCurve(t)
	assert.True(t, c.Negate(Infinity()).IsIdentity())
	assert.True(t, c.Negate(toyM).Equal(PointFromUint64(47542, 132241)))
	assert.True(t, c.Negate(c.Negate(toyG)).Equal(toyG))

	s := smallCurve(t)
	T := PointFromUint64(90, 0)
	assert.True(t, s.Negate(T).Equal(T))
}

func TestCurve_Add_KnownValues(t *testing.T) {
	c := toyCurve(t)

	G2, err := c.Add(toyG, toyG)
	require.NoError(t, err)
	assert.True(t, G2.Equal(PointFromUint64(90453, 132519)), "2G = %v", G2)

	G3, err := c.Add(G2, toyG)
	require.NoError(t, err)
	assert.True(t, G3.Equal(PointFromUint64(114251, 47153)), "3G = %v", G3)

	GM, err := c.Add(toyG, toyM)
	require.NoError(t, err)
	assert.True(t, GM.Equal(PointFromUint64(136118, 127721)), "G + M = %v", GM)

	D, err := c.Double(toyG)
	require.NoError(t, err)
	assert.True(t, D.Equal(G2))

	S, err := c.Sub(G3, toyG)
	require.NoError(t, err)
	assert.True(t, S.Equal(G2))
}

func TestCurve_Add_Identity(t *testing.T) {
	c := toyCurve(t)
	for _, P := range []Point{toyG, toyM, Infinity()} {
		R, err := c.Add(P, Infinity())
		require.NoError(t, err)
		assert.True(t, R.Equal(P))
		R, err = c.Add(Infinity(), P)
		require.NoError(t, err)
		assert.True(t, R.Equal(P))
	}
}

func TestCurve_Add_Inverse(t *testing.T) {
	c := smallCurve(t)
	for _, P := range allPoints(c) {
		R, err := c.Add(P, c.Negate(P))
		require.NoError(t, err)
		assert.True(t, R.IsIdentity(), "%v - %v", P, P)
	}
}

func TestCurve_Add_ClosureAndCommutativity(t *testing.T) {
	c := smallCurve(t)
	points := allPoints(c)
	require.Len(t, points, 98)
	for _, P := range points {
		for _, Q := range points {
			PQ, err := c.Add(P, Q)
			require.NoError(t, err)
			QP, err := c.Add(Q, P)
			require.NoError(t, err)
			assert.True(t, c.IsOnCurve(PQ), "%v + %v = %v is not on the curve", P, Q, PQ)
			assert.True(t, PQ.Equal(QP), "%v + %v", P, Q)
		}
	}
}

func TestCurve_Add_Associativity(t *testing.T) {
	c := smallCurve(t)
	points := allPoints(c)
	r := mrand.New(mrand.NewSource(1))
	for i := 0; i < 500; i++ {
		P := points[r.Intn(len(points))]
		Q := points[r.Intn(len(points))]
		R := points[r.Intn(len(points))]

		PQ, err := c.Add(P, Q)
		require.NoError(t, err)
		left, err := c.Add(PQ, R)
		require.NoError(t, err)

		QR, err := c.Add(Q, R)
		require.NoError(t, err)
		right, err := c.Add(P, QR)
		require.NoError(t, err)

		assert.True(t, left.Equal(right), "(%v + %v) + %v", P, Q, R)
	}
}

func TestCurve_Add_TwoTorsion(t *testing.T) {
	c := smallCurve(t)
	T := PointFromUint64(90, 0)
	require.True(t, c.IsOnCurve(T))
	R, err := c.Double(T)
	require.NoError(t, err)
	assert.True(t, R.IsIdentity())
}

func TestCurve_Add_VerticalChord(t *testing.T) {
	// (1, 8) is on the small curve, (1, 5) is not, and 8 + 5 ≠ 0 mod 97
	c := smallCurve(t)
	P := PointFromUint64(1, 8)
	Q := PointFromUint64(1, 5)
	require.True(t, c.IsOnCurve(P))
	require.False(t, c.IsOnCurve(Q))

	_, err := c.Add(P, Q)
	assert.ErrorIs(t, err, field.ErrNoInverse)
	_, err = c.Add(Q, P)
	assert.ErrorIs(t, err, field.ErrNoInverse)
}

func TestCurve_ScalarMultiply(t *testing.T) {
	c := toyCurve(t)
	expected := Infinity()
	for k := uint64(0); k <= 20; k++ {
		got, err := c.ScalarMultiply(nat(k), toyG)
		require.NoError(t, err)
		assert.True(t, got.Equal(expected), "%d⋅G = %v, expected %v", k, got, expected)

		expected, err = c.Add(expected, toyG)
		require.NoError(t, err)
	}
}

func TestCurve_ScalarMultiply_Identity(t *testing.T) {
	c := toyCurve(t)
	R, err := c.ScalarMultiply(nat(12345), Infinity())
	require.NoError(t, err)
	assert.True(t, R.IsIdentity())

	R, err = c.ScalarMultiply(nat(0), toyM)
	require.NoError(t, err)
	assert.True(t, R.IsIdentity())
}

func TestCurve_ScalarMultiply_Linear(t *testing.T) {
	// (a + b)⋅G = a⋅G + b⋅G
	c := toyCurve(t)
	r := mrand.New(mrand.NewSource(2))
	for i := 0; i < 20; i++ {
		a, b := uint64(r.Int63n(1<<20)), uint64(r.Int63n(1<<20))
		aG, err := c.ScalarMultiply(nat(a), toyG)
		require.NoError(t, err)
		bG, err := c.ScalarMultiply(nat(b), toyG)
		require.NoError(t, err)
		sum, err := c.Add(aG, bG)
		require.NoError(t, err)
		abG, err := c.ScalarMultiply(nat(a+b), toyG)
		require.NoError(t, err)
		assert.True(t, sum.Equal(abG), "a = %d, b = %d", a, b)
	}
}

func TestCurve_Order_Small(t *testing.T) {
	c := smallCurve(t)
	for _, P := range allPoints(c) {
		n, err := c.Order(P)
		require.NoError(t, err)
		order := n.Uint64()
		assert.Zero(t, 98%order, "order %d of %v does not divide 98", order, P)

		R, err := c.ScalarMultiply(n, P)
		require.NoError(t, err)
		assert.True(t, R.IsIdentity())
		for k := uint64(1); k < order; k++ {
			R, err := c.ScalarMultiply(nat(k), P)
			require.NoError(t, err)
			assert.False(t, R.IsIdentity(), "%d⋅%v = ∞ below order %d", k, P, order)
		}
	}

	n, err := c.Order(Infinity())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n.Uint64())
	n, err = c.Order(PointFromUint64(90, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n.Uint64())
}

func TestCurve_Order_Toy(t *testing.T) {
	if testing.Short() {
		t.Skip("brute force order of a 178422 point group")
	}
	c := toyCurve(t)
	n, err := c.Order(toyG)
	require.NoError(t, err)
	assert.EqualValues(t, 178422, n.Uint64())
}

func TestCurve_ToyOrderIsMinimal(t *testing.T) {
	// 178422 = 2⋅3⋅131⋅227, so no proper divisor n/q may send G to ∞
	c := toyCurve(t)
	const n = 178422
	R, err := c.ScalarMultiply(nat(n), toyG)
	require.NoError(t, err)
	assert.True(t, R.IsIdentity())
	for _, q := range []uint64{2, 3, 131, 227} {
		R, err := c.ScalarMultiply(nat(n/q), toyG)
		require.NoError(t, err)
		assert.False(t, R.IsIdentity(), "(n/%d)⋅G = ∞", q)
	}
}

func TestCurve_Order_NotOnCurve(t *testing.T) {
	c := smallCurve(t)
	_, err := c.Order(PointFromUint64(1, 5))
	assert.ErrorIs(t, err, ErrNotOnCurve)
}

func TestCurve_HasseBound(t *testing.T) {
	assert.EqualValues(t, 178987+1+2*424, toyCurve(t).hasseBound().Int64())
	// √97 rounds up to 10
	assert.EqualValues(t, 97+1+20, smallCurve(t).hasseBound().Int64())
}

func TestCurve_String(t *testing.T) {
	assert.Equal(t, "y² = x³ + 118125⋅x + 81575 mod 178987", toyCurve(t).String())
	assert.Equal(t, "(116485, 32401)", toyG.String())
	assert.Equal(t, "Point{Identity}", Infinity().String())
	assert.Equal(t, "7/3", NewRational(7, 3).String())
}

var resultPoint Point

func BenchmarkCurve_ScalarMultiply(b *testing.B) {
	c := toyCurve(b)
	k := nat(178421)
	for i := 0; i < b.N; i++ {
		resultPoint, _ = c.ScalarMultiply(k, toyG)
	}
}
