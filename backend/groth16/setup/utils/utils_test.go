package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersoftau/ceremony-core/curve"
)

func TestSameRatioAcceptsMatchingExponent(t *testing.T) {
	g1, g2 := curve.Generators()

	var s curve.Fr
	s.SetUint64(7)
	sBI := curve.ScalarToBigInt(&s)

	var a2 curve.G1Affine
	a2.ScalarMultiplication(&g1, sBI)
	var b2 curve.G2Affine
	b2.ScalarMultiplication(&g2, sBI)

	assert.True(t, SameRatio(g1, a2, b2, g2))
}

func TestSameRatioRejectsMismatchedExponent(t *testing.T) {
	g1, g2 := curve.Generators()

	var s, t2 curve.Fr
	s.SetUint64(7)
	t2.SetUint64(8)

	var a2 curve.G1Affine
	a2.ScalarMultiplication(&g1, curve.ScalarToBigInt(&s))
	var b2 curve.G2Affine
	b2.ScalarMultiplication(&g2, curve.ScalarToBigInt(&t2))

	assert.False(t, SameRatio(g1, a2, b2, g2))
}

func TestGenPublicKeyProducesVerifiablePoK(t *testing.T) {
	var s curve.Fr
	s.SetRandom()
	prevHash := []byte("parent challenge hash")

	pk := GenPublicKey(s, prevHash, 1)
	r := GenR(pk.SG, pk.SXG, prevHash, 1)

	assert.True(t, SameRatio(pk.SG, pk.SXG, pk.XR, r))
}

func TestGenPublicKeyDifferentRoleDifferentKey(t *testing.T) {
	var s curve.Fr
	s.SetUint64(42)
	prevHash := []byte("parent challenge hash")

	pkTau := GenPublicKey(s, prevHash, 1)
	pkAlpha := GenPublicKey(s, prevHash, 2)

	assert.False(t, pkTau.SXG.Equal(&pkAlpha.SXG))
}

func TestPowers(t *testing.T) {
	var x curve.Fr
	x.SetUint64(3)

	p := Powers(x, 5)
	require.Len(t, p, 5)

	var one, three, nine curve.Fr
	one.SetOne()
	three.SetUint64(3)
	nine.SetUint64(9)

	assert.True(t, p[0].Equal(&one))
	assert.True(t, p[1].Equal(&three))
	assert.True(t, p[2].Equal(&nine))
}

func TestScaleG1MatchesDirectScalarMultiplication(t *testing.T) {
	g1, _ := curve.Generators()
	var s curve.Fr
	s.SetUint64(11)

	out := ScaleG1(g1, []curve.Fr{s})
	require.Len(t, out, 1)

	var want curve.G1Affine
	want.ScalarMultiplication(&g1, curve.ScalarToBigInt(&s))
	assert.True(t, want.Equal(&out[0]))
}

func TestLagrangeCoeffsG1KeepsLength(t *testing.T) {
	// Powers of tau in G1 for tau=1 are all the generator. At tau=1 the
	// Lagrange basis gives L_0(1) = 1 and L_i(1) = 0 for i > 0, so the
	// coefficients are the generator followed by points at infinity; this
	// test only checks that a power-of-two input comes back at full
	// length without a panic.
	g1, _ := curve.Generators()
	size := 8
	powers := make([]curve.G1Affine, size)
	for i := range powers {
		powers[i].Set(&g1)
	}

	coeffs := LagrangeCoeffsG1(powers, size)
	assert.Len(t, coeffs, size)
}

func TestMergeTruncatesToSharedLength(t *testing.T) {
	g1, _ := curve.Generators()
	cur := make([]curve.G1Affine, 5)
	prev := make([]curve.G1Affine, 3)
	for i := range cur {
		cur[i].Set(&g1)
	}
	for i := range prev {
		prev[i].Set(&g1)
	}

	a, b := Merge(cur, prev)
	assert.Len(t, a, 3)
	assert.Len(t, b, 3)
}
