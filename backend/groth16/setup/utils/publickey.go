// Package utils holds the batched group-element arithmetic and PoK
// primitives shared by phase1 and phase2: public-key generation, the
// Fiat-Shamir challenge scalar, same-ratio pairing checks, and the
// random-linear-combination verification that collapses a sequence check
// from O(n) pairings to O(1).
package utils

import (
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/transcript"
)

// PublicKey is a contributor's proof of knowledge of one secret scalar s:
// SG is the role's per-transcript challenge base in G1, SXG = s·SG, and
// XR = s·r_g2 where r_g2 is the transcript-derived challenge point in
// G2. SameRatio(SG, SXG, XR, r_g2) lets a verifier check knowledge of s
// without ever learning it.
type PublicKey struct {
	SG  curve.G1Affine
	SXG curve.G1Affine
	XR  curve.G2Affine
}

// GenPublicKey derives the per-role challenge base from the parent
// challenge-file hash and role index, then produces the contributor's PoK
// for secret scalar s over that base.
func GenPublicKey(s curve.Fr, prevHash []byte, role int) PublicKey {
	sBI := curve.ScalarToBigInt(&s)

	sBase := transcript.ChallengeBaseG1(prevHash, role)
	var sg, sxg curve.G1Affine
	sg.Set(&sBase)
	sxg.ScalarMultiplication(&sBase, sBI)

	r := GenR(sg, sxg, prevHash, role)

	var xr curve.G2Affine
	xr.Set(&r)
	xr.ScalarMultiplication(&xr, sBI)

	return PublicKey{SG: sg, SXG: sxg, XR: xr}
}

// GenR recomputes the challenge point in G2 a verifier and contributor
// both derive from (sg, sxg, prevHash, role) via the transcript hasher,
// with no further secret input.
func GenR(sg, sxg curve.G1Affine, prevHash []byte, role int) curve.G2Affine {
	return transcript.ChallengePointG2(sg, sxg, prevHash, role)
}

// SameRatio reports whether e(a1, b1) == e(a2, b2), i.e. whether the
// exponent taking a1 to a2 is the one taking b2 to b1. Checked as a
// single pairing product e(a1, b1)·e(-a2, b2) == 1.
func SameRatio(a1, a2 curve.G1Affine, b1, b2 curve.G2Affine) bool {
	var na2 curve.G1Affine
	na2.Neg(&a2)
	ok, err := curve.PairingCheck([]curve.G1Affine{a1, na2}, []curve.G2Affine{b1, b2})
	if err != nil {
		return false
	}
	return ok
}

// Powers returns [1, x, x^2, ..., x^(n-1)].
func Powers(x curve.Fr, n int) []curve.Fr {
	powers := make([]curve.Fr, n)
	powers[0].SetOne()
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], &x)
	}
	return powers
}

// ScaleG1 returns g scaled by each scalar, as affine points.
func ScaleG1(g curve.G1Affine, scalars []curve.Fr) []curve.G1Affine {
	out := make([]curve.G1Affine, len(scalars))
	for i := range scalars {
		bi := curve.ScalarToBigInt(&scalars[i])
		out[i].ScalarMultiplication(&g, bi)
	}
	return out
}

// ScaleG2 returns g scaled by each scalar, as affine points.
func ScaleG2(g curve.G2Affine, scalars []curve.Fr) []curve.G2Affine {
	out := make([]curve.G2Affine, len(scalars))
	for i := range scalars {
		bi := curve.ScalarToBigInt(&scalars[i])
		out[i].ScalarMultiplication(&g, bi)
	}
	return out
}

// randomScalars derives n deterministic, transcript-bound random Fr
// scalars for a random-linear-combination check. Collapsing a sequence
// invariant this way turns an O(n) pairing check into O(1).
func randomScalars(n int) []curve.Fr {
	scalars := make([]curve.Fr, n)
	for i := range scalars {
		scalars[i] = transcript.DeriveChallengeScalar(uint64(i))
	}
	return scalars
}

// LinearCombinationG1 draws a random scalar per element of powers and
// returns (Σ r_i·powers[i], Σ r_i·powers[i+1]), the pair an RLC check
// compares against a single G2 ratio instead of len(powers) pairings.
func LinearCombinationG1(powers []curve.G1Affine) (curve.G1Affine, curve.G1Affine) {
	n := len(powers) - 1
	r := randomScalars(n)

	cfg := curve.MSMConfig{}
	l1, _ := curve.MSM(powers[:n], r, cfg)
	l2, _ := curve.MSM(powers[1:], r, cfg)
	return l1, l2
}

// LinearCombinationG2 is the G2 analogue of LinearCombinationG1, used to
// verify powers of tau in G2 against the G1 linear combination.
func LinearCombinationG2(powers []curve.G2Affine) (curve.G2Affine, curve.G2Affine) {
	n := len(powers) - 1
	r := randomScalars(n)

	l1 := msmG2(powers[:n], r)
	l2 := msmG2(powers[1:], r)
	return l1, l2
}

func msmG2(bases []curve.G2Affine, scalars []curve.Fr) curve.G2Affine {
	var sum curve.G2Affine
	first := true
	for i := range bases {
		bi := curve.ScalarToBigInt(&scalars[i])
		var p curve.G2Affine
		p.Set(&bases[i])
		p.ScalarMultiplication(&p, bi)
		if first {
			sum = p
			first = false
			continue
		}
		sum.Add(&sum, &p)
	}
	return sum
}

// RLCPair draws one random scalar per index and returns the matching
// random linear combination of newPts and oldPts, for checking that two
// equal-length G1 sequences were scaled by the same secret without a
// pairing per element.
func RLCPair(newPts, oldPts []curve.G1Affine) (curve.G1Affine, curve.G1Affine) {
	n := len(newPts)
	if len(oldPts) < n {
		n = len(oldPts)
	}
	r := randomScalars(n)
	cfg := curve.MSMConfig{}
	newComb, _ := curve.MSM(newPts[:n], r, cfg)
	oldComb, _ := curve.MSM(oldPts[:n], r, cfg)
	return newComb, oldComb
}

// Merge truncates a contribution's L or Z query vector and its
// predecessor's to their common length, so the RLC update check compares
// index-aligned entries.
func Merge(cur, prev []curve.G1Affine) ([]curve.G1Affine, []curve.G1Affine) {
	n := len(cur)
	if len(prev) < n {
		n = len(prev)
	}
	return cur[:n], prev[:n]
}
