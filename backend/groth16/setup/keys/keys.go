// Package keys extracts the final Groth16 proving and verifying keys
// from the finalized phase-1 and phase-2 transcripts: the last
// contribution of each, plus the circuit's Evaluations.
package keys

import (
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase2"
)

type ProvingKey struct {
	Domain curve.Domain
	// [alpha]_1, [beta]_1, [delta]_1, [A(t)]_1, [B(t)]_1, [K(t)]_1, [Z(t)]_1
	G1 struct {
		Alpha, Beta, Delta curve.G1Affine
		A, B, Z            []curve.G1Affine
		K                  []curve.G1Affine // indexed by private wire
	}

	// [beta]_2, [delta]_2, [B(t)]_2
	G2 struct {
		Beta, Delta curve.G2Affine
		B           []curve.G2Affine
	}

	// if InfinityA[i] == true, G1.A[i] is the point at infinity and was
	// filtered out rather than encoded.
	InfinityA, InfinityB     []bool
	NbInfinityA, NbInfinityB uint64
}

type VerifyingKey struct {
	// [alpha]_1, [Kvk]_1
	G1 struct {
		Alpha, Beta, Delta curve.G1Affine
		K                  []curve.G1Affine
	}

	// [beta]_2, [delta]_2, [gamma]_2
	G2 struct {
		Beta, Delta, Gamma curve.G2Affine
	}
}

// ExtractKeys derives the proving and verifying key from the finalized
// phase-1 accumulator, the finalized phase-2 contribution, the circuit's
// Evaluations and its constraint count (which fixes the FFT domain).
// Gamma is fixed to 1 (no separate gamma-trapdoor contributor round);
// see the design ledger.
func ExtractKeys(srs1 *phase1.Contribution, srs2 *phase2.Contribution, evals *phase2.Evaluations, nConstraints int) (pk ProvingKey, vk VerifyingKey) {
	_, g2 := curve.Generators()

	pk.Domain = *curve.NewDomain(uint64(nConstraints))
	pk.G1.Alpha.Set(&srs1.Parameters.G1.AlphaTau[0])
	pk.G1.Beta.Set(&srs1.Parameters.G1.BetaTau[0])
	pk.G1.Delta.Set(&srs2.Parameters.G1.Delta)
	pk.G1.Z = srs2.Parameters.G1.Z

	pk.G1.K = srs2.Parameters.G1.L
	pk.G2.Beta.Set(&srs1.Parameters.G2.Beta)
	pk.G2.Delta.Set(&srs2.Parameters.G2.Delta)

	nWires := len(evals.G1.A)
	pk.InfinityA = make([]bool, nWires)
	A := make([]curve.G1Affine, nWires)
	j := 0
	for i, e := range evals.G1.A {
		if e.IsInfinity() {
			pk.InfinityA[i] = true
			continue
		}
		A[j] = evals.G1.A[i]
		j++
	}
	pk.G1.A = A[:j]
	pk.NbInfinityA = uint64(nWires - j)

	pk.InfinityB = make([]bool, nWires)
	B := make([]curve.G1Affine, nWires)
	j = 0
	for i, e := range evals.G1.B {
		if e.IsInfinity() {
			pk.InfinityB[i] = true
			continue
		}
		B[j] = evals.G1.B[i]
		j++
	}
	pk.G1.B = B[:j]
	pk.NbInfinityB = uint64(nWires - j)

	B2 := make([]curve.G2Affine, nWires)
	j = 0
	for i, e := range evals.G2.B {
		if e.IsInfinity() {
			continue
		}
		B2[j] = evals.G2.B[i]
		j++
	}
	pk.G2.B = B2[:j]

	vk.G1.Alpha.Set(&srs1.Parameters.G1.AlphaTau[0])
	vk.G1.Beta.Set(&srs1.Parameters.G1.BetaTau[0])
	vk.G1.Delta.Set(&srs2.Parameters.G1.Delta)
	vk.G2.Beta.Set(&srs1.Parameters.G2.Beta)
	vk.G2.Delta.Set(&srs2.Parameters.G2.Delta)
	vk.G2.Gamma.Set(&g2)
	vk.G1.K = evals.G1.VKK

	return pk, vk
}
