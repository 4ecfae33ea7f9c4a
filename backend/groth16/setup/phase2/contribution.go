// Package phase2 specializes a phase-1 universal accumulator to a
// specific circuit's Groth16 parameters: the delta trapdoor and the H
// (quotient) and L (private-witness) query vectors it scales.
package phase2

import (
	"github.com/consensys/gnark-crypto/ecc"

	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/transcript"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/utils"
)

// Contribution is one phase-2 transcript entry: the circuit-specific
// accumulator state (delta, H and L queries) plus the PoK that binds it
// to its predecessor.
type Contribution struct {
	PublicKey  utils.PublicKey
	Parameters struct {
		G1 struct {
			Delta curve.G1Affine
			L     []curve.G1Affine // private-wire K query, scaled by delta^-1
			Z     []curve.G1Affine // H (quotient) query, scaled by delta^-1
		}
		G2 struct {
			Delta curve.G2Affine
		}
	}
	Hash []byte
}

// PreparePhase evaluates a circuit's R1CS against a phase-1 accumulator
// (already folded by every phase-1 contributor) at the ceremony-start
// delta = 1, producing both the circuit-dependent Evaluations and this
// Contribution's initial state.
func (c *Contribution) PreparePhase(p1 *phase1.Contribution, cs *r1cs.System) Evaluations {
	m := int(ecc.NextPowerOfTwo(uint64(cs.NbConstraints())))

	lagrangeG1 := utils.LagrangeCoeffsG1(p1.Parameters.G1.Tau, m)
	lagrangeG2 := utils.LagrangeCoeffsG2(p1.Parameters.G2.Tau, m)
	lagrangeAlphaG1 := utils.LagrangeCoeffsG1(p1.Parameters.G1.AlphaTau, m)
	lagrangeBetaG1 := utils.LagrangeCoeffsG1(p1.Parameters.G1.BetaTau, m)

	nbWires := cs.NbWires()
	A := make([]curve.G1Affine, nbWires)
	B1 := make([]curve.G1Affine, nbWires)
	B2 := make([]curve.G2Affine, nbWires)
	K := make([]curve.G1Affine, nbWires)

	for j, constraint := range cs.Constraints {
		if j >= m {
			break
		}
		for _, t := range constraint.A {
			accumulate1(&A[t.WireID], &lagrangeG1[j], &t.Coefficient)
			accumulate1(&K[t.WireID], &lagrangeBetaG1[j], &t.Coefficient)
		}
		for _, t := range constraint.B {
			accumulate1(&B1[t.WireID], &lagrangeG1[j], &t.Coefficient)
			accumulate2(&B2[t.WireID], &lagrangeG2[j], &t.Coefficient)
			accumulate1(&K[t.WireID], &lagrangeAlphaG1[j], &t.Coefficient)
		}
		for _, t := range constraint.C {
			accumulate1(&K[t.WireID], &lagrangeG1[j], &t.Coefficient)
		}
	}

	nbPublic := cs.NbPublic + 1 // + constant wire
	var evals Evaluations
	evals.G1.A = A
	evals.G1.B = B1
	evals.G2.B = B2
	evals.G1.VKK = K[:nbPublic]

	c.Parameters.G1.L = append([]curve.G1Affine(nil), K[nbPublic:]...)

	tauLen := len(p1.Parameters.G1.Tau)
	hLen := m - 1
	if tauLen < m+hLen {
		hLen = tauLen - m
	}
	// Bit-reverse over the full power-of-two length m, then drop the tail:
	// BitReverseG1 indexes by log2(len), so an (m-1)-long slice would not
	// be permuted at all.
	H := make([]curve.G1Affine, m)
	for i := 0; i < hLen; i++ {
		H[i].Sub(&p1.Parameters.G1.Tau[i+m], &p1.Parameters.G1.Tau[i])
	}
	utils.BitReverseG1(H)
	c.Parameters.G1.Z = H[:hLen]

	g1, g2 := curve.Generators()
	c.Parameters.G1.Delta.Set(&g1)
	c.Parameters.G2.Delta.Set(&g2)

	var one curve.Fr
	one.SetOne()
	c.PublicKey = utils.GenPublicKey(one, nil, 1)
	c.Hash = HashContribution(c)

	return evals
}

func accumulate1(dst *curve.G1Affine, base *curve.G1Affine, coeff *curve.Fr) {
	if coeff.IsZero() {
		return
	}
	var p curve.G1Affine
	p.ScalarMultiplication(base, curve.ScalarToBigInt(coeff))
	dst.Add(dst, &p)
}

func accumulate2(dst *curve.G2Affine, base *curve.G2Affine, coeff *curve.Fr) {
	if coeff.IsZero() {
		return
	}
	var p curve.G2Affine
	p.ScalarMultiplication(base, curve.ScalarToBigInt(coeff))
	dst.Add(dst, &p)
}

// Contribute folds a fresh contributor's delta secret into prev's phase-2
// state: delta *= d, and the H and L queries are scaled by d^-1 so that
// the proving key built from the final state stays consistent.
func (c *Contribution) Contribute(prev *Contribution) {
	var d curve.Fr
	d.SetRandom()
	for d.IsZero() {
		d.SetRandom()
	}

	c.PublicKey = utils.GenPublicKey(d, prev.Hash, 1)

	dBI := curve.ScalarToBigInt(&d)
	c.Parameters.G1.Delta.Set(&prev.Parameters.G1.Delta)
	c.Parameters.G1.Delta.ScalarMultiplication(&c.Parameters.G1.Delta, dBI)
	c.Parameters.G2.Delta.Set(&prev.Parameters.G2.Delta)
	c.Parameters.G2.Delta.ScalarMultiplication(&c.Parameters.G2.Delta, dBI)

	var dInv curve.Fr
	dInv.Inverse(&d)
	dInvBI := curve.ScalarToBigInt(&dInv)

	c.Parameters.G1.L = make([]curve.G1Affine, len(prev.Parameters.G1.L))
	for i := range prev.Parameters.G1.L {
		c.Parameters.G1.L[i].ScalarMultiplication(&prev.Parameters.G1.L[i], dInvBI)
	}
	c.Parameters.G1.Z = make([]curve.G1Affine, len(prev.Parameters.G1.Z))
	for i := range prev.Parameters.G1.Z {
		c.Parameters.G1.Z[i].ScalarMultiplication(&prev.Parameters.G1.Z[i], dInvBI)
	}

	c.Hash = HashContribution(c)

	var dBytes [32]byte
	dBI.FillBytes(dBytes[:])
	transcript.Scrub(dBytes[:])
}
