// Package mpcsetup is a bn254-only convenience entry point into the
// phase-2 engine: it bootstraps a tiny built-in circuit and a minimal
// phase-1 accumulator so that a caller without a real circuit compiled
// yet can still exercise the phase-2 contribution/PoK plumbing end to
// end (smoke-testing a deployment, generating fixtures).
package mpcsetup

import (
	"io"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase2"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/utils"
	"github.com/powersoftau/ceremony-core/curve"
)

// bootstrapPower is the phase-1 power used for the built-in circuit; it
// only needs to exceed the toy circuit's constraint count.
const bootstrapPower = 4

// Phase2 wraps a phase2.Contribution with the options that govern how
// its secret scalar is drawn.
type Phase2 struct {
	options    *Phase2Options
	Parameters phase2.Contribution
	evals      phase2.Evaluations
}

// NewPhase2 constructs a Phase2 ready to GenerateContribution. A nil
// opts falls back to DefaultPhase2Options.
func NewPhase2(opts *Phase2Options) *Phase2 {
	if opts == nil {
		opts = DefaultPhase2Options()
	}
	return &Phase2{options: opts}
}

func bootstrapCircuit() *r1cs.System {
	// x * x = y, a single multiplication gate: wire 0 is the constant
	// wire, wire 1 is the public output y, wire 2 is the secret input x.
	var one curve.Fr
	one.SetOne()
	return &r1cs.System{
		NbPublic:   1,
		NbSecret:   1,
		NbInternal: 0,
		Constraints: []r1cs.Constraint{
			{
				A: []r1cs.Term{{WireID: 2, Coefficient: one}},
				B: []r1cs.Term{{WireID: 2, Coefficient: one}},
				C: []r1cs.Term{{WireID: 1, Coefficient: one}},
			},
		},
	}
}

// GenerateContribution draws a fresh phase-2 secret via options.RandomSource
// and computes the resulting contribution against the built-in circuit.
func (p *Phase2) GenerateContribution() error {
	var p1 phase1.Contribution
	p1.Initialize(bootstrapPower)

	var base phase2.Contribution
	p.evals = base.PreparePhase(&p1, bootstrapCircuit())

	seed, err := readSeed(p.options.RandomSource)
	if err != nil {
		return err
	}
	var d curve.Fr
	d.SetBytes(seed)
	if d.IsZero() {
		d.SetOne()
	}

	p.Parameters = base
	contributeWithScalar(&p.Parameters, &base, d)
	return nil
}

func readSeed(r io.Reader) ([]byte, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(r, buf); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf, nil
}

// contributeWithScalar runs the same fold phase2.Contribution.Contribute
// does, but with an explicit scalar rather than one drawn internally, so
// this package's options.RandomSource is the only source of randomness.
func contributeWithScalar(c *phase2.Contribution, prev *phase2.Contribution, d curve.Fr) {
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

	c.Hash = phase2.HashContribution(c)
}
