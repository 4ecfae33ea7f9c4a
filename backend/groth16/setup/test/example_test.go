package test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/keys"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase2"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/curve"
)

// squareCircuit is the minimal R1CS a circuit-compilation toolchain would
// hand phase 2: one constraint x*x = y, with x secret and y public. Wire
// 0 is the constant wire, 1 is y (public), 2 is x (secret).
func squareCircuit() *r1cs.System {
	one := func(wireID int) r1cs.Term {
		var coeff curve.Fr
		coeff.SetOne()
		return r1cs.Term{WireID: wireID, Coefficient: coeff}
	}
	return &r1cs.System{
		NbPublic: 1,
		NbSecret: 1,
		Constraints: []r1cs.Constraint{
			{
				A: []r1cs.Term{one(2)},
				B: []r1cs.Term{one(2)},
				C: []r1cs.Term{one(1)},
			},
		},
	}
}

func TestSetupCircuit(t *testing.T) {
	nContributionsPhase1 := 3
	power := 4
	contributionsPhase1 := make([]phase1.Contribution, nContributionsPhase1)
	contributionsPhase1[0].Initialize(power)

	for i := 1; i < nContributionsPhase1; i++ {
		require.NoError(t, contributionsPhase1[i].Contribute(&contributionsPhase1[i-1]))
		require.NoError(t, contributionsPhase1[i].Verify(&contributionsPhase1[i-1]))
	}

	cs := squareCircuit()

	nContributionsPhase2 := 3
	contributionsPhase2 := make([]phase2.Contribution, nContributionsPhase2)
	evals := contributionsPhase2[0].PreparePhase(&contributionsPhase1[nContributionsPhase1-1], cs)

	for i := 1; i < nContributionsPhase2; i++ {
		contributionsPhase2[i].Contribute(&contributionsPhase2[i-1])
		require.NoError(t, contributionsPhase2[i].Verify(&contributionsPhase2[i-1]))
	}

	pk, vk := keys.ExtractKeys(
		&contributionsPhase1[nContributionsPhase1-1],
		&contributionsPhase2[nContributionsPhase2-1],
		&evals,
		cs.NbConstraints(),
	)

	var bufPK, bufVK bytes.Buffer
	_, err := pk.WriteTo(&bufPK, false)
	require.NoError(t, err)
	_, err = vk.WriteTo(&bufVK, false)
	require.NoError(t, err)

	var pkRead keys.ProvingKey
	var vkRead keys.VerifyingKey
	_, err = pkRead.ReadFrom(&bufPK)
	require.NoError(t, err)
	_, err = vkRead.ReadFrom(&bufVK)
	require.NoError(t, err)

	require.True(t, pk.G1.Alpha.Equal(&pkRead.G1.Alpha))
	require.True(t, vk.G1.Alpha.Equal(&vkRead.G1.Alpha))
	require.True(t, vk.G2.Gamma.Equal(&vkRead.G2.Gamma))
}

// TestChunkedPhase1RoundTrip checks that splitting a contribution into
// chunks and recombining them reproduces the same accumulator state a
// full-mode run would have produced.
func TestChunkedPhase1RoundTrip(t *testing.T) {
	power := 4
	var c0, c1 phase1.Contribution
	c0.Initialize(power)
	require.NoError(t, c1.Contribute(&c0))

	chunkSize := len(c1.Parameters.G1.Tau) / 3
	require.NotZero(t, chunkSize)

	chunks := phase1.Split(&c1, chunkSize)
	combined, err := phase1.Combine(chunks, &c1)
	require.NoError(t, err)

	require.Equal(t, len(c1.Parameters.G1.Tau), len(combined.Parameters.G1.Tau))
	for i := range c1.Parameters.G1.Tau {
		want := c1.Parameters.G1.Tau[i]
		got := combined.Parameters.G1.Tau[i]
		require.True(t, want.Equal(&got), "tau_g1[%d] mismatch", i)
	}
}
