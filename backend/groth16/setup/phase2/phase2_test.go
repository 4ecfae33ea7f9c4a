package phase2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
)

func one(wireID int) r1cs.Term {
	var c curve.Fr
	c.SetOne()
	return r1cs.Term{WireID: wireID, Coefficient: c}
}

// squareCircuit repeats x*x = y over four constraints, so the domain size
// is m = 4 and the H query has m-1 = 3 entries, enough for the chunk
// tests to split into several chunks.
func squareCircuit() *r1cs.System {
	sq := r1cs.Constraint{A: []r1cs.Term{one(2)}, B: []r1cs.Term{one(2)}, C: []r1cs.Term{one(1)}}
	return &r1cs.System{
		NbPublic:    1,
		NbSecret:    1,
		Constraints: []r1cs.Constraint{sq, sq, sq, sq},
	}
}

func preparedChain(t *testing.T, n int) []Contribution {
	var p1 phase1.Contribution
	p1.Initialize(4)

	chain := make([]Contribution, n)
	chain[0].PreparePhase(&p1, squareCircuit())
	for i := 1; i < n; i++ {
		chain[i].Contribute(&chain[i-1])
		require.NoError(t, chain[i].Verify(&chain[i-1]))
	}
	return chain
}

func TestPreparePhaseInitialDeltaIsIdentity(t *testing.T) {
	var p1 phase1.Contribution
	p1.Initialize(4)

	var contrib Contribution
	evals := contrib.PreparePhase(&p1, squareCircuit())

	g1, g2 := curve.Generators()
	assert.True(t, contrib.Parameters.G1.Delta.Equal(&g1))
	assert.True(t, contrib.Parameters.G2.Delta.Equal(&g2))
	assert.NotEmpty(t, evals.G1.A)
	assert.NotEmpty(t, evals.G1.VKK)
}

func TestContributeAndVerifyChain(t *testing.T) {
	chain := preparedChain(t, 4)
	assert.False(t, chain[1].Parameters.G1.Delta.Equal(&chain[0].Parameters.G1.Delta))
	assert.NoError(t, chain[3].Verify(&chain[2]))
}

func TestVerifyRejectsTamperedDelta(t *testing.T) {
	chain := preparedChain(t, 2)
	tampered := chain[1]
	var two curve.Fr
	two.SetUint64(2)
	tampered.Parameters.G1.Delta.ScalarMultiplication(&tampered.Parameters.G1.Delta, curve.ScalarToBigInt(&two))

	err := tampered.Verify(&chain[0])
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.RatioInvalid) || ceremonyerr.As(err, ceremonyerr.HashMismatch))
}

func TestVerifyRejectsHashMismatch(t *testing.T) {
	chain := preparedChain(t, 2)
	tampered := chain[1]
	tampered.Hash = append([]byte(nil), tampered.Hash...)
	tampered.Hash[0] ^= 0xff

	err := tampered.Verify(&chain[0])
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.HashMismatch))
}

func TestContributionRoundTripsThroughWire(t *testing.T) {
	chain := preparedChain(t, 2)

	var buf bytes.Buffer
	_, err := chain[1].WriteTo(&buf)
	require.NoError(t, err)

	var decoded Contribution
	_, err = decoded.ReadFrom(&buf)
	require.NoError(t, err)

	assert.True(t, chain[1].Parameters.G1.Delta.Equal(&decoded.Parameters.G1.Delta))
	assert.Equal(t, chain[1].Hash, decoded.Hash)
	require.NoError(t, decoded.Verify(&chain[0]))
}

func TestEvaluationsRoundTripThroughWire(t *testing.T) {
	var p1 phase1.Contribution
	p1.Initialize(4)
	var contrib Contribution
	evals := contrib.PreparePhase(&p1, squareCircuit())

	var buf bytes.Buffer
	_, err := evals.WriteTo(&buf)
	require.NoError(t, err)

	var decoded Evaluations
	_, err = decoded.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, len(evals.G1.A), len(decoded.G1.A))
	for i := range evals.G1.A {
		assert.True(t, evals.G1.A[i].Equal(&decoded.G1.A[i]))
	}
}

func TestSplitAndCombineRoundTrip(t *testing.T) {
	chain := preparedChain(t, 2)
	full := chain[1]

	chunkSize := len(full.Parameters.G1.Z) / 2
	require.NotZero(t, chunkSize)

	chunks := Split(&full, chunkSize)
	combined, err := Combine(chunks, &full)
	require.NoError(t, err)

	require.Equal(t, len(full.Parameters.G1.Z), len(combined.Parameters.G1.Z))
	for i := range full.Parameters.G1.Z {
		want := full.Parameters.G1.Z[i]
		got := combined.Parameters.G1.Z[i]
		assert.True(t, want.Equal(&got), "z[%d] mismatch", i)
	}
}

func TestCombineRejectsNonContiguousChunks(t *testing.T) {
	chain := preparedChain(t, 2)
	full := chain[1]

	chunks := Split(&full, len(full.Parameters.G1.Z)/2)
	require.True(t, len(chunks) >= 2)
	chunks[1].Start++ // break boundary continuity

	_, err := Combine(chunks, &full)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.ChunkBoundaryMismatch))
}
