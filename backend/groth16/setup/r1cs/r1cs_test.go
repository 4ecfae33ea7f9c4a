package r1cs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersoftau/ceremony-core/curve"
)

// squareCircuit builds x*x = y over wires [one, x, y]: A = {x}, B = {x},
// C = {y}.
func squareCircuit() System {
	var one curve.Fr
	one.SetOne()
	return System{
		Constraints: []Constraint{
			{
				A: []Term{{WireID: 1, Coefficient: one}},
				B: []Term{{WireID: 1, Coefficient: one}},
				C: []Term{{WireID: 2, Coefficient: one}},
			},
		},
		NbPublic:   1,
		NbSecret:   1,
		NbInternal: 0,
	}
}

func TestNbWiresAndNbConstraints(t *testing.T) {
	sys := squareCircuit()
	assert.Equal(t, 3, sys.NbWires())
	assert.Equal(t, 1, sys.NbConstraints())
}

func TestEvalComputesLinearCombination(t *testing.T) {
	sys := squareCircuit()

	var one, three, nine curve.Fr
	one.SetOne()
	three.SetUint64(3)
	nine.SetUint64(9)

	assignment := []curve.Fr{one, three, nine}

	a := Eval(sys.Constraints[0].A, assignment)
	b := Eval(sys.Constraints[0].B, assignment)
	c := Eval(sys.Constraints[0].C, assignment)

	assert.True(t, a.Equal(&three))
	assert.True(t, b.Equal(&three))
	assert.True(t, c.Equal(&nine))

	var ab curve.Fr
	ab.Mul(&a, &b)
	assert.True(t, ab.Equal(&c))
}

func TestSystemRoundTripsThroughWire(t *testing.T) {
	sys := squareCircuit()

	var buf bytes.Buffer
	n, err := sys.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)

	var decoded System
	_, err = decoded.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, sys.NbPublic, decoded.NbPublic)
	require.Equal(t, sys.NbSecret, decoded.NbSecret)
	require.Equal(t, sys.NbInternal, decoded.NbInternal)
	require.Len(t, decoded.Constraints, len(sys.Constraints))

	want := sys.Constraints[0].C[0].Coefficient
	got := decoded.Constraints[0].C[0].Coefficient
	assert.True(t, want.Equal(&got))
}
