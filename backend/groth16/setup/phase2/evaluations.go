package phase2

import "github.com/powersoftau/ceremony-core/curve"

// Evaluations are the circuit-dependent, delta-independent quantities
// PreparePhase computes once from the circuit's R1CS and the phase-1
// Lagrange-converted accumulator. They never change across phase-2
// contributors; only the Contribution's delta-scaled L and H queries do.
type Evaluations struct {
	G1 struct {
		A, B []curve.G1Affine
		VKK  []curve.G1Affine // per-public-wire K, for the verifying key
	}
	G2 struct {
		B []curve.G2Affine
	}
}
