package phase2

import (
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/utils"
)

// Verify checks that c validly follows prev: knowledge of the delta
// secret, that delta_g1/delta_g2 are prev's scaled by that secret, and
// that the H and L queries were scaled consistently (via the RLC merge
// check), then checks c's own hash.
func (c *Contribution) Verify(prev *Contribution) error {
	deltaR := utils.GenR(c.PublicKey.SG, c.PublicKey.SXG, prev.Hash, 1)

	if !utils.SameRatio(c.PublicKey.SG, c.PublicKey.SXG, c.PublicKey.XR, deltaR) {
		return ceremonyerr.New(ceremonyerr.PokInvalid, "delta", -1, nil)
	}

	if !utils.SameRatio(c.Parameters.G1.Delta, prev.Parameters.G1.Delta, deltaR, c.PublicKey.XR) {
		return ceremonyerr.New(ceremonyerr.RatioInvalid, "delta_g1", -1, nil)
	}
	if !utils.SameRatio(c.PublicKey.SG, c.PublicKey.SXG, c.Parameters.G2.Delta, prev.Parameters.G2.Delta) {
		return ceremonyerr.New(ceremonyerr.Phase2Inconsistent, "delta_g2", -1, nil)
	}

	L, prevL := utils.Merge(c.Parameters.G1.L, prev.Parameters.G1.L)
	newL, oldL := utils.RLCPair(L, prevL)
	if !utils.SameRatio(newL, oldL, c.Parameters.G2.Delta, prev.Parameters.G2.Delta) {
		return ceremonyerr.New(ceremonyerr.Phase2Inconsistent, "L_query", -1, nil)
	}
	Z, prevZ := utils.Merge(c.Parameters.G1.Z, prev.Parameters.G1.Z)
	newZ, oldZ := utils.RLCPair(Z, prevZ)
	if !utils.SameRatio(newZ, oldZ, c.Parameters.G2.Delta, prev.Parameters.G2.Delta) {
		return ceremonyerr.New(ceremonyerr.Phase2Inconsistent, "H_query", -1, nil)
	}

	h := HashContribution(c)
	for i := range h {
		if h[i] != c.Hash[i] {
			return ceremonyerr.New(ceremonyerr.HashMismatch, "contribution", -1, nil)
		}
	}

	return nil
}
