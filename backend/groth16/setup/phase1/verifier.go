package phase1

import (
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/utils"
)

// Verify checks that c is a validly-derived contribution following prev:
// knowledge of the tau/alpha/beta secrets (PoK), that c's sequences are
// prev's scaled consistently by those secrets, that the sequences
// themselves are genuine consecutive powers (the RLC check), and that
// c's own Hash field matches its body.
func (c *Contribution) Verify(prev *Contribution) error {
	tauR := utils.GenR(c.PublicKeys.Tau.SG, c.PublicKeys.Tau.SXG, prev.Hash, 1)

	if !utils.SameRatio(c.PublicKeys.Tau.SG, c.PublicKeys.Tau.SXG, c.PublicKeys.Tau.XR, tauR) {
		return ceremonyerr.New(ceremonyerr.PokInvalid, "tau", -1, nil)
	}
	if !utils.SameRatio(c.Parameters.G1.Tau[1], prev.Parameters.G1.Tau[1], tauR, c.PublicKeys.Tau.XR) {
		return ceremonyerr.New(ceremonyerr.RatioInvalid, "tau_g1", 1, nil)
	}
	if !utils.SameRatio(c.PublicKeys.Tau.SG, c.PublicKeys.Tau.SXG, c.Parameters.G2.Tau[1], prev.Parameters.G2.Tau[1]) {
		return ceremonyerr.New(ceremonyerr.RatioInvalid, "tau_g2", 1, nil)
	}

	if c.ProvingSystem.HasAlphaBeta() {
		alphaR := utils.GenR(c.PublicKeys.Alpha.SG, c.PublicKeys.Alpha.SXG, prev.Hash, 2)
		betaR := utils.GenR(c.PublicKeys.Beta.SG, c.PublicKeys.Beta.SXG, prev.Hash, 3)

		if !utils.SameRatio(c.PublicKeys.Alpha.SG, c.PublicKeys.Alpha.SXG, c.PublicKeys.Alpha.XR, alphaR) {
			return ceremonyerr.New(ceremonyerr.PokInvalid, "alpha", -1, nil)
		}
		if !utils.SameRatio(c.PublicKeys.Beta.SG, c.PublicKeys.Beta.SXG, c.PublicKeys.Beta.XR, betaR) {
			return ceremonyerr.New(ceremonyerr.PokInvalid, "beta", -1, nil)
		}
		if !utils.SameRatio(c.Parameters.G1.AlphaTau[0], prev.Parameters.G1.AlphaTau[0], alphaR, c.PublicKeys.Alpha.XR) {
			return ceremonyerr.New(ceremonyerr.RatioInvalid, "alpha_tau_g1", 0, nil)
		}
		if !utils.SameRatio(c.Parameters.G1.BetaTau[0], prev.Parameters.G1.BetaTau[0], betaR, c.PublicKeys.Beta.XR) {
			return ceremonyerr.New(ceremonyerr.RatioInvalid, "beta_tau_g1", 0, nil)
		}
		if !utils.SameRatio(c.PublicKeys.Beta.SG, c.PublicKeys.Beta.SXG, c.Parameters.G2.Beta, prev.Parameters.G2.Beta) {
			return ceremonyerr.New(ceremonyerr.RatioInvalid, "beta_g2", -1, nil)
		}
	}

	g1, g2 := curve.Generators()
	tauL1, tauL2 := utils.LinearCombinationG1(c.Parameters.G1.Tau)
	if !utils.SameRatio(tauL1, tauL2, c.Parameters.G2.Tau[1], g2) {
		return ceremonyerr.New(ceremonyerr.RatioInvalid, "tau_g1_powers", -1, nil)
	}
	if c.ProvingSystem.HasAlphaBeta() {
		alphaL1, alphaL2 := utils.LinearCombinationG1(c.Parameters.G1.AlphaTau)
		if !utils.SameRatio(alphaL1, alphaL2, c.Parameters.G2.Tau[1], g2) {
			return ceremonyerr.New(ceremonyerr.RatioInvalid, "alpha_tau_g1_powers", -1, nil)
		}
		betaL1, betaL2 := utils.LinearCombinationG1(c.Parameters.G1.BetaTau)
		if !utils.SameRatio(betaL1, betaL2, c.Parameters.G2.Tau[1], g2) {
			return ceremonyerr.New(ceremonyerr.RatioInvalid, "beta_tau_g1_powers", -1, nil)
		}
	}
	tau2L1, tau2L2 := utils.LinearCombinationG2(c.Parameters.G2.Tau)
	if !utils.SameRatio(c.Parameters.G1.Tau[1], g1, tau2L1, tau2L2) {
		return ceremonyerr.New(ceremonyerr.RatioInvalid, "tau_g2_powers", -1, nil)
	}

	h := HashContribution(c)
	for i := range h {
		if h[i] != c.Hash[i] {
			return ceremonyerr.New(ceremonyerr.HashMismatch, "contribution", -1, nil)
		}
	}

	return nil
}
