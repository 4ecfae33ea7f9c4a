// Package phase1 implements the powers-of-tau accumulator engine: the
// universal, circuit-independent first phase of a Groth16 (or Marlin)
// trusted setup. A Contribution holds the six-sequence accumulator state
// and the three contributors' PoK public keys (tau, alpha, beta) that
// bind this state to its predecessor.
package phase1

import (
	"math/big"

	"github.com/powersoftau/ceremony-core/ceremonyconfig"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/transcript"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/utils"
)

// Contribution is one accumulator state in a powers-of-tau transcript:
// the challenge-file body plus the PoK that proves how it was derived
// from its predecessor. ProvingSystem's zero value is
// ceremonyconfig.Groth16, so a Contribution built without setting it
// behaves exactly as the original Groth16-only accumulator did.
type Contribution struct {
	ProvingSystem ceremonyconfig.ProvingSystem
	Parameters    struct {
		G1 struct {
			Tau      []curve.G1Affine // {[tau^0]_1, ..., [tau^(2n-2)]_1}
			AlphaTau []curve.G1Affine // {alpha*[tau^0]_1, ..., alpha*[tau^(n-1)]_1}; Groth16 only
			BetaTau  []curve.G1Affine // {beta*[tau^0]_1, ..., beta*[tau^(n-1)]_1}; Groth16 only
		}
		G2 struct {
			Tau  []curve.G2Affine // {[tau^0]_2, ..., [tau^(n-1)]_2}
			Beta curve.G2Affine   // [beta]_2; Groth16 only
		}
	}
	PublicKeys struct {
		Tau, Alpha, Beta utils.PublicKey // Alpha, Beta unused outside Groth16
	}
	Hash []byte // Blake2b-512 digest of this contribution's serialized body
}

// Initialize allocates a fresh identity-state accumulator at the given
// power: all sequences filled with generators, as if tau = (alpha = beta
// =) 1. This is the state `new` writes before any contributor has run.
// Marlin and PLONK ceremonies (c.ProvingSystem set accordingly before
// calling Initialize) carry no alpha/beta sequences at all.
func (c *Contribution) Initialize(power int) {
	n := 1 << uint(power)

	var one curve.Fr
	one.SetOne()
	c.PublicKeys.Tau = utils.GenPublicKey(one, nil, 1)

	g1, g2 := curve.Generators()

	c.Parameters.G1.Tau = make([]curve.G1Affine, 2*n-1)
	c.Parameters.G2.Tau = make([]curve.G2Affine, n)
	for i := range c.Parameters.G1.Tau {
		c.Parameters.G1.Tau[i].Set(&g1)
	}
	for i := range c.Parameters.G2.Tau {
		c.Parameters.G2.Tau[i].Set(&g2)
	}

	if c.ProvingSystem.HasAlphaBeta() {
		c.PublicKeys.Alpha = utils.GenPublicKey(one, nil, 2)
		c.PublicKeys.Beta = utils.GenPublicKey(one, nil, 3)
		c.Parameters.G1.AlphaTau = make([]curve.G1Affine, n)
		c.Parameters.G1.BetaTau = make([]curve.G1Affine, n)
		for i := range c.Parameters.G1.AlphaTau {
			c.Parameters.G1.AlphaTau[i].Set(&g1)
			c.Parameters.G1.BetaTau[i].Set(&g1)
		}
		c.Parameters.G2.Beta.Set(&g2)
	}

	c.Hash = HashContribution(c)
}

// Contribute folds a fresh contributor's (tau, alpha, beta) secrets into
// prev's accumulator state, mutating c into the next transcript entry.
// Before returning, contributeWithScalars zeroes 32-byte renderings of
// the three scalars; the curve.Fr values themselves and the power tables
// derived from them are not overwritten.
func (c *Contribution) Contribute(prev *Contribution) error {
	var tau, alpha, beta curve.Fr
	tau.SetRandom()
	alpha.SetRandom()
	beta.SetRandom()
	return c.contributeWithScalars(prev, tau, alpha, beta)
}

// ContributeWithBeacon folds the (tau, alpha, beta) secrets deterministically
// derived from a delayed beacon digest into prev's accumulator state. Used
// for the final, publicly-reproducible contribution that closes a ceremony:
// anyone can recompute the same scalars from the beacon and check the result
// matches, which is impossible for an ordinary participant's contribution.
func (c *Contribution) ContributeWithBeacon(prev *Contribution, delayed []byte) error {
	scalars := transcript.BeaconScalars(delayed, 3)
	return c.contributeWithScalars(prev, scalars[0], scalars[1], scalars[2])
}

func (c *Contribution) contributeWithScalars(prev *Contribution, tau, alpha, beta curve.Fr) error {
	if tau.IsZero() {
		return ceremonyerr.New(ceremonyerr.ZeroScalar, "tau", -1, nil)
	}
	if prev.ProvingSystem.HasAlphaBeta() {
		if alpha.IsZero() {
			return ceremonyerr.New(ceremonyerr.ZeroScalar, "alpha", -1, nil)
		}
		if beta.IsZero() {
			return ceremonyerr.New(ceremonyerr.ZeroScalar, "beta", -1, nil)
		}
	}

	c.ProvingSystem = prev.ProvingSystem
	n := len(prev.Parameters.G2.Tau)

	c.PublicKeys.Tau = utils.GenPublicKey(tau, prev.Hash, 1)

	taus := utils.Powers(tau, 2*n-1)
	c.Parameters.G1.Tau = scaleG1Seq(prev.Parameters.G1.Tau, taus)
	c.Parameters.G2.Tau = scaleG2Seq(prev.Parameters.G2.Tau, taus[:n])

	if c.ProvingSystem.HasAlphaBeta() {
		c.PublicKeys.Alpha = utils.GenPublicKey(alpha, prev.Hash, 2)
		c.PublicKeys.Beta = utils.GenPublicKey(beta, prev.Hash, 3)

		alphaTau := make([]curve.Fr, n)
		betaTau := make([]curve.Fr, n)
		for i := 0; i < n; i++ {
			alphaTau[i].Mul(&taus[i], &alpha)
			betaTau[i].Mul(&taus[i], &beta)
		}
		c.Parameters.G1.AlphaTau = scaleG1Seq(prev.Parameters.G1.AlphaTau, alphaTau)
		c.Parameters.G1.BetaTau = scaleG1Seq(prev.Parameters.G1.BetaTau, betaTau)

		c.Parameters.G2.Beta.Set(&prev.Parameters.G2.Beta)
		betaBI := curve.ScalarToBigInt(&beta)
		c.Parameters.G2.Beta.ScalarMultiplication(&c.Parameters.G2.Beta, betaBI)
	}

	c.Hash = HashContribution(c)

	var tauBytes, alphaBytes, betaBytes [32]byte
	tau.BigInt(new(big.Int)).FillBytes(tauBytes[:])
	alpha.BigInt(new(big.Int)).FillBytes(alphaBytes[:])
	beta.BigInt(new(big.Int)).FillBytes(betaBytes[:])
	transcript.Scrub(tauBytes[:])
	transcript.Scrub(alphaBytes[:])
	transcript.Scrub(betaBytes[:])
	return nil
}

func scaleG1Seq(points []curve.G1Affine, scalars []curve.Fr) []curve.G1Affine {
	out := make([]curve.G1Affine, len(points))
	for i := range points {
		bi := curve.ScalarToBigInt(&scalars[i])
		out[i].ScalarMultiplication(&points[i], bi)
	}
	return out
}

func scaleG2Seq(points []curve.G2Affine, scalars []curve.Fr) []curve.G2Affine {
	out := make([]curve.G2Affine, len(points))
	for i := range points {
		bi := curve.ScalarToBigInt(&scalars[i])
		out[i].ScalarMultiplication(&points[i], bi)
	}
	return out
}
