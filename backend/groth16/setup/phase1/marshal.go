package phase1

import (
	"bytes"
	"io"

	"github.com/powersoftau/ceremony-core/ceremonyconfig"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/transcript"
)

// body returns the fields that make up a contribution's hashed,
// transmitted payload: the tau PoK public key, the alpha/beta PoK public
// keys and sequences when c.ProvingSystem carries them, and the tau
// sequences, in a fixed order. The Hash field itself is never part of
// its own input.
func (c *Contribution) body() []interface{} {
	items := []interface{}{
		&c.PublicKeys.Tau.SG,
		&c.PublicKeys.Tau.SXG,
		&c.PublicKeys.Tau.XR,
	}
	if c.ProvingSystem.HasAlphaBeta() {
		items = append(items,
			&c.PublicKeys.Alpha.SG, &c.PublicKeys.Alpha.SXG, &c.PublicKeys.Alpha.XR,
			&c.PublicKeys.Beta.SG, &c.PublicKeys.Beta.SXG, &c.PublicKeys.Beta.XR,
		)
	}
	items = append(items, c.Parameters.G1.Tau)
	if c.ProvingSystem.HasAlphaBeta() {
		items = append(items, c.Parameters.G1.AlphaTau, c.Parameters.G1.BetaTau)
	}
	items = append(items, c.Parameters.G2.Tau)
	if c.ProvingSystem.HasAlphaBeta() {
		items = append(items, &c.Parameters.G2.Beta)
	}
	return items
}

func (c *Contribution) WriteTo(writer io.Writer) (int64, error) {
	enc := curve.NewEncoder(writer)
	if err := enc.Encode(uint64(c.ProvingSystem)); err != nil {
		return enc.BytesWritten(), err
	}
	for _, v := range c.body() {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	n, err := writer.Write(c.Hash)
	return enc.BytesWritten() + int64(n), err
}

func (c *Contribution) ReadFrom(reader io.Reader) (int64, error) {
	dec := curve.NewDecoder(reader)

	var ps uint64
	if err := dec.Decode(&ps); err != nil {
		return dec.BytesRead(), err
	}
	c.ProvingSystem = ceremonyconfig.ProvingSystem(ps)

	toDecode := []interface{}{
		&c.PublicKeys.Tau.SG,
		&c.PublicKeys.Tau.SXG,
		&c.PublicKeys.Tau.XR,
	}
	if c.ProvingSystem.HasAlphaBeta() {
		toDecode = append(toDecode,
			&c.PublicKeys.Alpha.SG, &c.PublicKeys.Alpha.SXG, &c.PublicKeys.Alpha.XR,
			&c.PublicKeys.Beta.SG, &c.PublicKeys.Beta.SXG, &c.PublicKeys.Beta.XR,
		)
	}
	toDecode = append(toDecode, &c.Parameters.G1.Tau)
	if c.ProvingSystem.HasAlphaBeta() {
		toDecode = append(toDecode, &c.Parameters.G1.AlphaTau, &c.Parameters.G1.BetaTau)
	}
	toDecode = append(toDecode, &c.Parameters.G2.Tau)
	if c.ProvingSystem.HasAlphaBeta() {
		toDecode = append(toDecode, &c.Parameters.G2.Beta)
	}

	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}

	if err := c.checkPointsInSubgroup(); err != nil {
		return dec.BytesRead(), err
	}

	c.Hash = make([]byte, 64)
	n, err := io.ReadFull(reader, c.Hash)
	return dec.BytesRead() + int64(n), err
}

// checkPointsInSubgroup rejects a decoded contribution carrying any
// point outside the curve's r-torsion subgroup: decoding alone only
// checks that bytes parse into coordinates on the curve, not that they
// land in the subgroup a pairing check assumes.
func (c *Contribution) checkPointsInSubgroup() error {
	if !curve.InSubgroupG1([]curve.G1Affine{c.PublicKeys.Tau.SG, c.PublicKeys.Tau.SXG}) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_pok", -1, nil)
	}
	if !curve.InSubgroupG2([]curve.G2Affine{c.PublicKeys.Tau.XR}) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_pok", -1, nil)
	}
	if !curve.InSubgroupG1(c.Parameters.G1.Tau) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_g1", -1, nil)
	}
	if !curve.InSubgroupG2(c.Parameters.G2.Tau) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_g2", -1, nil)
	}
	if c.ProvingSystem.HasAlphaBeta() {
		if !curve.InSubgroupG1([]curve.G1Affine{c.PublicKeys.Alpha.SG, c.PublicKeys.Alpha.SXG, c.PublicKeys.Beta.SG, c.PublicKeys.Beta.SXG}) {
			return ceremonyerr.New(ceremonyerr.InvalidPoint, "alpha_beta_pok", -1, nil)
		}
		if !curve.InSubgroupG2([]curve.G2Affine{c.PublicKeys.Alpha.XR, c.PublicKeys.Beta.XR}) {
			return ceremonyerr.New(ceremonyerr.InvalidPoint, "alpha_beta_pok", -1, nil)
		}
		if !curve.InSubgroupG1(c.Parameters.G1.AlphaTau) {
			return ceremonyerr.New(ceremonyerr.InvalidPoint, "alpha_tau_g1", -1, nil)
		}
		if !curve.InSubgroupG1(c.Parameters.G1.BetaTau) {
			return ceremonyerr.New(ceremonyerr.InvalidPoint, "beta_tau_g1", -1, nil)
		}
		if !curve.InSubgroupG2([]curve.G2Affine{c.Parameters.G2.Beta}) {
			return ceremonyerr.New(ceremonyerr.InvalidPoint, "beta_g2", -1, nil)
		}
	}
	return nil
}

// HashContribution returns the Blake2b-512 digest of c's serialized
// body (including its proving-system tag), the value a verifier
// recomputes to check parent-hash continuity and the value a fresh
// contribution stamps into its own Hash field.
func HashContribution(c *Contribution) []byte {
	var buf bytes.Buffer
	enc := curve.NewEncoder(&buf)
	if err := enc.Encode(uint64(c.ProvingSystem)); err != nil {
		panic(err)
	}
	for _, v := range c.body() {
		if err := enc.Encode(v); err != nil {
			panic(err)
		}
	}
	return transcript.HashContribution(buf.Bytes())
}
