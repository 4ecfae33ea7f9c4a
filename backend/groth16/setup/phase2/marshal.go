package phase2

import (
	"bytes"
	"io"

	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/transcript"
)

func (c *Contribution) body() []interface{} {
	return []interface{}{
		&c.PublicKey.SG,
		&c.PublicKey.SXG,
		&c.PublicKey.XR,
		&c.Parameters.G1.Delta,
		c.Parameters.G1.L,
		c.Parameters.G1.Z,
		&c.Parameters.G2.Delta,
	}
}

func (c *Contribution) WriteTo(writer io.Writer) (int64, error) {
	enc := curve.NewEncoder(writer)
	for _, v := range c.body() {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	n, err := writer.Write(c.Hash)
	return enc.BytesWritten() + int64(n), err
}

func (c *Contribution) ReadFrom(reader io.Reader) (int64, error) {
	toDecode := []interface{}{
		&c.PublicKey.SG,
		&c.PublicKey.SXG,
		&c.PublicKey.XR,
		&c.Parameters.G1.Delta,
		&c.Parameters.G1.L,
		&c.Parameters.G1.Z,
		&c.Parameters.G2.Delta,
	}

	dec := curve.NewDecoder(reader)
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

// checkPointsInSubgroup rejects a decoded contribution carrying any point
// outside the curve's r-torsion subgroup: decoding only checks the point
// lies on the curve, not in the subgroup the pairing checks in Verify
// assume.
func (c *Contribution) checkPointsInSubgroup() error {
	if !curve.InSubgroupG1([]curve.G1Affine{c.PublicKey.SG, c.PublicKey.SXG, c.Parameters.G1.Delta}) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "delta_pok", -1, nil)
	}
	if !curve.InSubgroupG2([]curve.G2Affine{c.PublicKey.XR, c.Parameters.G2.Delta}) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "delta_pok", -1, nil)
	}
	if !curve.InSubgroupG1(c.Parameters.G1.L) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "l", -1, nil)
	}
	if !curve.InSubgroupG1(c.Parameters.G1.Z) {
		return ceremonyerr.New(ceremonyerr.InvalidPoint, "z", -1, nil)
	}
	return nil
}

// HashContribution returns the Blake2b-512 digest of c's serialized body.
func HashContribution(c *Contribution) []byte {
	var buf bytes.Buffer
	enc := curve.NewEncoder(&buf)
	for _, v := range c.body() {
		if err := enc.Encode(v); err != nil {
			panic(err)
		}
	}
	return transcript.HashContribution(buf.Bytes())
}

func (e *Evaluations) WriteTo(writer io.Writer) (int64, error) {
	enc := curve.NewEncoder(writer)
	toEncode := []interface{}{
		e.G1.A,
		e.G1.B,
		e.G2.B,
		e.G1.VKK,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

func (e *Evaluations) ReadFrom(reader io.Reader) (int64, error) {
	dec := curve.NewDecoder(reader)
	toDecode := []interface{}{
		&e.G1.A,
		&e.G1.B,
		&e.G2.B,
		&e.G1.VKK,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}
