package phase1

import (
	"io"

	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
)

// ChunkBounds is a contiguous, half-open index range [Start, End) into
// the tau_g1 sequence (the longest of the six) that a chunked
// contribution independently covers.
type ChunkBounds struct {
	Start, End int
}

// Chunk is the slice of a Contribution's accumulator state belonging to
// one ChunkBounds window. tau_g2, alpha_tau_g1 and beta_tau_g1 are half
// the length of tau_g1, so a chunk's window into them is the bounds
// scaled down accordingly; beta_g2 has no per-index slice at all.
type Chunk struct {
	Bounds   ChunkBounds
	TauG1    []curve.G1Affine
	TauG2    []curve.G2Affine
	AlphaG1  []curve.G1Affine
	BetaG1   []curve.G1Affine
}

// Slice extracts the chunk covering bounds from a full Contribution.
func (c *Contribution) Slice(bounds ChunkBounds) Chunk {
	n := len(c.Parameters.G2.Tau)
	halfStart, halfEnd := (bounds.Start+1)/2, (bounds.End+1)/2
	if halfEnd > n {
		halfEnd = n
	}
	ch := Chunk{
		Bounds: bounds,
		TauG1:  c.Parameters.G1.Tau[bounds.Start:bounds.End],
		TauG2:  c.Parameters.G2.Tau[halfStart:halfEnd],
	}
	if c.ProvingSystem.HasAlphaBeta() {
		ch.AlphaG1 = c.Parameters.G1.AlphaTau[halfStart:halfEnd]
		ch.BetaG1 = c.Parameters.G1.BetaTau[halfStart:halfEnd]
	}
	return ch
}

// Combine concatenates chunk responses, given in ascending chunk-index
// order, into one full Contribution. Adjacent chunks must be contiguous:
// chunk k's bounds must end exactly where chunk k+1's begin.
func Combine(chunks []Chunk, shared *Contribution) (*Contribution, error) {
	out := &Contribution{}
	out.ProvingSystem = shared.ProvingSystem
	out.PublicKeys = shared.PublicKeys
	out.Parameters.G2.Beta = shared.Parameters.G2.Beta

	for i, ch := range chunks {
		out.Parameters.G1.Tau = append(out.Parameters.G1.Tau, ch.TauG1...)
		out.Parameters.G2.Tau = append(out.Parameters.G2.Tau, ch.TauG2...)
		out.Parameters.G1.AlphaTau = append(out.Parameters.G1.AlphaTau, ch.AlphaG1...)
		out.Parameters.G1.BetaTau = append(out.Parameters.G1.BetaTau, ch.BetaG1...)

		if i > 0 && chunks[i-1].Bounds.End != ch.Bounds.Start {
			return nil, ceremonyerr.New(ceremonyerr.ChunkBoundaryMismatch, "tau_g1", ch.Bounds.Start, nil)
		}
	}

	out.Hash = HashContribution(out)
	return out, nil
}

// WriteTo serializes a Chunk's four point sequences, in the order Slice
// fills them, so ReadFrom can size its reads from len alone.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	enc := curve.NewEncoder(w)
	for _, v := range []interface{}{c.TauG1, c.TauG2, c.AlphaG1, c.BetaG1} {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom decodes a Chunk written by WriteTo. Bounds is not part of the
// wire encoding; callers recover it from the enclosing file's Header.
func (c *Chunk) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)
	for _, v := range []interface{}{&c.TauG1, &c.TauG2, &c.AlphaG1, &c.BetaG1} {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	if !curve.InSubgroupG1(c.TauG1) {
		return dec.BytesRead(), ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_g1", -1, nil)
	}
	if !curve.InSubgroupG2(c.TauG2) {
		return dec.BytesRead(), ceremonyerr.New(ceremonyerr.InvalidPoint, "tau_g2", -1, nil)
	}
	if !curve.InSubgroupG1(c.AlphaG1) {
		return dec.BytesRead(), ceremonyerr.New(ceremonyerr.InvalidPoint, "alpha_tau_g1", -1, nil)
	}
	if !curve.InSubgroupG1(c.BetaG1) {
		return dec.BytesRead(), ceremonyerr.New(ceremonyerr.InvalidPoint, "beta_tau_g1", -1, nil)
	}
	return dec.BytesRead(), nil
}

// Split partitions a full Contribution into chunkSize-wide windows over
// tau_g1, for independent distribution to per-chunk contributors.
func Split(c *Contribution, chunkSize int) []Chunk {
	tauLen := len(c.Parameters.G1.Tau)
	nbChunks := (tauLen + chunkSize - 1) / chunkSize
	chunks := make([]Chunk, 0, nbChunks)
	for start := 0; start < tauLen; start += chunkSize {
		end := start + chunkSize
		if end > tauLen {
			end = tauLen
		}
		chunks = append(chunks, c.Slice(ChunkBounds{Start: start, End: end}))
	}
	return chunks
}
