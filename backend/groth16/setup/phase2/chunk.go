package phase2

import (
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
)

// Chunk is a contiguous slice of a phase-2 contribution's H (quotient)
// query, the only phase-2 vector large enough to warrant chunked
// distribution; delta and the L query are small and shared whole.
type Chunk struct {
	Start, End int
	Z          []curve.G1Affine
}

// Slice extracts the [start, end) window of the H query.
func (c *Contribution) Slice(start, end int) Chunk {
	return Chunk{Start: start, End: end, Z: c.Parameters.G1.Z[start:end]}
}

// Combine concatenates chunk responses in ascending order into one
// Contribution sharing the rest of shared's state (delta, L query).
func Combine(chunks []Chunk, shared *Contribution) (*Contribution, error) {
	out := &Contribution{}
	out.PublicKey = shared.PublicKey
	out.Parameters.G1.Delta = shared.Parameters.G1.Delta
	out.Parameters.G2.Delta = shared.Parameters.G2.Delta
	out.Parameters.G1.L = shared.Parameters.G1.L

	for i, ch := range chunks {
		out.Parameters.G1.Z = append(out.Parameters.G1.Z, ch.Z...)
		if i > 0 && chunks[i-1].End != ch.Start {
			return nil, ceremonyerr.New(ceremonyerr.ChunkBoundaryMismatch, "h_query", ch.Start, nil)
		}
	}

	out.Hash = HashContribution(out)
	return out, nil
}

// Split partitions a Contribution's H query into chunkSize-wide windows.
func Split(c *Contribution, chunkSize int) []Chunk {
	n := len(c.Parameters.G1.Z)
	chunks := make([]Chunk, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, c.Slice(start, end))
	}
	return chunks
}
