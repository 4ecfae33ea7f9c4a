// Package ceremonyconfig validates the CLI flag surface shared by the
// phase1 and phase2 binaries before any accumulator is touched: power
// range, proving-system selection, batch size and chunk geometry.
package ceremonyconfig

import (
	"fmt"

	"github.com/powersoftau/ceremony-core/ceremonyerr"
)

// ProvingSystem selects which accumulator length table a ceremony
// follows.
type ProvingSystem int

const (
	Groth16 ProvingSystem = iota
	Marlin
	Plonk
)

func (p ProvingSystem) String() string {
	switch p {
	case Groth16:
		return "groth16"
	case Marlin:
		return "marlin"
	case Plonk:
		return "plonk"
	default:
		return "unknown"
	}
}

// HasAlphaBeta reports whether this proving system's accumulator carries
// the alpha/beta sequences. Marlin and PLONK setups fold tau only.
func (p ProvingSystem) HasAlphaBeta() bool {
	return p == Groth16
}

func ParseProvingSystem(s string) (ProvingSystem, error) {
	switch s {
	case "groth16":
		return Groth16, nil
	case "marlin":
		return Marlin, nil
	case "plonk":
		return Plonk, nil
	default:
		return 0, ceremonyerr.New(ceremonyerr.Config, "proving-system", -1, fmt.Errorf("unknown proving system %q", s))
	}
}

// ContributionMode selects whether an operation addresses the whole
// index space or a single chunk.
type ContributionMode int

const (
	Full ContributionMode = iota
	Chunked
)

func ParseContributionMode(s string) (ContributionMode, error) {
	switch s {
	case "full":
		return Full, nil
	case "chunked":
		return Chunked, nil
	default:
		return 0, ceremonyerr.New(ceremonyerr.Config, "contribution-mode", -1, fmt.Errorf("unknown contribution mode %q", s))
	}
}

const (
	MinPower = 10
	MaxPower = 28
)

// Parameters is the validated, curve-agnostic shape of the CLI's global
// flags. A Parameters value is only ever constructed via New, which
// enforces every invariant the accumulator and phase2 engines assume is
// already true.
type Parameters struct {
	Power            int
	ProvingSystem    ProvingSystem
	BatchSize        int
	ContributionMode ContributionMode
	ChunkSize        int
	ChunkIndex       int
}

// New validates and constructs Parameters, returning a ceremonyerr of kind
// Config on the first violation (power range, batch-size positivity,
// chunk-size divisibility, chunk-index bounds).
func New(power int, ps ProvingSystem, batchSize int, mode ContributionMode, chunkSize, chunkIndex int) (Parameters, error) {
	if power < MinPower || power > MaxPower {
		return Parameters{}, ceremonyerr.New(ceremonyerr.Config, "power", power,
			fmt.Errorf("power must be in [%d, %d]", MinPower, MaxPower))
	}
	if batchSize <= 0 {
		return Parameters{}, ceremonyerr.New(ceremonyerr.Config, "batch-size", batchSize,
			fmt.Errorf("batch-size must be positive"))
	}

	n := 1 << uint(power)
	tauG1Len := 2*n - 1

	p := Parameters{
		Power:            power,
		ProvingSystem:    ps,
		BatchSize:        batchSize,
		ContributionMode: mode,
		ChunkSize:        chunkSize,
		ChunkIndex:       chunkIndex,
	}

	if mode == Full {
		return p, nil
	}

	if chunkSize <= 0 {
		return Parameters{}, ceremonyerr.New(ceremonyerr.Config, "chunk-size", chunkSize,
			fmt.Errorf("chunk-size must be positive in chunked mode"))
	}
	if tauG1Len%chunkSize != 0 {
		return Parameters{}, ceremonyerr.New(ceremonyerr.Config, "chunk-size", chunkSize,
			fmt.Errorf("chunk-size %d does not divide tau_g1 length %d", chunkSize, tauG1Len))
	}
	nbChunks := tauG1Len / chunkSize
	if chunkIndex < 0 || chunkIndex >= nbChunks {
		return Parameters{}, ceremonyerr.New(ceremonyerr.Config, "chunk-index", chunkIndex,
			fmt.Errorf("chunk-index must be in [0, %d)", nbChunks))
	}

	return p, nil
}

// NbChunks returns how many chunks of ChunkSize tile the tau_g1 index
// space for this power, given the Parameters was constructed in Chunked
// mode.
func (p Parameters) NbChunks() int {
	n := 1 << uint(p.Power)
	return (2*n - 1) / p.ChunkSize
}
