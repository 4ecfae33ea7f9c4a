package ceremonyconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersoftau/ceremony-core/ceremonyerr"
)

func TestNewFullMode(t *testing.T) {
	p, err := New(MinPower, Groth16, 1<<10, Full, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, MinPower, p.Power)
	assert.Equal(t, Groth16, p.ProvingSystem)
}

func TestNewRejectsPowerOutOfRange(t *testing.T) {
	_, err := New(MinPower-1, Groth16, 1<<10, Full, 0, 0)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))

	_, err = New(MaxPower+1, Groth16, 1<<10, Full, 0, 0)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestNewRejectsNonPositiveBatchSize(t *testing.T) {
	_, err := New(MinPower, Groth16, 0, Full, 0, 0)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestNewChunkedModeRejectsNonDivisibleChunkSize(t *testing.T) {
	// tau_g1 length for power=10 is 2*1024-1 = 2047 = 23*89, which 100
	// does not divide.
	_, err := New(10, Groth16, 1<<10, Chunked, 100, 0)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestNewChunkedModeRejectsNonPositiveChunkSize(t *testing.T) {
	_, err := New(10, Groth16, 1<<10, Chunked, 0, 0)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestNewChunkedModeRejectsOutOfBoundsChunkIndex(t *testing.T) {
	// power=11: tau_g1 length = 2*2048-1 = 4095 = 3 * 1365, chunkSize=1365 -> 3 chunks.
	p, err := New(11, Groth16, 1<<10, Chunked, 1365, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NbChunks())

	_, err = New(11, Groth16, 1<<10, Chunked, 1365, 3)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))

	_, err = New(11, Groth16, 1<<10, Chunked, 1365, -1)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestParseProvingSystem(t *testing.T) {
	ps, err := ParseProvingSystem("groth16")
	require.NoError(t, err)
	assert.Equal(t, Groth16, ps)
	assert.True(t, ps.HasAlphaBeta())

	ps, err = ParseProvingSystem("marlin")
	require.NoError(t, err)
	assert.False(t, ps.HasAlphaBeta())

	_, err = ParseProvingSystem("bogus")
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}

func TestParseContributionMode(t *testing.T) {
	mode, err := ParseContributionMode("chunked")
	require.NoError(t, err)
	assert.Equal(t, Chunked, mode)

	_, err = ParseContributionMode("bogus")
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.Config))
}
