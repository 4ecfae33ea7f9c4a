package transcript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContributionDeterministicAndSensitive(t *testing.T) {
	a := HashContribution([]byte("challenge body"))
	b := HashContribution([]byte("challenge body"))
	c := HashContribution([]byte("different body"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestBeaconDelayDeterministicAndIterationSensitive(t *testing.T) {
	seed := []byte("public randomness beacon output")

	a := BeaconDelay(seed, 100)
	b := BeaconDelay(seed, 100)
	assert.Equal(t, a, b)

	c := BeaconDelay(seed, 101)
	assert.NotEqual(t, a, c)

	zero := BeaconDelay(seed, 0)
	assert.Equal(t, seed, zero)
}

func TestBeaconScalarsDeterministicAndDistinct(t *testing.T) {
	delayed := BeaconDelay([]byte("seed"), 10)

	s1 := BeaconScalars(delayed, 3)
	s2 := BeaconScalars(delayed, 3)
	require.Len(t, s1, 3)
	for i := range s1 {
		assert.True(t, s1[i].Equal(&s2[i]))
	}
	assert.False(t, s1[0].Equal(&s1[1]))
	assert.False(t, s1[1].Equal(&s1[2]))
}

func TestChallengeBaseG1DependsOnRoleAndParentHash(t *testing.T) {
	prevHash := HashContribution([]byte("parent"))

	tauBase := ChallengeBaseG1(prevHash, 1)
	alphaBase := ChallengeBaseG1(prevHash, 2)
	assert.False(t, tauBase.Equal(&alphaBase))

	otherHash := HashContribution([]byte("different parent"))
	otherBase := ChallengeBaseG1(otherHash, 1)
	assert.False(t, tauBase.Equal(&otherBase))

	again := ChallengeBaseG1(prevHash, 1)
	assert.True(t, tauBase.Equal(&again))
}

func TestDeriveChallengeScalarDeterministicAndDistinctPerCounter(t *testing.T) {
	s0 := DeriveChallengeScalar(0)
	s0Again := DeriveChallengeScalar(0)
	s1 := DeriveChallengeScalar(1)

	assert.True(t, s0.Equal(&s0Again))
	assert.False(t, s0.Equal(&s1))
}

func TestDeterministicRNGSameSeedSameStream(t *testing.T) {
	seed := HashContribution([]byte("entropy"))[:32]

	r1, err := NewDeterministicRNG(seed)
	require.NoError(t, err)
	r2, err := NewDeterministicRNG(seed)
	require.NoError(t, err)

	buf1 := make([]byte, 128)
	buf2 := make([]byte, 128)
	_, err = r1.Read(buf1)
	require.NoError(t, err)
	_, err = r2.Read(buf2)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(buf1, buf2))
}

func TestDeterministicRNGDifferentSeedDifferentStream(t *testing.T) {
	r1, err := NewDeterministicRNG([]byte("seed-a"))
	require.NoError(t, err)
	r2, err := NewDeterministicRNG([]byte("seed-b"))
	require.NoError(t, err)

	buf1 := make([]byte, 64)
	buf2 := make([]byte, 64)
	_, _ = r1.Read(buf1)
	_, _ = r2.Read(buf2)
	assert.False(t, bytes.Equal(buf1, buf2))
}

func TestDeterministicRNGNextScalarConsumesStream(t *testing.T) {
	rng, err := NewDeterministicRNG([]byte("seed"))
	require.NoError(t, err)

	s1, err := rng.NextScalar()
	require.NoError(t, err)
	s2, err := rng.NextScalar()
	require.NoError(t, err)
	assert.False(t, s1.Equal(&s2))
}

func TestEntropySeedNonDeterministic(t *testing.T) {
	entropy := []byte("contributor jitter")
	a, err := EntropySeed(entropy)
	require.NoError(t, err)
	b, err := EntropySeed(entropy)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestScrubZeroesBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	Scrub(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)
}
