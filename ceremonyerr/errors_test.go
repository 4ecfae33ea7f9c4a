package ceremonyerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStringAndExitCode(t *testing.T) {
	cases := []struct {
		kind     Kind
		name     string
		exitCode int
	}{
		{Config, "ConfigError", 2},
		{IO, "IoError", 1},
		{Format, "FormatError", 2},
		{InvalidPoint, "InvalidPoint", 4},
		{HashMismatch, "HashMismatch", 5},
		{PokInvalid, "PokInvalid", 3},
		{RatioInvalid, "RatioInvalid", 3},
		{ZeroScalar, "ZeroScalar", 2},
		{ChunkBoundaryMismatch, "ChunkBoundaryMismatch", 3},
		{Phase2Inconsistent, "Phase2Inconsistent", 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.kind.String())
		assert.Equal(t, c.exitCode, c.kind.ExitCode())
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	e := New(PokInvalid, "tau", 2, errors.New("ratio check failed"))
	assert.Equal(t, "PokInvalid: tau[2]: ratio check failed", e.Error())

	e = New(PokInvalid, "tau", -1, errors.New("ratio check failed"))
	assert.Equal(t, "PokInvalid: tau: ratio check failed", e.Error())

	e = New(PokInvalid, "tau", 2, nil)
	assert.Equal(t, "PokInvalid: tau[2]", e.Error())

	e = New(PokInvalid, "tau", -1, nil)
	assert.Equal(t, "PokInvalid: tau", e.Error())
}

func TestUnwrapAndExitCode(t *testing.T) {
	cause := errors.New("boom")
	e := New(IO, "challenge-fname", -1, cause)
	assert.Equal(t, cause, errors.Unwrap(e))
	assert.Equal(t, 1, e.ExitCode())
}

func TestAsMatchesKindThroughWrapping(t *testing.T) {
	inner := New(HashMismatch, "chunk[1]", 1, nil)
	wrapped := fmt.Errorf("combine failed: %w", inner)

	assert.True(t, As(wrapped, HashMismatch))
	assert.False(t, As(wrapped, Config))
	assert.False(t, As(errors.New("plain"), HashMismatch))
}
