package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/format"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase2"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
)

func one(wireID int) r1cs.Term {
	var c curve.Fr
	c.SetOne()
	return r1cs.Term{WireID: wireID, Coefficient: c}
}

func squareCircuit() *r1cs.System {
	return &r1cs.System{
		NbPublic: 1,
		NbSecret: 1,
		Constraints: []r1cs.Constraint{
			{A: []r1cs.Term{one(2)}, B: []r1cs.Term{one(2)}, C: []r1cs.Term{one(1)}},
		},
	}
}

func writePhase2(t *testing.T, path string, parentHash []byte, c *phase2.Contribution) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	h := &format.Header{Version: 1, ParentHash: parentHash}
	_, err = format.WriteFile(f, h, c)
	require.NoError(t, err)
}

func runPhase2App(args ...string) error {
	app := &cli.App{
		Name:     "phase2",
		Commands: []*cli.Command{verifyCommand()},
	}
	return app.Run(append([]string{"phase2"}, args...))
}

func TestVerifyRejectsTamperedParentHash(t *testing.T) {
	var p1 phase1.Contribution
	p1.Initialize(4)

	var challenge, response phase2.Contribution
	challenge.PreparePhase(&p1, squareCircuit())
	response.Contribute(&challenge)
	require.NoError(t, response.Verify(&challenge))

	dir := t.TempDir()
	challengeFname := filepath.Join(dir, "challenge")
	responseFname := filepath.Join(dir, "response")

	writePhase2(t, challengeFname, p1.Hash, &challenge)

	tamperedParentHash := append([]byte(nil), challenge.Hash...)
	tamperedParentHash[0] ^= 0xff
	writePhase2(t, responseFname, tamperedParentHash, &response)

	err := runPhase2App(
		"verify",
		"--challenge-fname", challengeFname,
		"--response-fname", responseFname,
	)
	require.Error(t, err)
	assert.True(t, ceremonyerr.As(err, ceremonyerr.HashMismatch))
	assert.Equal(t, 5, err.(*ceremonyerr.Error).ExitCode())
}

func TestVerifyAcceptsCorrectParentHash(t *testing.T) {
	var p1 phase1.Contribution
	p1.Initialize(4)

	var challenge, response phase2.Contribution
	challenge.PreparePhase(&p1, squareCircuit())
	response.Contribute(&challenge)
	require.NoError(t, response.Verify(&challenge))

	dir := t.TempDir()
	challengeFname := filepath.Join(dir, "challenge")
	responseFname := filepath.Join(dir, "response")

	writePhase2(t, challengeFname, p1.Hash, &challenge)
	writePhase2(t, responseFname, challenge.Hash, &response)

	err := runPhase2App(
		"verify",
		"--challenge-fname", challengeFname,
		"--response-fname", responseFname,
	)
	require.NoError(t, err)
}
