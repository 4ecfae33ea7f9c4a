// Command phase2 specializes a finalized powers-of-tau transcript to a
// circuit: preparing the circuit-dependent evaluations, running the
// delta contribution round, verifying responses, and extracting the
// final Groth16 proving/verifying keys.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/format"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/keys"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase2"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/r1cs"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
	"github.com/powersoftau/ceremony-core/debug"
	"github.com/powersoftau/ceremony-core/logger"
)

func main() {
	log := logger.Logger()

	app := &cli.App{
		Name:  "phase2",
		Usage: "circuit-specific Groth16 setup, second half of the ceremony",
		Commands: []*cli.Command{
			newCommand(),
			contributeCommand(),
			verifyCommand(),
			combineCommand(),
			splitCommand(),
			exportKeysCommand(),
			describeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		ev := log.Error().Err(err)
		if debug.Debug {
			ev = ev.Str("stack", debug.Stack())
		}
		ev.Msg("phase2 failed")
		if ce, ok := err.(*ceremonyerr.Error); ok {
			os.Exit(ce.ExitCode())
		}
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name: "new",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phase1-fname", Required: true},
			&cli.StringFlag{Name: "r1cs-fname", Required: true},
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "evaluations-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			srs1, _, err := readPhase1(c.String("phase1-fname"))
			if err != nil {
				return err
			}

			cs, err := readR1CS(c.String("r1cs-fname"))
			if err != nil {
				return err
			}

			var contrib phase2.Contribution
			evals := contrib.PreparePhase(srs1, cs)

			f, err := os.Create(c.String("challenge-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "challenge-fname", -1, err)
			}
			defer f.Close()
			h := &format.Header{Version: 1, ProvingSystem: "groth16", ParentHash: srs1.Hash}
			if _, err := format.WriteFile(f, h, &contrib); err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "challenge-fname", -1, err)
			}

			ef, err := os.Create(c.String("evaluations-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "evaluations-fname", -1, err)
			}
			defer ef.Close()
			_, err = evals.WriteTo(ef)
			return err
		},
	}
}

func contributeCommand() *cli.Command {
	return &cli.Command{
		Name: "contribute",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "response-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			challenge, _, err := readPhase2(c.String("challenge-fname"))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "challenge hash: %s\n", hex.EncodeToString(challenge.Hash))
			fmt.Fprintln(os.Stderr, "press enter once the challenge hash above has been confirmed")
			var ack string
			fmt.Fscanln(os.Stdin, &ack)

			var response phase2.Contribution
			response.Contribute(challenge)

			f, err := os.Create(c.String("response-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "response-fname", -1, err)
			}
			defer f.Close()
			h := &format.Header{Version: 1, ParentHash: challenge.Hash}
			_, err = format.WriteFile(f, h, &response)
			return err
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name: "verify",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "response-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			challenge, _, err := readPhase2(c.String("challenge-fname"))
			if err != nil {
				return err
			}
			response, responseHeader, err := readPhase2(c.String("response-fname"))
			if err != nil {
				return err
			}
			if !bytes.Equal(responseHeader.ParentHash, challenge.Hash) {
				return ceremonyerr.New(ceremonyerr.HashMismatch, "parent-hash", -1, nil)
			}
			return response.Verify(challenge)
		},
	}
}

func combineCommand() *cli.Command {
	return &cli.Command{
		Name: "combine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "shared-fname", Required: true},
			&cli.StringFlag{Name: "chunk-fname-prefix", Required: true},
			&cli.IntFlag{Name: "nb-chunks", Required: true},
			&cli.StringFlag{Name: "combined-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			shared, _, err := readPhase2(c.String("shared-fname"))
			if err != nil {
				return err
			}

			prefix := c.String("chunk-fname-prefix")
			nb := c.Int("nb-chunks")
			chunks := make([]phase2.Chunk, nb)
			for i := 0; i < nb; i++ {
				name := fmt.Sprintf("%s_%d", prefix, i)
				f, err := os.Open(name)
				if err != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, err)
				}
				_, rerr := decodeChunk(f, &chunks[i])
				f.Close()
				if rerr != nil {
					return ceremonyerr.New(ceremonyerr.Format, name, i, rerr)
				}
			}

			combined, err := phase2.Combine(chunks, shared)
			if err != nil {
				return err
			}

			out, err := os.Create(c.String("combined-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "combined-fname", -1, err)
			}
			defer out.Close()
			h := &format.Header{Version: 1, ParentHash: shared.Hash}
			_, err = format.WriteFile(out, h, combined)
			return err
		},
	}
}

func splitCommand() *cli.Command {
	return &cli.Command{
		Name: "split",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "full-fname", Required: true},
			&cli.StringFlag{Name: "chunk-fname-prefix", Required: true},
			&cli.IntFlag{Name: "chunk-size", Required: true},
		},
		Action: func(c *cli.Context) error {
			full, _, err := readPhase2(c.String("full-fname"))
			if err != nil {
				return err
			}
			chunks := phase2.Split(full, c.Int("chunk-size"))
			prefix := c.String("chunk-fname-prefix")
			for i, ch := range chunks {
				name := fmt.Sprintf("%s_%d", prefix, i)
				f, err := os.Create(name)
				if err != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, err)
				}
				_, werr := encodeChunk(f, ch)
				f.Close()
				if werr != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, werr)
				}
			}
			return nil
		},
	}
}

func exportKeysCommand() *cli.Command {
	return &cli.Command{
		Name: "export-keys",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phase1-fname", Required: true},
			&cli.StringFlag{Name: "phase2-fname", Required: true},
			&cli.StringFlag{Name: "evaluations-fname", Required: true},
			&cli.IntFlag{Name: "nb-constraints", Required: true},
			&cli.StringFlag{Name: "proving-key-fname", Required: true},
			&cli.StringFlag{Name: "verifying-key-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			srs1, _, err := readPhase1(c.String("phase1-fname"))
			if err != nil {
				return err
			}
			srs2, _, err := readPhase2(c.String("phase2-fname"))
			if err != nil {
				return err
			}

			ef, err := os.Open(c.String("evaluations-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "evaluations-fname", -1, err)
			}
			var evals phase2.Evaluations
			_, err = evals.ReadFrom(ef)
			ef.Close()
			if err != nil {
				return ceremonyerr.New(ceremonyerr.Format, "evaluations-fname", -1, err)
			}

			pk, vk := keys.ExtractKeys(srs1, srs2, &evals, c.Int("nb-constraints"))

			pf, err := os.Create(c.String("proving-key-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "proving-key-fname", -1, err)
			}
			_, err = pk.WriteTo(pf, false)
			pf.Close()
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "proving-key-fname", -1, err)
			}

			vf, err := os.Create(c.String("verifying-key-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "verifying-key-fname", -1, err)
			}
			_, err = vk.WriteTo(vf, false)
			vf.Close()
			return err
		},
	}
}

// describeCommand reports a phase-2 file's header fields without
// decoding its point body.
func describeCommand() *cli.Command {
	return &cli.Command{
		Name: "describe",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			f, err := os.Open(c.String("fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "fname", -1, err)
			}
			defer f.Close()

			h, _, err := format.ReadHeader(f)
			if err != nil {
				return ceremonyerr.New(ceremonyerr.Format, "fname", -1, err)
			}

			fmt.Printf("version: %d\n", h.Version)
			fmt.Printf("proving-system: %s\n", h.ProvingSystem)
			if h.ChunkEnd > 0 {
				fmt.Printf("chunk: [%d, %d)\n", h.ChunkStart, h.ChunkEnd)
			}
			fmt.Printf("parent-hash: %s\n", hex.EncodeToString(h.ParentHash))
			return nil
		},
	}
}

// readPhase1 reads a phase-1 file, returning both its Contribution body
// and its Header so callers that need to check ParentHash against a
// predecessor's Hash can do so explicitly.
func readPhase1(path string) (*phase1.Contribution, *format.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ceremonyerr.New(ceremonyerr.IO, path, -1, err)
	}
	defer f.Close()

	var contrib phase1.Contribution
	h, err := format.ReadFile(f, contrib.ReadFrom)
	if err != nil {
		return nil, nil, ceremonyerr.New(ceremonyerr.Format, path, -1, err)
	}
	return &contrib, h, nil
}

// readPhase2 reads a phase-2 file, returning both its Contribution body
// and its Header so callers that need to check ParentHash against a
// predecessor's Hash can do so explicitly.
func readPhase2(path string) (*phase2.Contribution, *format.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ceremonyerr.New(ceremonyerr.IO, path, -1, err)
	}
	defer f.Close()

	var contrib phase2.Contribution
	h, err := format.ReadFile(f, contrib.ReadFrom)
	if err != nil {
		return nil, nil, ceremonyerr.New(ceremonyerr.Format, path, -1, err)
	}
	return &contrib, h, nil
}

func readR1CS(path string) (*r1cs.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ceremonyerr.New(ceremonyerr.IO, path, -1, err)
	}
	defer f.Close()

	var cs r1cs.System
	if _, err := cs.ReadFrom(f); err != nil {
		return nil, ceremonyerr.New(ceremonyerr.Format, path, -1, err)
	}
	return &cs, nil
}

func encodeChunk(w *os.File, ch phase2.Chunk) (int64, error) {
	h := &format.Header{Version: 1, ChunkStart: ch.Start, ChunkEnd: ch.End}
	n, err := h.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := writeChunkBody(w, ch)
	return n + m, err
}

func decodeChunk(r *os.File, ch *phase2.Chunk) (int64, error) {
	h, n, err := format.ReadHeader(r)
	if err != nil {
		return n, err
	}
	ch.Start, ch.End = h.ChunkStart, h.ChunkEnd
	m, err := readChunkBody(r, ch)
	return n + m, err
}

func writeChunkBody(w *os.File, ch phase2.Chunk) (int64, error) {
	enc := curve.NewEncoder(w)
	err := enc.Encode(ch.Z)
	return enc.BytesWritten(), err
}

func readChunkBody(r *os.File, ch *phase2.Chunk) (int64, error) {
	dec := curve.NewDecoder(r)
	if err := dec.Decode(&ch.Z); err != nil {
		return dec.BytesRead(), err
	}
	if !curve.InSubgroupG1(ch.Z) {
		return dec.BytesRead(), ceremonyerr.New(ceremonyerr.InvalidPoint, "z", -1, nil)
	}
	return dec.BytesRead(), nil
}
