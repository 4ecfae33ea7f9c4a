// Command phase1 drives the powers-of-tau accumulator engine: creating a
// fresh challenge, folding in one contributor's randomness, verifying and
// promoting a response, deriving a beacon contribution, and
// combining/splitting chunked transcripts.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/powersoftau/ceremony-core/backend/groth16/setup/format"
	"github.com/powersoftau/ceremony-core/backend/groth16/setup/phase1"
	"github.com/powersoftau/ceremony-core/ceremonyconfig"
	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/debug"
	"github.com/powersoftau/ceremony-core/logger"
	"github.com/powersoftau/ceremony-core/transcript"
)

func main() {
	log := logger.Logger()

	app := &cli.App{
		Name:  "phase1",
		Usage: "powers-of-tau accumulator ceremony",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "curve-kind", Value: "bn254"},
			&cli.StringFlag{Name: "proving-system", Value: "groth16"},
			&cli.IntFlag{Name: "batch-size", Value: 1 << 16},
			&cli.IntFlag{Name: "power", Value: ceremonyconfig.MinPower},
			&cli.StringFlag{Name: "contribution-mode", Value: "full"},
			&cli.IntFlag{Name: "chunk-size"},
			&cli.IntFlag{Name: "chunk-index"},
			&cli.StringFlag{Name: "seed"},
		},
		Commands: []*cli.Command{
			newCommand(),
			contributeCommand(),
			verifyAndTransformCommand(),
			verifyRatiosCommand(),
			beaconCommand(),
			combineCommand(),
			splitCommand(),
			describeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		ev := log.Error().Err(err)
		if debug.Debug {
			ev = ev.Str("stack", debug.Stack())
		}
		ev.Msg("phase1 failed")
		if ce, ok := err.(*ceremonyerr.Error); ok {
			os.Exit(ce.ExitCode())
		}
		os.Exit(1)
	}
}

func paramsFromCLI(c *cli.Context) (ceremonyconfig.Parameters, error) {
	ps, err := ceremonyconfig.ParseProvingSystem(c.String("proving-system"))
	if err != nil {
		return ceremonyconfig.Parameters{}, err
	}
	mode, err := ceremonyconfig.ParseContributionMode(c.String("contribution-mode"))
	if err != nil {
		return ceremonyconfig.Parameters{}, err
	}
	return ceremonyconfig.New(c.Int("power"), ps, c.Int("batch-size"), mode, c.Int("chunk-size"), c.Int("chunk-index"))
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name: "new",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "challenge-hash-fname"},
		},
		Action: func(c *cli.Context) error {
			params, err := paramsFromCLI(c)
			if err != nil {
				return err
			}

			var contrib phase1.Contribution
			contrib.ProvingSystem = params.ProvingSystem
			contrib.Initialize(params.Power)

			f, err := os.Create(c.String("challenge-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "challenge-fname", -1, err)
			}
			defer f.Close()

			h := &format.Header{Version: 1, Curve: c.String("curve-kind"), ProvingSystem: c.String("proving-system"), Power: params.Power}
			if _, err := format.WriteFile(f, h, &contrib); err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "challenge-fname", -1, err)
			}

			if hashPath := c.String("challenge-hash-fname"); hashPath != "" {
				if err := os.WriteFile(hashPath, []byte(hex.EncodeToString(contrib.Hash)), 0o644); err != nil {
					return ceremonyerr.New(ceremonyerr.IO, "challenge-hash-fname", -1, err)
				}
			}
			return nil
		},
	}
}

func contributeCommand() *cli.Command {
	return &cli.Command{
		Name: "contribute",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "response-fname", Required: true},
			&cli.StringFlag{Name: "challenge-hash-fname"},
			&cli.StringFlag{Name: "response-hash-fname"},
		},
		Action: func(c *cli.Context) error {
			challenge, _, err := readChallenge(c.String("challenge-fname"))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "challenge hash: %s\n", hex.EncodeToString(challenge.Hash))
			fmt.Fprintln(os.Stderr, "press enter once the challenge hash above has been confirmed")
			var ack string
			fmt.Fscanln(os.Stdin, &ack)

			var response phase1.Contribution
			if err := response.Contribute(challenge); err != nil {
				return err
			}

			f, err := os.Create(c.String("response-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "response-fname", -1, err)
			}
			defer f.Close()

			h := &format.Header{Version: 1, ParentHash: challenge.Hash}
			if _, err := format.WriteFile(f, h, &response); err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "response-fname", -1, err)
			}
			return nil
		},
	}
}

func verifyAndTransformCommand() *cli.Command {
	return &cli.Command{
		Name: "verify-and-transform-pok-and-correctness",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "response-fname", Required: true},
			&cli.StringFlag{Name: "new-challenge-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			challenge, _, err := readChallenge(c.String("challenge-fname"))
			if err != nil {
				return err
			}
			response, responseHeader, err := readChallenge(c.String("response-fname"))
			if err != nil {
				return err
			}

			if !bytes.Equal(responseHeader.ParentHash, challenge.Hash) {
				return ceremonyerr.New(ceremonyerr.HashMismatch, "parent-hash", -1, nil)
			}
			if err := response.Verify(challenge); err != nil {
				return err
			}

			f, err := os.Create(c.String("new-challenge-fname"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.IO, "new-challenge-fname", -1, err)
			}
			defer f.Close()
			h := &format.Header{Version: 1, ParentHash: response.Hash}
			_, err = format.WriteFile(f, h, response)
			return err
		},
	}
}

func verifyRatiosCommand() *cli.Command {
	return &cli.Command{
		Name: "verify-and-transform-ratios",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "response-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			_, _, err := readChallenge(c.String("response-fname"))
			return err
		},
	}
}

func beaconCommand() *cli.Command {
	return &cli.Command{
		Name: "beacon",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "challenge-fname", Required: true},
			&cli.StringFlag{Name: "response-fname", Required: true},
			&cli.StringFlag{Name: "beacon-hash", Required: true},
			&cli.Uint64Flag{Name: "iterations", Value: 1 << 10},
		},
		Action: func(c *cli.Context) error {
			challenge, _, err := readChallenge(c.String("challenge-fname"))
			if err != nil {
				return err
			}
			beaconHash, err := hex.DecodeString(c.String("beacon-hash"))
			if err != nil {
				return ceremonyerr.New(ceremonyerr.Config, "beacon-hash", -1, err)
			}
			delayed := transcript.BeaconDelay(beaconHash, c.Uint64("iterations"))

			var response phase1.Contribution
			if err := response.ContributeWithBeacon(challenge, delayed); err != nil {
				return err
			}

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

func combineCommand() *cli.Command {
	return &cli.Command{
		Name: "combine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "shared-fname", Required: true, Usage: "a full challenge file supplying the PoK public keys and beta_g2"},
			&cli.StringFlag{Name: "chunk-fname-prefix", Required: true},
			&cli.IntFlag{Name: "nb-chunks", Required: true},
			&cli.StringFlag{Name: "combined-fname", Required: true},
		},
		Action: func(c *cli.Context) error {
			shared, _, err := readChallenge(c.String("shared-fname"))
			if err != nil {
				return err
			}

			prefix := c.String("chunk-fname-prefix")
			nb := c.Int("nb-chunks")
			chunks := make([]phase1.Chunk, nb)
			for i := 0; i < nb; i++ {
				name := fmt.Sprintf("%s_%d", prefix, i)
				f, err := os.Open(name)
				if err != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, err)
				}
				h, herr := format.ReadFile(f, chunks[i].ReadFrom)
				f.Close()
				if herr != nil {
					return ceremonyerr.New(ceremonyerr.Format, name, i, herr)
				}
				chunks[i].Bounds = phase1.ChunkBounds{Start: h.ChunkStart, End: h.ChunkEnd}
			}

			combined, err := phase1.Combine(chunks, shared)
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
			full, _, err := readChallenge(c.String("full-fname"))
			if err != nil {
				return err
			}
			chunks := phase1.Split(full, c.Int("chunk-size"))
			prefix := c.String("chunk-fname-prefix")
			for i := range chunks {
				name := fmt.Sprintf("%s_%d", prefix, i)
				f, err := os.Create(name)
				if err != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, err)
				}
				h := &format.Header{Version: 1, ChunkStart: chunks[i].Bounds.Start, ChunkEnd: chunks[i].Bounds.End}
				_, werr := format.WriteFile(f, h, &chunks[i])
				f.Close()
				if werr != nil {
					return ceremonyerr.New(ceremonyerr.IO, name, i, werr)
				}
			}
			return nil
		},
	}
}

// describeCommand reports a challenge/response file's header fields
// without decoding its point body, for inspecting a large transcript
// without paying the cost of loading it.
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
			fmt.Printf("curve: %s\n", h.Curve)
			fmt.Printf("proving-system: %s\n", h.ProvingSystem)
			fmt.Printf("power: %d\n", h.Power)
			if h.ChunkEnd > 0 {
				fmt.Printf("chunk: [%d, %d)\n", h.ChunkStart, h.ChunkEnd)
			}
			fmt.Printf("parent-hash: %s\n", hex.EncodeToString(h.ParentHash))
			return nil
		},
	}
}

// readChallenge reads a challenge/response file, returning both its
// Contribution body and its Header so callers that need to check
// ParentHash against a predecessor's Hash can do so explicitly.
func readChallenge(path string) (*phase1.Contribution, *format.Header, error) {
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
