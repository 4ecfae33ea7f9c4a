// Package r1cs is the minimal circuit-compilation-result shape phase 2
// consumes: per-constraint sparse linear combinations over A, B and C.
// Compiling a circuit down to this form is the "circuit-compilation
// toolchain" collaborator, out of scope here; this package only defines
// the contract that collaborator hands phase 2.
package r1cs

import (
	"encoding/gob"
	"io"

	"github.com/powersoftau/ceremony-core/curve"
)

// Term is one sparse entry (wire index, coefficient) in a linear
// combination.
type Term struct {
	WireID      int
	Coefficient curve.Fr
}

// Constraint is one row of A, B, C such that for every satisfying
// assignment, (A·w)·(B·w) = C·w.
type Constraint struct {
	A, B, C []Term
}

// System is a circuit's full R1CS compilation: its constraints and the
// partition of wire indices into public, secret and internal.
type System struct {
	Constraints []Constraint
	NbPublic    int
	NbSecret    int
	NbInternal  int
}

// NbWires is the total wire count: 1 (the constant wire) + public +
// secret + internal.
func (s *System) NbWires() int {
	return 1 + s.NbPublic + s.NbSecret + s.NbInternal
}

// NbConstraints is the number of R1CS rows, which fixes the degree of
// the evaluation domain phase 2's H query is built over.
func (s *System) NbConstraints() int {
	return len(s.Constraints)
}

// Eval evaluates a linear combination at the given per-wire scalar
// assignment.
func Eval(terms []Term, assignment []curve.Fr) curve.Fr {
	var sum curve.Fr
	for _, t := range terms {
		var prod curve.Fr
		prod.Mul(&t.Coefficient, &assignment[t.WireID])
		sum.Add(&sum, &prod)
	}
	return sum
}

// WriteTo gob-encodes the system, the hand-off format the
// out-of-scope circuit-compilation toolchain is expected to emit.
func (s *System) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := gob.NewEncoder(cw).Encode(s)
	return cw.n, err
}

// ReadFrom decodes a System written by WriteTo.
func (s *System) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	err := gob.NewDecoder(cr).Decode(s)
	return cr.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
