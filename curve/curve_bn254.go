//go:build !bls12377 && !bls12381 && !bw6761

package curve

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// ID is the build-time curve identity. It is not written into file
// headers and is not compared with a header's curve tag on read, so a
// file written for another curve is not rejected on that basis.
const ID = "bn254"

type (
	G1Affine = bn254.G1Affine
	G1Jac    = bn254.G1Jac
	G2Affine = bn254.G2Affine
	G2Jac    = bn254.G2Jac
	GT       = bn254.GT
	Fr       = fr.Element
	Domain   = fft.Domain
	Encoder  = bn254.Encoder
	Decoder  = bn254.Decoder
)

// Generators returns the fixed G1/G2 base points; position 0 of every
// sequence is pinned to these and is never scaled by a contributor.
func Generators() (G1Affine, G2Affine) {
	_, _, g1, g2 := bn254.Generators()
	return g1, g2
}

// PairingCheck checks e(a[0],b[0])·e(a[1],b[1])···= 1 in GT. Every "SameRatio"
// check in this repo reduces to one call here with a negated left side.
func PairingCheck(a []G1Affine, b []G2Affine) (bool, error) {
	return bn254.PairingCheck(a, b)
}

func NewEncoder(w io.Writer, options ...func(*Encoder)) *Encoder {
	return bn254.NewEncoder(w, options...)
}

func NewDecoder(r io.Reader, options ...func(*Decoder)) *Decoder {
	return bn254.NewDecoder(r, options...)
}

// RawEncoding selects gnark-crypto's uncompressed point encoding, the
// raw option of the proving/verifying-key writers in
// backend/groth16/setup/keys.
func RawEncoding() func(*Encoder) {
	return bn254.RawEncoding()
}

func NewDomain(size uint64) *Domain {
	return fft.NewDomain(size)
}

// MSMConfig mirrors gnark-crypto's ecc.MultiExpConfig; kept as a type alias
// so callers outside this package never import gnark-crypto/ecc directly.
type MSMConfig = ecc.MultiExpConfig

// MSM computes Σ scalars[i]·bases[i] in G1 via gnark-crypto's Pippenger
// implementation (window width tuned internally by gnark-crypto on len).
func MSM(bases []G1Affine, scalars []Fr, cfg MSMConfig) (G1Affine, error) {
	var r G1Affine
	_, err := r.MultiExp(bases, scalars, cfg)
	return r, err
}

// BatchNormalizeG1 converts a slice of Jacobian points to affine in one pass
// using Montgomery's trick for the shared field inversion.
func BatchNormalizeG1(points []G1Jac) []G1Affine {
	return bn254.BatchJacobianToAffineG1(points)
}

func BatchNormalizeG2(points []G2Jac) []G2Affine {
	res := make([]G2Affine, len(points))
	for i := range points {
		res[i].FromJacobian(&points[i])
	}
	return res
}

// InSubgroupG1 reports whether every point in pts lies in the G1
// r-torsion subgroup, the check a decoder skips under RawEncoding and a
// verifier must otherwise run explicitly on untrusted input.
func InSubgroupG1(pts []G1Affine) bool {
	for i := range pts {
		if !pts[i].IsInSubGroup() {
			return false
		}
	}
	return true
}

// InSubgroupG2 is the G2 analogue of InSubgroupG1.
func InSubgroupG2(pts []G2Affine) bool {
	for i := range pts {
		if !pts[i].IsInSubGroup() {
			return false
		}
	}
	return true
}

// HashToFr reduces a 64-byte transcript digest to a scalar via wide
// reduction: interpret the bytes as a big-endian integer mod r. Wide
// reduce rather than rejection sampling, since Blake2b-512 output is
// already twice the bit length of Fr and the statistical bias is
// negligible.
func HashToFr(digest []byte) Fr {
	var e Fr
	e.SetBytes(digest)
	return e
}

// ScalarToBigInt renders a field element to its canonical big.Int form,
// the shape gnark-crypto's ScalarMultiplication expects.
func ScalarToBigInt(s *Fr) *big.Int {
	var bi big.Int
	s.BigInt(&bi)
	return &bi
}
