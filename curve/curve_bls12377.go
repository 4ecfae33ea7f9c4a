//go:build bls12377

package curve

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/fft"
)

const ID = "bls12377"

type (
	G1Affine = bls12377.G1Affine
	G1Jac    = bls12377.G1Jac
	G2Affine = bls12377.G2Affine
	G2Jac    = bls12377.G2Jac
	GT       = bls12377.GT
	Fr       = fr.Element
	Domain   = fft.Domain
	Encoder  = bls12377.Encoder
	Decoder  = bls12377.Decoder
)

func Generators() (G1Affine, G2Affine) {
	_, _, g1, g2 := bls12377.Generators()
	return g1, g2
}

func PairingCheck(a []G1Affine, b []G2Affine) (bool, error) {
	return bls12377.PairingCheck(a, b)
}

func NewEncoder(w io.Writer, options ...func(*Encoder)) *Encoder {
	return bls12377.NewEncoder(w, options...)
}

func NewDecoder(r io.Reader, options ...func(*Decoder)) *Decoder {
	return bls12377.NewDecoder(r, options...)
}

func RawEncoding() func(*Encoder) {
	return bls12377.RawEncoding()
}

func NewDomain(size uint64) *Domain {
	return fft.NewDomain(size)
}

type MSMConfig = ecc.MultiExpConfig

func MSM(bases []G1Affine, scalars []Fr, cfg MSMConfig) (G1Affine, error) {
	var r G1Affine
	_, err := r.MultiExp(bases, scalars, cfg)
	return r, err
}

func BatchNormalizeG1(points []G1Jac) []G1Affine {
	return bls12377.BatchJacobianToAffineG1(points)
}

func BatchNormalizeG2(points []G2Jac) []G2Affine {
	res := make([]G2Affine, len(points))
	for i := range points {
		res[i].FromJacobian(&points[i])
	}
	return res
}

func InSubgroupG1(pts []G1Affine) bool {
	for i := range pts {
		if !pts[i].IsInSubGroup() {
			return false
		}
	}
	return true
}

func InSubgroupG2(pts []G2Affine) bool {
	for i := range pts {
		if !pts[i].IsInSubGroup() {
			return false
		}
	}
	return true
}

func HashToFr(digest []byte) Fr {
	var e Fr
	e.SetBytes(digest)
	return e
}

func ScalarToBigInt(s *Fr) *big.Int {
	var bi big.Int
	s.BigInt(&bi)
	return &bi
}
