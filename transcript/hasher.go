// Package transcript implements the ceremony's deterministic challenge
// derivation: a Blake2b-512 transcript hasher personalized per ceremony,
// the per-role challenge bases a contributor's PoK is bound to, and the
// Fr-scalar extraction used both for PoK challenges and for the
// random-linear-combination verification coefficients.
package transcript

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/powersoftau/ceremony-core/curve"
)

// Personalization is mixed into every Blake2b-512 instance this package
// creates, so a ceremony transcript can never collide with a hash the
// same bytes would produce for an unrelated purpose.
const Personalization = "ceremony-transcript-v1"

func newHasher() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(Personalization))
	return h
}

// HashContribution returns the Blake2b-512 digest of an arbitrary byte
// stream representing a serialized contribution (challenge or response
// body). Used both to populate a contribution's own Hash field and to
// validate a response's parent-hash field.
func HashContribution(data []byte) []byte {
	h := newHasher()
	h.Write(data)
	return h.Sum(nil)
}

// challengeInput returns the Blake2b-512 digest of the domain-separated
// byte string a per-role challenge point is derived from: a
// domain-separation byte, the role index, the parent challenge-file hash,
// and (for the G2 challenge point) the contributor's public G1 points.
func challengeInput(domainSep byte, role int, prevHash []byte, extra ...[]byte) []byte {
	h := newHasher()
	h.Write([]byte{domainSep})
	var roleBuf [8]byte
	binary.BigEndian.PutUint64(roleBuf[:], uint64(role))
	h.Write(roleBuf[:])
	h.Write(prevHash)
	for _, e := range extra {
		h.Write(e)
	}
	return h.Sum(nil)
}

// ChallengeBaseG1 derives the per-role challenge base point in G1 that a
// contributor's public key for that role is built from.
func ChallengeBaseG1(prevHash []byte, role int) curve.G1Affine {
	digest := challengeInput(0x01, role, prevHash)
	return hashToG1(digest)
}

// ChallengePointG2 derives the transcript-bound challenge point in G2
// that a contributor's PoK for (sg, sxg) is proven against.
func ChallengePointG2(sg, sxg curve.G1Affine, prevHash []byte, role int) curve.G2Affine {
	sgBytes := sg.Bytes()
	sxgBytes := sxg.Bytes()
	digest := challengeInput(0x02, role, prevHash, sgBytes[:], sxgBytes[:])
	return hashToG2(digest)
}

// hashToG1 maps a 64-byte digest onto G1 by treating it as an Fr scalar
// and multiplying the generator; curve-fixed, uniform via wide reduction.
func hashToG1(digest []byte) curve.G1Affine {
	g1, _ := curve.Generators()
	e := curve.HashToFr(digest)
	var p curve.G1Affine
	p.ScalarMultiplication(&g1, curve.ScalarToBigInt(&e))
	return p
}

func hashToG2(digest []byte) curve.G2Affine {
	_, g2 := curve.Generators()
	e := curve.HashToFr(digest)
	var p curve.G2Affine
	p.ScalarMultiplication(&g2, curve.ScalarToBigInt(&e))
	return p
}

// DeriveChallengeScalar derives the k-th Fr scalar used as a
// random-linear-combination coefficient, by counter-extension of the
// transcript personalization: deterministic, so every verifier recomputes
// the same coefficients from the same response without exchanging them.
func DeriveChallengeScalar(counter uint64) curve.Fr {
	h := newHasher()
	h.Write([]byte{0x03})
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)
	h.Write(buf[:])
	digest := h.Sum(nil)
	return curve.HashToFr(digest)
}
