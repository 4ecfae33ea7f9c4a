package transcript

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/powersoftau/ceremony-core/ceremonyerr"
	"github.com/powersoftau/ceremony-core/curve"
)

// DeterministicRNG is a ChaCha20 stream keyed from a 32-byte seed that
// turns a seed into an unbounded stream of pseudo-random bytes and Fr
// scalars. Two callers seeded identically produce the identical scalar
// stream. Beacon contributions do not use it: they derive their scalars
// through BeaconScalars.
type DeterministicRNG struct {
	cipher *chacha20.Cipher
}

// NewDeterministicRNG seeds a stream from the first 32 bytes of seed (a
// SHA-256 beacon digest is already that size, a 64-byte Blake2b-512
// transcript hash is truncated; shorter seeds are zero-extended).
func NewDeterministicRNG(seed []byte) (*DeterministicRNG, error) {
	var key [32]byte
	copy(key[:], seed)
	var nonce [12]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &DeterministicRNG{cipher: c}, nil
}

func (r *DeterministicRNG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

var _ io.Reader = (*DeterministicRNG)(nil)

// NextScalar draws the next Fr element from the stream via wide
// reduction: 64 bytes of keystream reduced modulo the scalar field,
// giving a statistically uniform result without rejection sampling.
func (r *DeterministicRNG) NextScalar() (curve.Fr, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return curve.Fr{}, err
	}
	s := curve.HashToFr(buf[:])
	if s.IsZero() {
		return curve.Fr{}, ceremonyerr.New(ceremonyerr.ZeroScalar, "stream", -1, nil)
	}
	return s, nil
}

// EntropySeed mixes caller-supplied entropy (e.g. from a contributor's
// mouse/keyboard jitter collector, out of scope here) with fresh
// crypto/rand bytes, so a low-entropy caller-supplied seed alone can
// never fully determine the resulting scalars.
func EntropySeed(entropy []byte) ([]byte, error) {
	var fresh [32]byte
	if _, err := rand.Read(fresh[:]); err != nil {
		return nil, err
	}
	return HashContribution(append(append([]byte{}, entropy...), fresh[:]...)), nil
}

// Scrub overwrites a secret scalar buffer's backing bytes with zeros once
// it is no longer needed. Go's GC doesn't guarantee secrets are wiped
// promptly, so contribute paths call this explicitly after folding a
// scalar into the accumulator.
func Scrub(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
