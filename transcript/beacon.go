package transcript

import (
	"crypto/sha256"

	"github.com/powersoftau/ceremony-core/curve"
)

// BeaconDelay applies SHA-256 iteratively to beaconHash, iterations
// times, as a sequential-work delay function: the result can't be
// computed faster by an attacker with more parallel hardware, which is
// the point of deriving a contributor's secret scalars from a public
// beacon only after the ceremony proper has closed.
func BeaconDelay(beaconHash []byte, iterations uint64) []byte {
	cur := beaconHash
	for i := uint64(0); i < iterations; i++ {
		sum := sha256.Sum256(cur)
		cur = sum[:]
	}
	return cur
}

// BeaconScalars derives the n secret scalars (tau, alpha, beta, ... for
// a phase1 beacon contribution; delta alone for phase2's) a beacon
// contribution folds in, by counter-extension of the delayed beacon
// digest through the same Fr-extraction the transcript hasher uses
// elsewhere.
func BeaconScalars(delayed []byte, n int) []curve.Fr {
	out := make([]curve.Fr, n)
	for i := 0; i < n; i++ {
		h := newHasher()
		h.Write([]byte{0x04})
		h.Write(delayed)
		var idx [8]byte
		idx[7] = byte(i)
		h.Write(idx[:])
		out[i] = curve.HashToFr(h.Sum(nil))
	}
	return out
}
