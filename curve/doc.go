// Package curve is the ceremony's capability abstraction over a single
// pairing-friendly curve from gnark-crypto.
//
// Exactly one of the build-tagged files in this package is compiled into
// any given binary (bn254 by default; bls12377, bls12381 or bw6761 with
// the matching build tag): build tags and type aliases instead of a
// shared interface, so every call here monomorphizes to the concrete
// gnark-crypto type with no v-table indirection per point.
package curve
