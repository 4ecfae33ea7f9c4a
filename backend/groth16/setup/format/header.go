// Package format defines the ceremony's on-disk file layout: a CBOR
// header carrying the flexible metadata (curve, proving system, power,
// chunk bounds, parent hash) followed by the raw, fixed-width point
// body. Byte positions are fully determined by that metadata, so chunk
// bodies can be located and read without parsing the points before them.
package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

const magic uint32 = 0x504f5431 // "POT1"

// Header is the flexible, CBOR-encoded metadata block every challenge
// and response file opens with.
type Header struct {
	Version       uint16
	Curve         string
	ProvingSystem string
	Power         int
	ChunkStart    int
	ChunkEnd      int
	ParentHash    []byte // Blake2b-512 digest of the predecessor file, or zero bytes for `new`
}

// WriteTo writes a fixed 12-byte preamble (magic, version, header
// length) followed by the CBOR-encoded Header, so a reader can size its
// initial read without scanning.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	payload, err := cbor.Marshal(h)
	if err != nil {
		return 0, err
	}

	var preamble [12]byte
	binary.BigEndian.PutUint32(preamble[0:4], magic)
	binary.BigEndian.PutUint16(preamble[4:6], h.Version)
	binary.BigEndian.PutUint16(preamble[6:8], 0) // reserved
	binary.BigEndian.PutUint32(preamble[8:12], uint32(len(payload)))

	n, err := w.Write(preamble[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(payload)
	return int64(n + m), err
}

// ReadHeader reads and validates the preamble and CBOR body a WriteTo
// call produced.
func ReadHeader(r io.Reader) (*Header, int64, error) {
	var preamble [12]byte
	if _, err := io.ReadFull(r, preamble[:]); err != nil {
		return nil, 0, err
	}
	if got := binary.BigEndian.Uint32(preamble[0:4]); got != magic {
		return nil, 0, fmt.Errorf("format: bad magic %x", got)
	}
	payloadLen := binary.BigEndian.Uint32(preamble[8:12])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, 0, err
	}

	h := new(Header)
	if err := cbor.Unmarshal(payload, h); err != nil {
		return nil, 0, err
	}
	return h, int64(len(preamble) + len(payload)), nil
}
