package format

import (
	"bytes"
	"io"

	"golang.org/x/sync/errgroup"
)

// Body is anything that can serialize itself to bytes;
// phase1.Contribution and phase2.Contribution both implement it via
// their WriteTo methods.
type Body interface {
	WriteTo(w io.Writer) (int64, error)
}

// WriteFile writes a Header followed by a Body's serialized bytes.
// The two are independent byte streams, computed concurrently via
// errgroup the way the constraint system's header+sections are, then
// written out header-first so ReadFile's single pass can size its
// reads from the header alone.
func WriteFile(w io.Writer, h *Header, body Body) (int64, error) {
	var headerBuf, bodyBuf bytes.Buffer
	var g errgroup.Group

	g.Go(func() error {
		_, err := h.WriteTo(&headerBuf)
		return err
	})
	g.Go(func() error {
		_, err := body.WriteTo(&bodyBuf)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n, err := w.Write(headerBuf.Bytes())
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(bodyBuf.Bytes())
	return int64(n + m), err
}

// ReadFile reads a Header, then hands the remaining stream to
// readBody (typically a Contribution's ReadFrom).
func ReadFile(r io.Reader, readBody func(io.Reader) (int64, error)) (*Header, error) {
	h, _, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := readBody(r); err != nil {
		return nil, err
	}
	return h, nil
}
