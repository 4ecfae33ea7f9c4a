package format

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBody struct {
	payload []byte
}

func (b *fakeBody) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.payload)
	return int64(n), err
}

func (b *fakeBody) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	b.payload = buf
	return int64(len(buf)), err
}

func TestHeaderRoundTrip(t *testing.T) {
	h := &Header{
		Version:       1,
		Curve:         "bn254",
		ProvingSystem: "groth16",
		Power:         12,
		ChunkStart:    10,
		ChunkEnd:      20,
		ParentHash:    bytes.Repeat([]byte{0xab}, 64),
	}

	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	require.NoError(t, err)

	got, n, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, h.Version, got.Version)
	assert.Equal(t, h.Curve, got.Curve)
	assert.Equal(t, h.ProvingSystem, got.ProvingSystem)
	assert.Equal(t, h.Power, got.Power)
	assert.Equal(t, h.ChunkStart, got.ChunkStart)
	assert.Equal(t, h.ChunkEnd, got.ChunkEnd)
	assert.Equal(t, h.ParentHash, got.ParentHash)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0})
	_, _, err := ReadHeader(&buf)
	require.Error(t, err)
}

func TestWriteFileThenReadFileRoundTrip(t *testing.T) {
	h := &Header{Version: 1, Curve: "bn254"}
	body := &fakeBody{payload: []byte("contribution body bytes")}

	var buf bytes.Buffer
	_, err := WriteFile(&buf, h, body)
	require.NoError(t, err)

	var decoded fakeBody
	gotHeader, err := ReadFile(&buf, decoded.ReadFrom)
	require.NoError(t, err)
	assert.Equal(t, h.Curve, gotHeader.Curve)
	assert.Equal(t, body.payload, decoded.payload)
}
