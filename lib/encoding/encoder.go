package encoding

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrSignatureInvalid = errors.New("signature verification failed")
)

// magic prefixes every encoded payload; the byte after it holds the flags.
var magic = []byte("DRM1")

const (
	flagSigned byte = 1 << iota
)

// sigLen is the truncated HMAC-SHA256 length: 16 bytes = 128 bits.
const sigLen = 16

// Encoder handles encoding and decoding of binding manifests.
// It supports two modes:
//   - Plain (no key): header + msgpack body
//   - Signed: header + msgpack body + truncated HMAC - readable but tamper-evident
type Encoder struct {
	key []byte
}

// NewEncoder creates a new encoder. A nil or empty key produces unsigned
// payloads; any other key signs them. Keys shorter than 32 bytes are
// stretched with SHA-256.
func NewEncoder(key []byte) *Encoder {
	if len(key) == 0 {
		return &Encoder{}
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Encoder{key: key}
}

// Signed reports whether the encoder signs its payloads.
func (e *Encoder) Signed() bool {
	return len(e.key) > 0
}

// Encode serializes v with msgpack and frames it.
func (e *Encoder) Encode(v any) ([]byte, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}

	var flags byte
	if e.Signed() {
		flags |= flagSigned
	}

	out := make([]byte, 0, len(magic)+1+len(packed)+sigLen)
	out = append(out, magic...)
	out = append(out, flags)
	out = append(out, packed...)
	if e.Signed() {
		out = append(out, e.sign(packed)...)
	}
	return out, nil
}

// Decode verifies the frame and deserializes it into v. A signed encoder
// rejects unsigned payloads.
func (e *Encoder) Decode(data []byte, v any) error {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic) {
		return ErrInvalidFormat
	}
	flags := data[len(magic)]
	body := data[len(magic)+1:]

	signed := flags&flagSigned != 0
	switch {
	case signed && !e.Signed():
		return ErrSignatureInvalid
	case !signed && e.Signed():
		return ErrSignatureInvalid
	case signed:
		if len(body) < sigLen {
			return ErrInvalidFormat
		}
		sig := body[len(body)-sigLen:]
		body = body[:len(body)-sigLen]
		if !hmac.Equal(sig, e.sign(body)) {
			return ErrSignatureInvalid
		}
	}

	if err := msgpack.Unmarshal(body, v); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	return nil
}

func (e *Encoder) sign(data []byte) []byte {
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	return mac.Sum(nil)[:sigLen]
}
