package domref

import (
	"errors"

	"github.com/pthm/domref/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a manifest encoder. A nil key produces unsigned
// payloads; any other key signs them with HMAC-SHA256.
func NewEncoder(key []byte) *Encoder {
	return encoding.NewEncoder(key)
}

// EncodeManifest serializes m with msgpack, signing it when enc has a key.
func EncodeManifest(enc *Encoder, m Manifest) ([]byte, error) {
	return enc.Encode(m)
}

// DecodeManifest deserializes a payload produced by EncodeManifest.
func DecodeManifest(enc *Encoder, data []byte) (Manifest, error) {
	var m Manifest
	if err := enc.Decode(data, &m); err != nil {
		return Manifest{}, wrapEncodingError(err)
	}
	return m, nil
}

// wrapEncodingError wraps encoding package errors with domref sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return errors.Join(ErrInvalidFormat, err)
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	return err
}
