// Package encodedecoder provides the codecs used to store database snapshots.
package encodedecoder

// Type names a codec.
type Type string

// Codec types.
const (
	TypeGOB  Type = "gob"
	TypeJSON Type = "json"
)

// EncodeDecoder encodes values to bytes and back.
type EncodeDecoder interface {
	Encode(v interface{}) ([]byte, error)
	Decode(v interface{}, b []byte) error
}
