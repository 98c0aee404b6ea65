package encodedecoder

import (
	"bytes"
	"encoding/gob"
)

type gobED struct{}

// NewGOB returns a codec backed by encoding/gob.
func NewGOB() EncodeDecoder {
	return &gobED{}
}

func (g *gobED) Encode(v interface{}) ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (g *gobED) Decode(v interface{}, b []byte) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}
