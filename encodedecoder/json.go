package encodedecoder

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigFastest

type jsonED struct{}

// NewJSON returns a codec backed by json-iterator.
func NewJSON() EncodeDecoder {
	return &jsonED{}
}

func (j *jsonED) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j *jsonED) Decode(v interface{}, b []byte) error {
	return json.Unmarshal(b, v)
}
