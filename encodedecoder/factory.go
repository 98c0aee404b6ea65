package encodedecoder

import "fmt"

// New returns the codec of type t. It panics on an unknown type.
func New(t Type) EncodeDecoder {
	switch t {
	case TypeGOB:
		return NewGOB()
	case TypeJSON:
		return NewJSON()
	}

	panic(fmt.Errorf("unknown encodedecoder type %s", t))
}

// ParseType validates a codec name.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeGOB, TypeJSON:
		return t, nil
	}
	return "", fmt.Errorf("unknown encodedecoder type %q", s)
}
