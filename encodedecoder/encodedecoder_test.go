package encodedecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Path  string
	Lines []string
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("gob")
	require.NoError(t, err)
	assert.Equal(t, TypeGOB, typ)

	_, err = ParseType("yaml")
	assert.Error(t, err)
	assert.Panics(t, func() { New(Type("yaml")) })
}

func TestEncodeDecoder(t *testing.T) {
	for _, typ := range []Type{TypeGOB, TypeJSON} {
		typ := typ
		t.Run(string(typ), func(t *testing.T) {
			ed := New(typ)
			in := snapshot{Path: "top10.txt", Lines: []string{"1990", "1. Vogue"}}

			b, err := ed.Encode(in)
			require.NoError(t, err)

			var out snapshot
			require.NoError(t, ed.Decode(&out, b))
			assert.Equal(t, in, out)
		})
	}
}
