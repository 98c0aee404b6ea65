package musicguru

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycoin/musicguru/songdb"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("x"), KindUnknown},
		{"argument", ErrPortOutOfRange, KindArgument},
		{"wrapped protocol", wrap(ErrInvalidYear, errors.New("strconv")), KindProtocol},
		{"database", wrap(ErrDatabase, songdb.ErrFileAccess), KindFileAccess},
		{"songdb file access", fmt.Errorf("%w: denied", songdb.ErrFileAccess), KindFileAccess},
		{"songdb not found", songdb.ErrNotFound, KindNotFound},
		{"songdb no range", songdb.ErrNoDateRange, KindNotFound},
		{"database without range", wrap(ErrNoDateRange, songdb.ErrNoDateRange), KindNotFound},
		{"song not found", fmt.Errorf("%w: 2050", ErrSongNotFound), KindNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorCodes(t *testing.T) {
	err, ok := ErrorFromCode(31)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidYear, err)
	assert.Equal(t, uint8(31), CodeFromError(wrap(ErrInvalidYear, errors.New("bad"))))
	assert.Equal(t, uint8(0), CodeFromError(errors.New("uncoded")))
	assert.EqualError(t, ErrInvalidYear, "code 31 - invalid year parse")

	assert.Panics(t, func() { _ = NewError(31, KindProtocol, "duplicate") })
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		in      string
		want    uint16
		wantErr error
	}{
		{"0", 0, nil},
		{"8008", 8008, nil},
		{"65535", 65535, nil},
		{"65536", 0, ErrPortOutOfRange},
		{"-1", 0, ErrPortOutOfRange},
		{"http", 0, ErrInvalidPort},
	}
	for _, tc := range cases {
		got, err := ParsePort(tc.in)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.in)
			assert.Equal(t, KindArgument, KindOf(err))
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseYear("nineteen")
	assert.ErrorIs(t, err, ErrInvalidYearArg)
	assert.ErrorIs(t, CheckArgCount([]string{"a"}, 3), ErrArgCount)
	assert.NoError(t, CheckArgCount([]string{"a", "b", "c"}, 3))
}
