package discord

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestHook_shouldFire(t *testing.T) {
	hook := &Hook{
		parent:     nil,
		limit:      1 * time.Millisecond,
		timestamps: make(map[string]time.Time),
	}
	unlimited := &Hook{timestamps: make(map[string]time.Time)}

	ts := time.Now()

	tests := []struct {
		name      string
		message   string
		timestamp time.Time
		want      bool
	}{
		{
			name:      "first message",
			message:   "Session aborted.",
			timestamp: ts,
			want:      true,
		},
		{
			name:      "other message",
			message:   "Failed to cache snapshot.",
			timestamp: ts,
			want:      true,
		},
		{
			name:      "repeat at same time",
			message:   "Session aborted.",
			timestamp: ts,
			want:      false,
		},
		{
			name:      "repeat within limit",
			message:   "Session aborted.",
			timestamp: ts.Add(500 * time.Microsecond),
			want:      false,
		},
		{
			name:      "repeat after limit",
			message:   "Session aborted.",
			timestamp: ts.Add(1500 * time.Microsecond),
			want:      true,
		},
		{
			name:      "repeat within renewed limit",
			message:   "Session aborted.",
			timestamp: ts.Add(2000 * time.Microsecond),
			want:      false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Time:    tt.timestamp,
				Message: tt.message,
			}

			assert.Equal(t, tt.want, hook.shouldFire(entry))
			assert.True(t, unlimited.shouldFire(entry))
		})
	}
}
