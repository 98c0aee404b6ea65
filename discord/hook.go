// Package discord forwards error logs to a Discord webhook.
package discord

import (
	"os"
	"sync"
	"time"

	"github.com/kz/discordrus"
	"github.com/sirupsen/logrus"
)

const (
	webhookURLEnvName = "DISCORD_WEBHOOK_URL"

	// DefaultLimit suppresses repeats of the same message within this window.
	DefaultLimit = time.Minute
)

// Hook wraps a discordrus hook, dropping messages repeated within a limit.
type Hook struct {
	parent logrus.Hook
	limit  time.Duration

	mx         sync.Mutex
	timestamps map[string]time.Time
}

// Option configures a Hook.
type Option func(*Hook)

// WithLimit sets enables logger rate limiter with specified limit.
func WithLimit(limit time.Duration) Option {
	return func(h *Hook) {
		h.limit = limit
	}
}

// NewHook returns a new Hook posting as tag to webHookURL.
func NewHook(tag, webHookURL string, opts ...Option) logrus.Hook {
	hook := &Hook{
		parent:     discordrus.NewHook(webHookURL, logrus.ErrorLevel, discordOpts(tag)),
		timestamps: make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(hook)
	}

	return hook
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return h.parent.Levels()
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	if h.shouldFire(entry) {
		return h.parent.Fire(entry)
	}

	return nil
}

func (h *Hook) shouldFire(entry *logrus.Entry) bool {
	if h.limit == 0 {
		return true
	}

	h.mx.Lock()
	defer h.mx.Unlock()

	if v, ok := h.timestamps[entry.Message]; ok && entry.Time.Sub(v) < h.limit {
		return false
	}
	h.timestamps[entry.Message] = entry.Time

	return true
}

func discordOpts(tag string) *discordrus.Opts {
	return &discordrus.Opts{
		Username:        tag,
		TimestampFormat: time.RFC3339,
		TimestampLocale: time.UTC,
	}
}

// GetWebhookURLFromEnv returns the webhook URL configured in the environment.
func GetWebhookURLFromEnv() string {
	return os.Getenv(webhookURLEnvName)
}
