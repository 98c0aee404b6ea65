package songdb

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis"

	"github.com/skycoin/musicguru/encodedecoder"
)

const redisKeyPrefix = "musicguru:songdb:"

// Snapshot is the cached form of a database file.
type Snapshot struct {
	Path    string   `json:"path"`
	ModTime int64    `json:"mod_time"`
	Lines   []string `json:"lines"`
}

// redisSource caches the lines of a FileSource in redis.
// The file remains the source of truth and any redis failure falls back to it.
type redisSource struct {
	file    *FileSource
	client  *redis.Client
	ttl     time.Duration
	codec   encodedecoder.EncodeDecoder
	key     string
	modTime func(path string) (int64, error)
}

func newRedisSource(file *FileSource, url, password string, ttl time.Duration, codec encodedecoder.EncodeDecoder) (Source, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opt.Password = password
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping().Result(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(file.Path())
	if err != nil {
		abs = file.Path()
	}

	return &redisSource{
		file:    file,
		client:  client,
		ttl:     ttl,
		codec:   codec,
		key:     redisKeyPrefix + abs,
		modTime: fileModTime,
	}, nil
}

// Lines implements Source.
func (r *redisSource) Lines(ctx context.Context) ([]string, error) {
	mod, err := r.modTime(r.file.Path())
	if err != nil {
		// Let the file source report the access error.
		return r.file.Lines(ctx)
	}

	if snap, ok := r.cached(ctx); ok && snap.ModTime == mod {
		return snap.Lines, nil
	}

	lines, err := r.file.Lines(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, &Snapshot{Path: r.file.Path(), ModTime: mod, Lines: lines})
	return lines, nil
}

func (r *redisSource) cached(ctx context.Context) (*Snapshot, bool) {
	payload, err := r.client.WithContext(ctx).Get(r.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("Failed to read cached snapshot, using file.")
		}
		return nil, false
	}

	var snap Snapshot
	if err := r.codec.Decode(&snap, payload); err != nil {
		log.WithError(err).Warnf("Failed to decode cached snapshot %q", r.key)
		return nil, false
	}
	return &snap, true
}

func (r *redisSource) store(ctx context.Context, snap *Snapshot) {
	payload, err := r.codec.Encode(snap)
	if err != nil {
		log.WithError(err).Warn("Failed to encode snapshot.")
		return
	}
	if err := r.client.WithContext(ctx).Set(r.key, payload, r.ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to cache snapshot.")
	}
}

// Close closes the redis client.
func (r *redisSource) Close() error {
	return r.client.Close()
}

func fileModTime(path string) (int64, error) {
	fi, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return 0, err
	}
	return fi.ModTime().UnixNano(), nil
}
