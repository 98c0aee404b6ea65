package songdb

import (
	"context"
	"fmt"
	"time"

	"github.com/skycoin/musicguru/encodedecoder"
)

// Source kinds accepted by NewSource.
const (
	SourceFile   = "file"
	SourceMemory = "memory"
	SourceRedis  = "redis"
)

// DefaultCacheTTL is how long a cached snapshot is trusted before the file is reread.
const DefaultCacheTTL = 30 * time.Second

// Source provides the lines of the database.
type Source interface {
	// Lines returns all non-empty lines in file order.
	Lines(ctx context.Context) ([]string, error)
}

// Config configures a Source.
type Config struct {
	Path          string
	Lines         []string
	RedisURL      string
	RedisPassword string
	TTL           time.Duration
	Codec         encodedecoder.Type
}

// NewSource returns an initialized source, kind represents which
// source to initialize.
func NewSource(kind string, conf *Config) (Source, error) {
	if conf == nil {
		conf = &Config{}
	}
	path := conf.Path
	if path == "" {
		path = DefaultFile
	}

	switch kind {
	case SourceFile, "":
		return NewFileSource(path), nil
	case SourceMemory:
		return NewMemorySource(conf.Lines), nil
	case SourceRedis:
		codec := conf.Codec
		if codec == "" {
			codec = encodedecoder.TypeJSON
		}
		ttl := conf.TTL
		if ttl == 0 {
			ttl = DefaultCacheTTL
		}
		return newRedisSource(NewFileSource(path), conf.RedisURL, conf.RedisPassword, ttl, encodedecoder.New(codec))
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

// FileSource rereads the database file on every call.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the database file path.
func (fs *FileSource) Path() string {
	return fs.path
}

// Lines implements Source.
func (fs *FileSource) Lines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadLines(fs.path)
}

// MemorySource serves a fixed set of lines.
type MemorySource struct {
	lines []string
}

// NewMemorySource returns a MemorySource over the non-empty entries of lines.
func NewMemorySource(lines []string) *MemorySource {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return &MemorySource{lines: kept}
}

// Lines implements Source.
func (ms *MemorySource) Lines(_ context.Context) ([]string, error) {
	out := make([]string, len(ms.lines))
	copy(out, ms.lines)
	return out, nil
}
