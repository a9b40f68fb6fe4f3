// Package cache provides byte caches for rendered apinav artifacts.
//
// A [Cache] stores opaque byte slices under string keys with an optional
// time-to-live. Four backends are available:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON envelope per key below a directory (CLI default)
//   - [RedisCache]: shared cache for servers, expiry handled by Redis
//   - [MongoCache]: durable cache, expiry handled by a TTL index
//
// Keys are produced by a [Keyer] so that the CLI and the HTTP server agree
// on where a given artifact lives.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte cache keyed by string.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero or less stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every option that changes the bytes of an artifact.
type ArtifactKeyOpts struct {
	Output       string `json:"output"`
	Format       string `json:"format"`
	HideSchemas  bool   `json:"hide_schemas"`
	HideInternal bool   `json:"hide_internal"`
	Root         string `json:"root"`
	Subject      string `json:"subject"`
	Detailed     bool   `json:"detailed"`
}

// DefaultKeyer hashes key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256(docHash, opts)>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashJSON hashes the JSON encoding of v.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
