package httputil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/apinav/pkg/buildinfo"
	"github.com/matzehuels/apinav/pkg/errors"
)

// MaxBodySize is the largest document a Fetcher accepts.
const MaxBodySize = 32 << 20

// DefaultTTL is how long fetched documents stay cached.
const DefaultTTL = time.Hour

// Retry settings used by Fetch.
var (
	fetchAttempts = 3
	fetchDelay    = time.Second
)

// Store is the subset of a cache a Fetcher needs. Every cache.Cache
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type noStore struct{}

func (noStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Fetcher downloads remote documents.
type Fetcher struct {
	client *http.Client
	cache  Store
	ttl    time.Duration
}

// NewFetcher creates a Fetcher. A nil client uses a client with a 30 second
// timeout; a nil store disables caching; a non-positive ttl uses
// [DefaultTTL].
func NewFetcher(client *http.Client, store Store, ttl time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if store == nil {
		store = noStore{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Fetcher{client: client, cache: store, ttl: ttl}
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CacheKey returns the cache key a fetched URL is stored under.
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "document:" + hex.EncodeToString(sum[:])
}

// Fetch returns the body of rawURL, from the cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsURL(rawURL) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not an http(s) url: %q", rawURL)
	}

	key := CacheKey(rawURL)
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var body []byte
	err := Retry(ctx, fetchAttempts, fetchDelay, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
		}
		if code := errors.GetCode(err); code != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}

	_ = f.cache.Set(ctx, key, body, f.ttl)
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", "apinav/"+buildinfo.Version)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("%s: %s", rawURL, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s: %s", rawURL, resp.Status)
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: document larger than %d bytes", rawURL, MaxBodySize)
	}
	return data, nil
}
