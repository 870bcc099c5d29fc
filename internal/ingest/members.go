package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/engine/cache"
	"github.com/rshade/rosterview/internal/logging"
)

// Defaults for the HTTP source.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 32 << 20
	DefaultUserAgent = "rosterview"

	componentName = "ingest"
)

// Common ingest errors.
var (
	ErrEmptySource       = errors.New("member source cannot be empty")
	ErrUnsupportedScheme = errors.New("unsupported member source scheme")
	ErrBodyTooLarge      = errors.New("member payload exceeds size limit")
)

// FetchError is returned when the HTTP source answers with a non-2xx status.
type FetchError struct {
	Status int
	URL    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Cache is the subset of cache.FileStore used by Loader.
type Cache interface {
	IsEnabled() bool
	Get(key string) (*cache.CacheEntry, error)
	Set(key, source string, data json.RawMessage) error
	Delete(key string) error
}

// Result is the outcome of a successful load.
type Result struct {
	Members   []engine.Member
	FromCache bool
	FetchedAt time.Time
}

// Loader fetches the dataset for one source. Concurrent loads share a
// single request.
type Loader struct {
	source    string
	client    *http.Client
	userAgent string
	maxBytes  int64
	cache     Cache
	now       func() time.Time

	group singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client. Its Timeout applies per request.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the request timeout. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.client = &http.Client{Timeout: d, Transport: l.client.Transport}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		if ua != "" {
			l.userAgent = ua
		}
	}
}

// WithMaxBytes limits the accepted payload size.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithCache serves fresh cached payloads and stores successful fetches.
func WithCache(c Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// NewLoader creates a Loader for source, an http(s) URL, a file:// URL or a
// local path.
func NewLoader(source string, opts ...Option) (*Loader, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}
	if _, err := classify(source); err != nil {
		return nil, err
	}

	l := &Loader{
		source:    source,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Source returns the configured source location.
func (l *Loader) Source() string {
	return l.source
}

// Load returns the members, from cache when a fresh entry exists.
func (l *Loader) Load(ctx context.Context) ([]engine.Member, error) {
	res, err := l.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	return res.Members, nil
}

// Fetch loads the members. With bypassCache the source is always read,
// though a successful read still refreshes the cache.
//
// The shared read is not bound to any one caller's cancellation; a caller
// that gives up returns ctx.Err() while the others keep waiting. The HTTP
// client timeout still bounds the read.
func (l *Loader) Fetch(ctx context.Context, bypassCache bool) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	key := "load"
	if bypassCache {
		key = "refresh"
	}

	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (interface{}, error) {
		return l.fetch(shared, bypassCache)
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		res, _ := r.Val.(Result)
		return res, nil
	}
}

func (l *Loader) fetch(ctx context.Context, bypassCache bool) (Result, error) {
	log := logging.ComponentLogger(logging.FromContext(ctx), componentName)
	cacheKey := cache.SourceKey(l.source)

	if !bypassCache && l.cacheEnabled() {
		if entry, err := l.cache.Get(cacheKey); err == nil {
			members, decodeErr := engine.DecodeMembers(entry.Data)
			if decodeErr == nil {
				log.Debug().
					Str("source", l.source).
					Int("member_count", len(members)).
					Dur("age", entry.Age()).
					Msg("serving members from cache")
				return Result{Members: members, FromCache: true, FetchedAt: entry.CreatedAt}, nil
			}
			log.Warn().Err(decodeErr).Msg("dropping undecodable cache entry")
			if delErr := l.cache.Delete(cacheKey); delErr != nil {
				log.Debug().Err(delErr).Msg("failed to drop cache entry")
			}
		} else if !errors.Is(err, cache.ErrCacheNotFound) {
			log.Debug().Err(err).Msg("cache miss")
		}
	}

	log.Debug().
		Str("operation", "load_members").
		Str("source", l.source).
		Msg("loading members")

	data, err := l.read(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", l.source).Msg("failed to load members")
		return Result{}, err
	}

	members, err := engine.DecodeMembers(data)
	if err != nil {
		log.Error().Err(err).Int("payload_bytes", len(data)).Msg("failed to decode members")
		return Result{}, err
	}

	if l.cacheEnabled() {
		if setErr := l.cache.Set(cacheKey, l.source, data); setErr != nil {
			log.Warn().Err(setErr).Msg("failed to cache members")
		}
	}

	log.Info().
		Str("source", l.source).
		Int("member_count", len(members)).
		Int("payload_bytes", len(data)).
		Msg("members loaded")

	return Result{Members: members, FetchedAt: l.now()}, nil
}

func (l *Loader) cacheEnabled() bool {
	return l.cache != nil && l.cache.IsEnabled()
}

type sourceKind int

const (
	sourceHTTP sourceKind = iota
	sourceFile
)

func classify(source string) (sourceKind, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		return sourceFile, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return sourceHTTP, nil
	case "file":
		return sourceFile, nil
	default:
		// A single letter is a Windows drive, not a scheme.
		if len(u.Scheme) == 1 {
			return sourceFile, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	kind, err := classify(l.source)
	if err != nil {
		return nil, err
	}
	if kind == sourceHTTP {
		return l.get(ctx)
	}
	return l.readFile()
}

func (l *Loader) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching members: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, l.maxBytes))
		return nil, &FetchError{Status: resp.StatusCode, URL: l.source}
	}

	return l.readLimited(resp.Body)
}

func (l *Loader) readFile() ([]byte, error) {
	path := l.source
	if u, err := url.Parse(l.source); err == nil && strings.EqualFold(u.Scheme, "file") {
		path = u.Path
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading member file: %w", err)
	}
	defer f.Close()

	return l.readLimited(f)
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading member payload: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, l.maxBytes)
	}
	return data, nil
}
