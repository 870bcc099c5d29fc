package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// CacheEntry is one cached dataset with its expiry metadata.
//
//nolint:revive // CacheEntry is the canonical name for this exported type.
type CacheEntry struct {
	// Key is the SHA256 key of the source.
	Key string `json:"key"`

	// Source is the URL or path the payload was fetched from.
	Source string `json:"source,omitempty"`

	// Data is the raw JSON payload.
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// TTLSeconds is the time-to-live the entry was written with.
	TTLSeconds int `json:"ttl_seconds"`
}

// NewCacheEntry creates an entry expiring ttlSeconds from now.
func NewCacheEntry(key, source string, data json.RawMessage, ttlSeconds int) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Key:        key,
		Source:     source,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiry.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *CacheEntry) TimeUntilExpiration() time.Duration {
	return max(time.Until(e.ExpiresAt), 0)
}

// entryJSON is the on-disk layout. Timestamps keep sub-second precision so
// short TTLs survive a round trip.
type entryJSON struct {
	Key        string          `json:"key"`
	Source     string          `json:"source,omitempty"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  string          `json:"created_at"`
	ExpiresAt  string          `json:"expires_at"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// MarshalJSON writes timestamps as RFC3339 with nanoseconds.
func (e *CacheEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Key:        e.Key,
		Source:     e.Source,
		Data:       e.Data,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339Nano),
		ExpiresAt:  e.ExpiresAt.Format(time.RFC3339Nano),
		TTLSeconds: e.TTLSeconds,
	})
}

// UnmarshalJSON parses the on-disk layout.
func (e *CacheEntry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil CacheEntry")
	}

	var aux entryJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	created, err := time.Parse(time.RFC3339Nano, aux.CreatedAt)
	if err != nil {
		return err
	}
	expires, err := time.Parse(time.RFC3339Nano, aux.ExpiresAt)
	if err != nil {
		return err
	}

	*e = CacheEntry{
		Key:        aux.Key,
		Source:     aux.Source,
		Data:       aux.Data,
		CreatedAt:  created,
		ExpiresAt:  expires,
		TTLSeconds: aux.TTLSeconds,
	}
	return nil
}
