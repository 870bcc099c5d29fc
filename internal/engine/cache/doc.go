// Package cache keeps an on-disk copy of fetched member datasets.
//
// Each entry is one JSON file under the cache directory (by default
// ~/.rosterview/cache/) holding the raw payload, the source it came from and
// its expiry. Keys are SHA256 digests of the source location. The cache is
// opt-in: a disabled FileStore answers every call with ErrCacheDisabled.
package cache
