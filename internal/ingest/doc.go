// Package ingest loads the member dataset from its source.
//
// The source is either an http(s) URL fetched with one unauthenticated GET,
// or a local JSON file. There is no retry: a failed load is reported to the
// caller, which shows an empty table. An optional cache.FileStore can serve
// a fresh copy of the last successful payload instead of the network.
package ingest
