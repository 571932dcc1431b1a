// Package archive fetches documents from the timing archive.
//
// The archive is a path-based static document store: a season index at
// <year>/Index.json and up to ten named JSON documents per session under the
// session's archive path. The Client wraps every request with a shared rate
// limiter, retry-with-backoff for transient failures, and mirror-host
// fallback for denied or exhausted requests.
//
// Document absence is an expected outcome and surfaces as ErrAbsent; a 2xx
// response with an unparsable body surfaces as ErrCorrupt, the one hard
// failure, since it means the upstream contract itself is broken.
package archive
