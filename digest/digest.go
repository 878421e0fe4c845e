// Package digest computes the cache-validity digests used across symdiff:
// raw content hashes, whitespace-insensitive body hashes and baseline hashes.
// They identify content for cache lookups and are not security primitives.
package digest

import (
	"strconv"
	"strings"
	"time"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns the 64-bit highwayhash of data
func Hash(data []byte) uint64 {
	return highwayhash.Sum64(data, key)
}

// Content returns hex digest of raw content
func Content(data []byte) string {
	return strconv.FormatUint(Hash(data), 16)
}

// Body returns digest of whitespace normalized text, so formatting-only edits hash the same
func Body(text string) string {
	return Content([]byte(NormalizeWhitespace(text)))
}

// Baseline returns digest of type:reference:timestamp
func Baseline(kind, reference string, timestamp time.Time) string {
	builder := strings.Builder{}
	builder.WriteString(kind)
	builder.WriteString(":")
	builder.WriteString(reference)
	builder.WriteString(":")
	if !timestamp.IsZero() {
		builder.WriteString(timestamp.UTC().Format(time.RFC3339Nano))
	}
	return Content([]byte(builder.String()))
}

// NormalizeWhitespace collapses every whitespace run into a single space and trims both ends
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
