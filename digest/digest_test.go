package digest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/symdiff/digest"
)

func TestBody(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		equal bool
	}{
		{name: "same text", a: "return 1;", b: "return 1;", equal: true},
		{name: "surrounding whitespace", a: "  return 1;  ", b: "return 1;", equal: true},
		{name: "inner whitespace runs", a: "return\n\t  1;", b: "return 1;", equal: true},
		{name: "different token", a: "return 1;", b: "return 2;", equal: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, digest.Body(tt.a) == digest.Body(tt.b))
		})
	}
}

func TestContent(t *testing.T) {
	assert.Equal(t, digest.Content([]byte("abc")), digest.Content([]byte("abc")))
	assert.NotEqual(t, digest.Content([]byte("abc")), digest.Content([]byte("abc ")))
}

func TestBaseline(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, digest.Baseline("commit", "HEAD", ts), digest.Baseline("commit", "HEAD", ts))
	assert.NotEqual(t, digest.Baseline("commit", "HEAD", ts), digest.Baseline("branch", "HEAD", ts))
	assert.NotEqual(t, digest.Baseline("commit", "HEAD", ts), digest.Baseline("commit", "HEAD", ts.Add(time.Second)))
	assert.NotEqual(t, digest.Baseline("commit", "HEAD", ts), digest.Baseline("commit", "main", ts))
}
