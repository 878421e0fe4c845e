package info

import (
	"path"
	"path/filepath"
	"strings"
)

// Config controls what inspectors extract
type Config struct {
	IncludeUnexported bool // extract non exported symbols and members
	SkipTests         bool // skip test sources when building graphs
}

// DefaultConfig returns config extracting exported and unexported symbols
func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: true,
		SkipTests:         false,
	}
}

// Skipped reports whether location should be left out of graph building
func (c *Config) Skipped(location string) bool {
	return c != nil && c.SkipTests && IsTestSource(location)
}

// IsTestSource reports whether location follows Go, Java or JavaScript test naming
func IsTestSource(location string) bool {
	location = filepath.ToSlash(location)
	name := path.Base(location)
	switch {
	case strings.HasSuffix(name, "_test.go"):
		return true
	case strings.HasSuffix(name, "Test.java"), strings.Contains(location, "/src/test/"), strings.HasPrefix(location, "src/test/"):
		return true
	case strings.Contains(name, ".test."), strings.Contains(name, ".spec."), strings.Contains(location, "__tests__/"):
		return true
	}
	return false
}
