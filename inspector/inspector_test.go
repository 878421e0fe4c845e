package inspector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/inspector"
	"github.com/viant/symdiff/inspector/info"
)

func TestRegistry_Lookup(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
		language string
	}{
		{name: "Go file", filename: "test.go", language: "go"},
		{name: "Java file", filename: "Test.java", language: "java"},
		{name: "JS file", filename: "test.js", language: "javascript"},
		{name: "JSX file", filename: "Component.JSX", language: "javascript"},
		{name: "Unsupported file", filename: "test.cpp", wantErr: true},
	}

	registry := inspector.New(&info.Config{IncludeUnexported: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp, err := registry.Lookup(tt.filename)
			if tt.wantErr {
				assert.True(t, errors.Is(err, inspector.ErrUnsupportedLanguage))
				assert.False(t, registry.Supports(tt.filename))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.language, insp.Language())
			assert.True(t, registry.Supports(tt.filename))
		})
	}
}

func TestRegistry_InspectSource(t *testing.T) {
	registry := inspector.New(nil)
	file, err := registry.InspectSource(context.Background(), "pkg/a.go", []byte("package a\n\nfunc A() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "pkg/a.go", file.Path)
	assert.Equal(t, "go", file.Language)
	require.Len(t, file.Symbols, 1)
	assert.Equal(t, "A", file.Symbols[0].Name)

	_, err = registry.Language("go")
	assert.NoError(t, err)
	_, err = registry.Language("cobol")
	assert.Error(t, err)
	assert.Contains(t, registry.Extensions(), ".java")
}

func TestRegistry_Retain(t *testing.T) {
	registry := inspector.New(&info.Config{SkipTests: true})
	registry.Retain("go", ".JAVA")
	assert.Equal(t, []string{".go", ".java"}, registry.Extensions())
	assert.False(t, registry.Supports("a.js"))
	assert.True(t, registry.Indexable("pkg/a.go"))
	assert.False(t, registry.Indexable("pkg/a_test.go"))
	assert.False(t, registry.Indexable("src/test/java/FooTest.java"))
}
