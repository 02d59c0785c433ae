// Package fixtures locates and loads the small per-language source samples
// used by package tests and by cmd/morfxdemo, so both can glob over the same
// on-disk set without hardcoding paths relative to the caller's working
// directory.
//
// Grounded on the teacher's cmd/morfx main_execution_test.go (godotenv.Load,
// errors ignored — an .env file is optional, never required) and
// core/filewalker.go (doublestar pattern matching for file discovery).
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
)

// RootEnvVar overrides the fixture root directory when set, letting a
// developer point morfxdemo or the test suite at an alternate fixture tree
// without touching code.
const RootEnvVar = "MORFX_FIXTURES_ROOT"

var loadEnvOnce sync.Once

// Root returns the fixture root directory: MORFX_FIXTURES_ROOT if set
// (after an optional .env in the current directory is loaded into the
// environment), otherwise the testdata directory next to this package.
func Root() string {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if dir := os.Getenv(RootEnvVar); dir != "" {
		return dir
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "testdata")
}

// Glob returns fixture paths under Root() matching a doublestar pattern
// (e.g. "*.go" or "**/*.ts"), sorted by the underlying filesystem walk.
func Glob(pattern string) ([]string, error) {
	root := Root()
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("fixtures: glob %q: %w", pattern, err)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(root, m)
	}
	return out, nil
}

// Read loads a fixture file by name, relative to Root().
func Read(name string) ([]byte, error) {
	path := filepath.Join(Root(), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %q: %w", name, err)
	}
	return data, nil
}

// ForLanguage returns the single canonical sample fixture for a language
// name ("go", "javascript", "typescript", "python", "php"), the set
// cmd/morfxdemo's scenarios and their tests draw from.
func ForLanguage(language string) (path string, source []byte, err error) {
	names := map[string]string{
		"go":         "example.go",
		"javascript": "example.js",
		"typescript": "example.ts",
		"python":     "example.py",
		"php":        "example.php",
	}
	name, ok := names[language]
	if !ok {
		return "", nil, fmt.Errorf("fixtures: no sample fixture registered for language %q", language)
	}
	source, err = Read(name)
	if err != nil {
		return "", nil, err
	}
	return filepath.Join(Root(), name), source, nil
}
