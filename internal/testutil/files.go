// Package testutil holds filesystem assertions shared by package tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       testing.TB
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir.
func NewFileAssertions(t testing.TB, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	stat, err := os.Stat(fullPath)
	switch {
	case err != nil:
		fa.t.Errorf("Expected directory to exist: %s (%v)", fullPath, err)
	case !stat.IsDir():
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

// AssertFileEquals validates that a file holds exactly want.
func (fa *FileAssertions) AssertFileEquals(relativePath string, want []byte) *FileAssertions {
	fa.t.Helper()
	got, ok := fa.read(relativePath)
	if ok && !bytes.Equal(got, want) {
		fa.t.Errorf("Expected %s to hold %d bytes of expected content, got %d bytes:\n%s",
			relativePath, len(want), len(got), got)
	}
	return fa
}

// AssertFileContains validates that a file contains every expected substring.
func (fa *FileAssertions) AssertFileContains(relativePath string, expected ...string) *FileAssertions {
	fa.t.Helper()
	got, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	for _, s := range expected {
		if !strings.Contains(string(got), s) {
			fa.t.Errorf("Expected file %s to contain %q", relativePath, s)
		}
	}
	return fa
}

// AssertFileCount validates that a directory holds exactly n regular files.
func (fa *FileAssertions) AssertFileCount(relativePath string, n int) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read directory %s: %v", fullPath, err)
		return fa
	}
	count := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			count++
		}
	}
	if count != n {
		fa.t.Errorf("Expected %d files in %s, found %d", n, fullPath, count)
	}
	return fa
}

func (fa *FileAssertions) read(relativePath string) ([]byte, bool) {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	// #nosec G304 - test helper, paths are controlled by test code
	data, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return nil, false
	}
	return data, true
}
