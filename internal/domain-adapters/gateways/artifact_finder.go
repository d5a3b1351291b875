package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArtifactFinder locates published artifacts
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// FindByPrefix lists the files in dir named prefix*extension, sorted.
// With extension ".apk" the .sha256 and .asc sidecars are not matched.
func (f *ArtifactFinder) FindByPrefix(dir, prefix, extension string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("artifacts directory does not exist: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, globEscape(prefix)+"*"+extension))
	if err != nil {
		return nil, fmt.Errorf("failed to glob artifacts: %w", err)
	}

	var artifacts []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			artifacts = append(artifacts, m)
		}
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

func globEscape(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(s)
}
