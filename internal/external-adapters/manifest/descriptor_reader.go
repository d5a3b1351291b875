// Package manifest reads manifest-style descriptor files ("Key: Value" lines).
package manifest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
)

// maxLineSize bounds a single descriptor line
const maxLineSize = 64 * 1024

// DescriptorReader implements repositories.DescriptorRepository for manifest files.
// Only the main section is read: parsing stops at the first blank line.
type DescriptorReader struct {
	logger interfaces.Logger
}

// NewDescriptorReader creates a reader; logger may be nil
func NewDescriptorReader(logger interfaces.Logger) *DescriptorReader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &DescriptorReader{logger: logger.Named("descriptor")}
}

// Read parses the descriptor at path. Any failure to open or read the file yields
// a NotFound result: a missing descriptor means "use defaults".
func (r *DescriptorReader) Read(path string) entities.DescriptorResult {
	//nolint:gosec // G304: path comes from project configuration
	f, err := os.Open(path)
	if err != nil {
		r.logger.Debug("descriptor unavailable", interfaces.F("path", path), interfaces.F("error", err.Error()))
		return entities.NotFoundDescriptor(path)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	attrs, err := Parse(f)
	if err != nil {
		r.logger.Debug("descriptor unreadable", interfaces.F("path", path), interfaces.F("error", err.Error()))
		return entities.NotFoundDescriptor(path)
	}

	return entities.DescriptorResult{Found: true, Path: path, Attributes: attrs}
}

// Parse reads the main section of a manifest. Lines without a ':' separator are
// skipped, keys and values are trimmed, a line starting with a single space
// continues the previous value and the last occurrence of a key wins.
func Parse(r io.Reader) (entities.DescriptorAttributes, error) {
	attrs := entities.DescriptorAttributes{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lastKey := ""
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		if strings.HasPrefix(line, " ") {
			if lastKey != "" {
				attrs[lastKey] = strings.TrimSpace(attrs[lastKey] + line[1:])
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			lastKey = ""
			continue
		}

		attrs[key] = strings.TrimSpace(value)
		lastKey = key
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return attrs, nil
}
