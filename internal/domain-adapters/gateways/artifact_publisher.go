package gateways

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

// ArtifactPublisher copies toolchain outputs into an output directory under
// their computed names and records a checksum for each
type ArtifactPublisher struct {
	checksums *ChecksumVerifier
}

// NewArtifactPublisher creates a new artifact publisher
func NewArtifactPublisher() *ArtifactPublisher {
	return &ArtifactPublisher{checksums: NewChecksumVerifier()}
}

// Publish copies sourcePath to outputDir/fileName and writes its .sha256 sidecar
func (p *ArtifactPublisher) Publish(
	ctx context.Context,
	sourcePath, outputDir, fileName string,
) (*entities.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return nil, fmt.Errorf("invalid artifact file name %q", fileName)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("artifact %s is a directory", sourcePath)
	}

	if outputDir == "" {
		outputDir = "dist"
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	target := filepath.Join(outputDir, fileName)
	if err := copyFile(sourcePath, target); err != nil {
		return nil, err
	}

	checksum, err := p.checksums.CalculateChecksum(target)
	if err != nil {
		return nil, err
	}
	if _, err := p.checksums.WriteSidecar(target, checksum); err != nil {
		return nil, err
	}

	return &entities.Artifact{
		Name:     fileName,
		Path:     target,
		Checksum: checksum,
		Type:     "apk",
	}, nil
}

func copyFile(src, dst string) error {
	//nolint:gosec // G304: source is a toolchain output chosen by the caller
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	// Write to a temp file and rename so a reader never sees a partial artifact
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".publish-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		//nolint:errcheck // Best-effort cleanup
		tmp.Close()
		//nolint:errcheck // Best-effort cleanup
		os.Remove(tmpName)
		return fmt.Errorf("failed to copy artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		//nolint:errcheck // Best-effort cleanup
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		//nolint:errcheck // Best-effort cleanup
		os.Remove(tmpName)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}
