package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumExtension is appended to an artifact name to form its sidecar
const ChecksumExtension = ".sha256"

// ChecksumVerifier computes and checks SHA-256 sidecars
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

// CalculateChecksum returns the hex SHA-256 of a file
func (v *ChecksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: artifact path chosen by the caller
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteSidecar writes "<hex>  <name>\n" next to the artifact, the format sha256sum -c reads
func (v *ChecksumVerifier) WriteSidecar(artifactPath, checksum string) (string, error) {
	sidecar := artifactPath + ChecksumExtension
	line := fmt.Sprintf("%s  %s\n", checksum, filepath.Base(artifactPath))
	if err := os.WriteFile(sidecar, []byte(line), 0600); err != nil {
		return "", fmt.Errorf("failed to write checksum file: %w", err)
	}
	return sidecar, nil
}

// VerifySidecar checks an artifact against its .sha256 file
func (v *ChecksumVerifier) VerifySidecar(_ context.Context, artifactPath string) error {
	//nolint:gosec // G304: sidecar path derived from artifact path
	data, err := os.ReadFile(artifactPath + ChecksumExtension)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return fmt.Errorf("empty checksum file for %s", filepath.Base(artifactPath))
	}
	expected := strings.ToLower(fields[0])

	actual, err := v.CalculateChecksum(artifactPath)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filepath.Base(artifactPath), expected, actual)
	}
	return nil
}
