package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		name         string
		content      []byte
		wantChecksum string
	}{
		{
			name:         "empty file",
			content:      []byte(""),
			wantChecksum: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:         "simple content",
			content:      []byte("Hello, World!"),
			wantChecksum: "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f",
		},
	}

	verifier := NewChecksumVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "artifact.apk")
			if err := os.WriteFile(path, tt.content, 0600); err != nil {
				t.Fatal(err)
			}
			got, err := verifier.CalculateChecksum(path)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if got != tt.wantChecksum {
				t.Errorf("CalculateChecksum() = %s, want %s", got, tt.wantChecksum)
			}
		})
	}

	if _, err := verifier.CalculateChecksum("/nonexistent/file.apk"); err == nil {
		t.Error("CalculateChecksum() with non-existent file should return error")
	}
}

func TestVerifySidecar(t *testing.T) {
	verifier := NewChecksumVerifier()
	dir := t.TempDir()
	path := filepath.Join(dir, "App_1.0-debug.apk")
	if err := os.WriteFile(path, []byte("Hello, World!"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Run("missing sidecar", func(t *testing.T) {
		if err := verifier.VerifySidecar(context.Background(), path); err == nil {
			t.Error("expected error without sidecar")
		}
	})

	sum, err := verifier.CalculateChecksum(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.WriteSidecar(path, sum); err != nil {
		t.Fatal(err)
	}

	t.Run("valid", func(t *testing.T) {
		if err := verifier.VerifySidecar(context.Background(), path); err != nil {
			t.Errorf("VerifySidecar() error = %v", err)
		}
	})

	t.Run("tampered artifact", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("tampered"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := verifier.VerifySidecar(context.Background(), path); err == nil {
			t.Error("expected checksum mismatch")
		}
	})

	t.Run("empty sidecar", func(t *testing.T) {
		if err := os.WriteFile(path+ChecksumExtension, nil, 0600); err != nil {
			t.Fatal(err)
		}
		if err := verifier.VerifySidecar(context.Background(), path); err == nil {
			t.Error("expected error for empty sidecar")
		}
	})
}
