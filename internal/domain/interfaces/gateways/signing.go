// Package gateways defines interfaces for external systems used by the domain.
package gateways

import (
	"context"

	"github.com/ochairo/variants/internal/domain/entities"
)

// ArtifactSigner produces a detached signature for a published artifact
type ArtifactSigner interface {
	// Sign signs the file at artifactPath and returns the signature path
	Sign(ctx context.Context, artifactPath string, cfg *entities.SigningConfig) (string, error)
}

// SignatureVerifier checks the detached signature of a published artifact.
// An artifact without signature yields an error wrapping entities.ErrSignatureNotFound.
type SignatureVerifier interface {
	Verify(ctx context.Context, artifactPath string, cfg *entities.SigningConfig) error
}

// ArtifactPublisher places a toolchain output under its final name
type ArtifactPublisher interface {
	Publish(ctx context.Context, sourcePath, outputDir, fileName string) (*entities.Artifact, error)
}
