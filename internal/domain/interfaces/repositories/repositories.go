// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/variants/internal/domain/entities"
)

// ProjectRepository loads the static project configuration
type ProjectRepository interface {
	// LoadProject returns the project configuration rooted at the repository's root dir
	LoadProject(ctx context.Context) (*entities.Project, error)
}

// DescriptorRepository reads flavor descriptor files.
// A missing or unreadable descriptor is a NotFound result, never an error.
type DescriptorRepository interface {
	Read(path string) entities.DescriptorResult
}

// CredentialRepository reads signing credentials files.
// A missing file is a NotFound result; an unreadable or malformed file is an error.
type CredentialRepository interface {
	Load(path string) (entities.CredentialsResult, error)
}
