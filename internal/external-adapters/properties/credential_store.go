package properties

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ochairo/variants/internal/domain/entities"
)

// CredentialStore implements repositories.CredentialRepository over keystore.properties files
type CredentialStore struct{}

// NewCredentialStore creates a new credential store
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Load reads signing credentials from path.
// A missing file is not an error: the result is NotFound and callers decide
// whether that is acceptable. Unreadable or malformed files are errors.
func (s *CredentialStore) Load(path string) (entities.CredentialsResult, error) {
	result := entities.CredentialsResult{Source: path}

	//nolint:gosec // G304: path is the project's credentials file
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	props, err := Decode(data)
	if err != nil {
		return result, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	result.Found = true
	result.Credentials = entities.Credentials{
		KeyAlias:      props.GetString(entities.KeyAlias, ""),
		KeyPassword:   props.GetString(entities.KeyPassword, ""),
		StoreFile:     props.GetString(entities.StoreFile, ""),
		StorePassword: props.GetString(entities.StorePassword, ""),
		Extra:         make(map[string]string),
	}
	for _, k := range props.Keys() {
		switch k {
		case entities.KeyAlias, entities.KeyPassword, entities.StoreFile, entities.StorePassword:
		default:
			result.Credentials.Extra[k] = props.GetString(k, "")
		}
	}

	return result, nil
}
