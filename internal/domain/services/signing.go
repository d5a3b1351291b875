package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
)

// SigningService turns loaded credentials into signing configurations.
// When the policy requires signing every gap is fatal; otherwise gaps are
// logged as warnings and the signing configuration is simply not applied.
type SigningService struct {
	projectRoot string
	logger      interfaces.Logger
}

// NewSigningService creates a signing service resolving store files against projectRoot
func NewSigningService(projectRoot string, logger interfaces.Logger) *SigningService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &SigningService{
		projectRoot: projectRoot,
		logger:      logger.Named("signing"),
	}
}

// SigningOutcome is the result of configuring one signing configuration.
// Config is nil when signing was skipped; SkipReason then says why.
type SigningOutcome struct {
	Config     *entities.SigningConfig
	SkipReason string
}

// Applied reports whether a signing configuration is available
func (o SigningOutcome) Applied() bool {
	return o.Config != nil
}

// Configure builds the signing configuration name from a credentials load.
// loadErr is the error returned by the credentials repository, if any.
func (s *SigningService) Configure(
	name string,
	result entities.CredentialsResult,
	loadErr error,
	policy entities.SigningPolicy,
) (SigningOutcome, error) {
	if loadErr != nil {
		return s.skip(policy, name, fmt.Errorf("signing config '%s': %w", name, loadErr))
	}

	if !result.Found {
		return s.skip(policy, name, &entities.MissingKeyError{
			Key:    entities.StoreFile,
			Source: result.Source,
			Config: name,
			Cause:  entities.ErrCredentialsNotFound,
		})
	}

	creds := result.Credentials
	if creds.StoreFile == "" {
		return s.skip(policy, name, &entities.MissingKeyError{Key: entities.StoreFile, Source: result.Source, Config: name})
	}

	storeFile := creds.StoreFile
	if !filepath.IsAbs(storeFile) {
		storeFile = filepath.Join(s.projectRoot, storeFile)
	}
	if info, err := os.Stat(storeFile); err != nil || info.IsDir() {
		return s.skip(policy, name, fmt.Errorf("signing config '%s': %w: %s",
			name, entities.ErrStoreFileNotFound, storeFile))
	}

	if policy.Required {
		required := []struct{ key, value string }{
			{entities.StorePassword, creds.StorePassword},
			{entities.KeyAlias, creds.KeyAlias},
			{entities.KeyPassword, creds.KeyPassword},
		}
		for _, r := range required {
			if r.value == "" {
				return SigningOutcome{}, &entities.MissingKeyError{Key: r.key, Source: result.Source, Config: name}
			}
		}
	}

	return SigningOutcome{Config: &entities.SigningConfig{
		Name:          name,
		StoreFile:     storeFile,
		StorePassword: creds.StorePassword,
		KeyAlias:      creds.KeyAlias,
		KeyPassword:   creds.KeyPassword,
	}}, nil
}

func (s *SigningService) skip(policy entities.SigningPolicy, name string, reason error) (SigningOutcome, error) {
	if policy.Required {
		return SigningOutcome{}, reason
	}
	s.logger.Warn("signing configuration not applied",
		interfaces.F("config", name),
		interfaces.F("reason", reason.Error()))
	return SigningOutcome{SkipReason: reason.Error()}, nil
}
