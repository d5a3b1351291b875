package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/interfaces/repositories"
)

// LookupEnv reads an environment variable; os.LookupEnv satisfies it
type LookupEnv func(key string) (string, bool)

// VariantResolver resolves the identity of a flavor.
// It keeps no state between calls: every resolution re-reads the flavor's descriptor.
type VariantResolver struct {
	descriptors repositories.DescriptorRepository
	moduleDir   string
	lookupEnv   LookupEnv
	logger      interfaces.Logger
}

// NewVariantResolver creates a resolver. moduleDir is the directory descriptor paths
// are relative to; lookupEnv may be nil when no environment input is wanted.
func NewVariantResolver(
	descriptors repositories.DescriptorRepository,
	moduleDir string,
	lookupEnv LookupEnv,
	logger interfaces.Logger,
) *VariantResolver {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &VariantResolver{
		descriptors: descriptors,
		moduleDir:   moduleDir,
		lookupEnv:   lookupEnv,
		logger:      logger.Named("resolver"),
	}
}

// Resolve returns the base identity of a flavor, before build-type overrides
func (r *VariantResolver) Resolve(_ context.Context, flavor entities.Flavor) (entities.VariantIdentity, error) {
	var (
		identity entities.VariantIdentity
		err      error
	)

	switch src := flavor.Source.(type) {
	case entities.StaticSource:
		identity, err = r.resolveStatic(src)
	case entities.DescriptorSource:
		identity, err = r.resolveDescriptor(src)
	default:
		return entities.VariantIdentity{}, fmt.Errorf("flavor %s: unsupported source %T", flavor.Name, flavor.Source)
	}
	if err != nil {
		return entities.VariantIdentity{}, fmt.Errorf("flavor %s: %w", flavor.Name, err)
	}

	if flavor.VersionNameSuffixEnv != "" {
		if suffix, ok := r.lookupEnv(flavor.VersionNameSuffixEnv); ok && suffix != "" {
			identity.VersionName += suffix
		}
	}

	r.logger.Debug("resolved flavor",
		interfaces.F("flavor", flavor.Name),
		interfaces.F("application_id", identity.ApplicationID),
		interfaces.F("version", identity.VersionName))

	return identity, nil
}

// ResolveVariant resolves a flavor and applies the overrides of a build type
func (r *VariantResolver) ResolveVariant(
	ctx context.Context,
	flavor entities.Flavor,
	buildType entities.BuildType,
) (entities.VariantIdentity, error) {
	identity, err := r.Resolve(ctx, flavor)
	if err != nil {
		return entities.VariantIdentity{}, err
	}

	if buildType.ApplicationIDSuffix != "" {
		identity.ApplicationID += buildType.ApplicationIDSuffix
		if err := ValidateApplicationID(identity.ApplicationID); err != nil {
			return entities.VariantIdentity{}, fmt.Errorf("flavor %s, build type %s: %w", flavor.Name, buildType.Name, err)
		}
	}

	if label, ok := flavor.DisplayNameOverrides[buildType.Name]; ok && label != "" {
		identity.DisplayName = label
	}

	return identity, nil
}

func (r *VariantResolver) resolveStatic(src entities.StaticSource) (entities.VariantIdentity, error) {
	identity := entities.VariantIdentity{
		ApplicationID: src.ApplicationID,
		DisplayName:   src.DisplayName,
		VersionName:   src.VersionName,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = entities.DefaultDisplayName
	}
	if identity.VersionName == "" {
		identity.VersionName = entities.DefaultVersionName
	}

	if err := ValidateApplicationID(identity.ApplicationID); err != nil {
		return entities.VariantIdentity{}, err
	}
	return identity, nil
}

func (r *VariantResolver) resolveDescriptor(src entities.DescriptorSource) (entities.VariantIdentity, error) {
	path := src.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.moduleDir, path)
	}

	descriptor := r.descriptors.Read(path)
	if !descriptor.Found {
		r.logger.Info("descriptor not found, using defaults", interfaces.F("path", path))
	}

	nameAttr := src.NameAttribute
	if nameAttr == "" {
		nameAttr = entities.DefaultNameAttribute
	}
	versionAttr := src.VersionAttribute
	if versionAttr == "" {
		versionAttr = entities.DefaultVersionAttribute
	}

	name, ok := descriptor.Get(nameAttr)
	if !ok {
		name = src.DefaultName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = entities.DefaultDisplayName
	}

	version, ok := descriptor.Get(versionAttr)
	if !ok {
		version = entities.DefaultVersionName
	}

	suffix := SanitizeIdentifier(name)
	applicationID := suffix
	if src.IdentifierPrefix != "" {
		applicationID = src.IdentifierPrefix + "." + suffix
	}
	if err := ValidateApplicationID(applicationID); err != nil {
		return entities.VariantIdentity{}, fmt.Errorf("descriptor name %q: %w", name, err)
	}

	return entities.VariantIdentity{
		ApplicationID: applicationID,
		DisplayName:   name,
		VersionName:   version,
	}, nil
}
