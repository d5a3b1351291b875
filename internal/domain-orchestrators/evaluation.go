package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/services"
)

// evaluation is the state of one configuration-evaluation pass.
// Credentials files are read at most once per pass; nothing outlives it.
type evaluation struct {
	project  *entities.Project
	resolver *services.VariantResolver
	signing  *services.SigningService
	loader   func(path string) (entities.CredentialsResult, error)
	logger   interfaces.Logger

	credentials map[string]credentialsLoad
	outcomes    map[signingKey]services.SigningOutcome
}

type credentialsLoad struct {
	result entities.CredentialsResult
	err    error
}

type signingKey struct {
	config   string
	required bool
}

func (o *VariantOrchestrator) begin(ctx context.Context) (*evaluation, error) {
	if o.projects == nil || o.descriptors == nil || o.credentials == nil {
		return nil, errors.New("orchestrator is missing a repository")
	}

	project, err := o.projects.LoadProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	moduleDir := project.ModuleDir
	if !filepath.IsAbs(moduleDir) {
		moduleDir = filepath.Join(project.RootDir, moduleDir)
	}

	return &evaluation{
		project:     project,
		resolver:    services.NewVariantResolver(o.descriptors, moduleDir, o.lookupEnv, o.logger),
		signing:     services.NewSigningService(project.RootDir, o.logger),
		loader:      o.credentials.Load,
		logger:      o.logger,
		credentials: make(map[string]credentialsLoad),
		outcomes:    make(map[signingKey]services.SigningOutcome),
	}, nil
}

// load reads a properties file relative to the project root, once per pass
func (ev *evaluation) load(file string) credentialsLoad {
	if !filepath.IsAbs(file) {
		file = filepath.Join(ev.project.RootDir, file)
	}
	if cached, ok := ev.credentials[file]; ok {
		return cached
	}
	result, err := ev.loader(file)
	loaded := credentialsLoad{result: result, err: err}
	ev.credentials[file] = loaded
	return loaded
}

// configure applies the signing policy to a named signing configuration
func (ev *evaluation) configure(name string, policy entities.SigningPolicy) (services.SigningOutcome, error) {
	key := signingKey{config: name, required: policy.Required}
	if outcome, ok := ev.outcomes[key]; ok {
		return outcome, nil
	}

	source := ev.project.SigningConfigs[name]
	loaded := ev.load(source.PropertiesFile)
	outcome, err := ev.signing.Configure(name, loaded.result, loaded.err, policy)
	if err != nil {
		return services.SigningOutcome{}, err
	}
	ev.outcomes[key] = outcome
	return outcome, nil
}

// signingConfig returns the already configured signing config, or nil when it was skipped
func (ev *evaluation) signingConfig(name string, policy entities.SigningPolicy) *entities.SigningConfig {
	if name == "" {
		return nil
	}
	return ev.outcomes[signingKey{config: name, required: policy.Required}].Config
}

// buildType rejects names other than debug and release before looking up their settings
func (ev *evaluation) buildType(name entities.BuildTypeName) (entities.BuildType, error) {
	parsed, err := entities.ParseBuildType(string(name))
	if err != nil {
		return entities.BuildType{}, err
	}
	return ev.project.BuildType(parsed), nil
}

func (ev *evaluation) variant(
	ctx context.Context,
	flavor entities.Flavor,
	buildType entities.BuildType,
	requireSigning bool,
) (entities.BuildVariant, error) {
	identity, err := ev.resolver.ResolveVariant(ctx, flavor, buildType)
	if err != nil {
		return entities.BuildVariant{}, err
	}

	variant := entities.BuildVariant{
		Name:        services.DirTag(flavor.Name, string(buildType.Name)),
		Flavor:      flavor.Name,
		BuildType:   buildType.Name,
		Identity:    identity,
		VersionCode: ev.project.VersionCode,
		BuildConfig: copyMap(flavor.BuildConfigFields),
		ResourceValues: map[string]string{
			ResourceAppName:   identity.DisplayName,
			ResourceAppCenter: ev.secret(entities.AppCenterKey),
		},
	}

	if flavor.SigningConfig != "" {
		outcome, err := ev.configure(flavor.SigningConfig, signingPolicy(buildType, requireSigning))
		if err != nil {
			return entities.BuildVariant{}, fmt.Errorf("variant %s: %w", variant.Name, err)
		}
		variant.Signing = entities.SigningStatus{
			Config:  flavor.SigningConfig,
			Applied: outcome.Applied(),
			Reason:  outcome.SkipReason,
		}
	}

	for _, split := range ev.project.Splits.Tags() {
		tag := services.DirTag(flavor.Name, string(buildType.Name), split)
		variant.Outputs = append(variant.Outputs, entities.ArtifactOutput{
			Split:    split,
			DirTag:   tag,
			FileName: services.ArtifactName(ev.project.Name, identity.VersionName, tag),
		})
	}

	return variant, nil
}

// secret reads a value from the project secrets file; absence yields ""
func (ev *evaluation) secret(key string) string {
	if ev.project.SecretsFile == "" {
		return ""
	}
	loaded := ev.load(ev.project.SecretsFile)
	if loaded.err != nil {
		ev.logger.Debug("secrets file unreadable", interfaces.F("error", loaded.err.Error()))
		return ""
	}
	if !loaded.result.Found {
		return ""
	}
	return loaded.result.Credentials.Extra[key]
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
