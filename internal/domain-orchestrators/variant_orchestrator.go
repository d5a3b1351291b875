// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/interfaces/gateways"
	"github.com/ochairo/variants/internal/domain/interfaces/repositories"
	"github.com/ochairo/variants/internal/domain/services"
)

// Resource value keys emitted for every variant
const (
	ResourceAppName   = "app_name"
	ResourceAppCenter = "app_center"
)

// ArtifactFinder locates published artifacts of a variant
type ArtifactFinder interface {
	FindByPrefix(dir, prefix, extension string) ([]string, error)
}

// ChecksumVerifier checks an artifact against its checksum sidecar
type ChecksumVerifier interface {
	VerifySidecar(ctx context.Context, artifactPath string) error
}

// VariantOrchestrator evaluates the project configuration: every flavor and build type
// is resolved into a BuildVariant with identity, signing status and artifact outputs
type VariantOrchestrator struct {
	projects    repositories.ProjectRepository
	descriptors repositories.DescriptorRepository
	credentials repositories.CredentialRepository
	publisher   gateways.ArtifactPublisher
	signer      gateways.ArtifactSigner
	verifier    gateways.SignatureVerifier
	finder      ArtifactFinder
	checksums   ChecksumVerifier
	lookupEnv   services.LookupEnv
	logger      interfaces.Logger
}

// VariantOrchestratorConfig holds the collaborators of the orchestrator.
// The gateways are only needed by Publish and ValidateRelease.
type VariantOrchestratorConfig struct {
	Projects    repositories.ProjectRepository
	Descriptors repositories.DescriptorRepository
	Credentials repositories.CredentialRepository
	Publisher   gateways.ArtifactPublisher
	Signer      gateways.ArtifactSigner
	Verifier    gateways.SignatureVerifier
	Finder      ArtifactFinder
	Checksums   ChecksumVerifier
	LookupEnv   services.LookupEnv
	Logger      interfaces.Logger
}

// NewVariantOrchestrator creates a new variant orchestrator
func NewVariantOrchestrator(cfg VariantOrchestratorConfig) *VariantOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &VariantOrchestrator{
		projects:    cfg.Projects,
		descriptors: cfg.Descriptors,
		credentials: cfg.Credentials,
		publisher:   cfg.Publisher,
		signer:      cfg.Signer,
		verifier:    cfg.Verifier,
		finder:      cfg.Finder,
		checksums:   cfg.Checksums,
		lookupEnv:   cfg.LookupEnv,
		logger:      logger,
	}
}

// EvaluateOptions narrows and tightens an evaluation
type EvaluateOptions struct {
	// RequireSigning makes every signing gap fatal, as for a release pipeline
	RequireSigning bool

	// Flavors and BuildTypes restrict the evaluated variants; empty means all
	Flavors    []string
	BuildTypes []entities.BuildTypeName
}

// Plan is the result of one configuration evaluation
type Plan struct {
	Project     string                  `json:"project" yaml:"project"`
	VersionCode int                     `json:"version_code" yaml:"version_code"`
	Variants    []entities.BuildVariant `json:"variants" yaml:"variants"`
}

// Evaluate resolves every selected flavor and build type of the project.
// Any fatal configuration error aborts the whole evaluation.
func (o *VariantOrchestrator) Evaluate(ctx context.Context, opts EvaluateOptions) (*Plan, error) {
	ev, err := o.begin(ctx)
	if err != nil {
		return nil, err
	}

	flavors := ev.project.Flavors
	if len(opts.Flavors) > 0 {
		flavors = make([]entities.Flavor, 0, len(opts.Flavors))
		for _, name := range opts.Flavors {
			f, err := ev.project.Flavor(name)
			if err != nil {
				return nil, err
			}
			flavors = append(flavors, f)
		}
	}

	names := opts.BuildTypes
	if len(names) == 0 {
		names = entities.BuildTypes
	}
	buildTypes := make([]entities.BuildType, 0, len(names))
	for _, name := range names {
		bt, err := ev.buildType(name)
		if err != nil {
			return nil, err
		}
		buildTypes = append(buildTypes, bt)
	}

	plan := &Plan{Project: ev.project.Name, VersionCode: ev.project.VersionCode}
	for _, flavor := range flavors {
		for _, bt := range buildTypes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			variant, err := ev.variant(ctx, flavor, bt, opts.RequireSigning)
			if err != nil {
				return nil, err
			}
			plan.Variants = append(plan.Variants, variant)
		}
	}

	o.logger.Info("configuration evaluated",
		interfaces.F("project", plan.Project),
		interfaces.F("variants", len(plan.Variants)))

	return plan, nil
}

// ResolveOne evaluates a single flavor and build type
func (o *VariantOrchestrator) ResolveOne(
	ctx context.Context,
	flavorName string,
	buildType entities.BuildTypeName,
	requireSigning bool,
) (*entities.BuildVariant, error) {
	plan, err := o.Evaluate(ctx, EvaluateOptions{
		RequireSigning: requireSigning,
		Flavors:        []string{flavorName},
		BuildTypes:     []entities.BuildTypeName{buildType},
	})
	if err != nil {
		return nil, err
	}
	return &plan.Variants[0], nil
}

// PublishRequest describes one toolchain output to publish
type PublishRequest struct {
	Flavor         string
	BuildType      entities.BuildTypeName
	Split          string
	SourcePath     string
	OutputDir      string
	Sign           bool
	RequireSigning bool
}

// PublishResult lists the files written for a published artifact
type PublishResult struct {
	Artifact      *entities.Artifact     `json:"artifact" yaml:"artifact"`
	SignaturePath string                 `json:"signature_path,omitempty" yaml:"signature_path,omitempty"`
	Signing       entities.SigningStatus `json:"signing" yaml:"signing"`
}

// Publish copies a toolchain output under its computed name and, when asked,
// signs it with the variant's signing configuration
func (o *VariantOrchestrator) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if o.publisher == nil {
		return nil, errors.New("no artifact publisher configured")
	}

	ev, err := o.begin(ctx)
	if err != nil {
		return nil, err
	}
	flavor, err := ev.project.Flavor(req.Flavor)
	if err != nil {
		return nil, err
	}
	buildType, err := ev.buildType(req.BuildType)
	if err != nil {
		return nil, err
	}

	variant, err := ev.variant(ctx, flavor, buildType, req.RequireSigning)
	if err != nil {
		return nil, err
	}

	split := req.Split
	if split == "" {
		split = entities.UniversalSplit
	}
	output, ok := findOutput(variant.Outputs, split)
	if !ok {
		return nil, fmt.Errorf("variant %s has no %s split", variant.Name, split)
	}

	artifact, err := o.publisher.Publish(ctx, req.SourcePath, req.OutputDir, output.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", output.FileName, err)
	}
	artifact.Version = variant.Identity.VersionName
	artifact.Variant = output.DirTag

	result := &PublishResult{Artifact: artifact, Signing: variant.Signing}
	o.logger.Info("artifact published", interfaces.F("path", artifact.Path))

	if !req.Sign {
		return result, nil
	}

	cfg := ev.signingConfig(flavor.SigningConfig, signingPolicy(buildType, req.RequireSigning))
	if cfg == nil {
		if req.RequireSigning || buildType.SigningRequired {
			return nil, fmt.Errorf("variant %s: no signing configuration available", variant.Name)
		}
		o.logger.Warn("artifact left unsigned",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("reason", variant.Signing.Reason))
		return result, nil
	}
	if o.signer == nil {
		return nil, errors.New("no artifact signer configured")
	}

	sigPath, err := o.signer.Sign(ctx, artifact.Path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", artifact.Name, err)
	}
	result.SignaturePath = sigPath
	o.logger.Info("artifact signed", interfaces.F("signature", sigPath))

	return result, nil
}

// ReleaseReport is the release readiness of one variant
type ReleaseReport struct {
	Variant         entities.BuildVariant
	Validation      *services.ReleaseValidation
	ChecksumErrors  []string
	SignatureErrors []string
}

// IsReady reports whether every expected artifact is present, intact and signed as configured
func (r *ReleaseReport) IsReady() bool {
	return r.Validation.IsReady() && len(r.ChecksumErrors) == 0 && len(r.SignatureErrors) == 0
}

// ValidateRelease checks the artifacts published in dir against the outputs the variant should produce
func (o *VariantOrchestrator) ValidateRelease(
	ctx context.Context,
	flavorName string,
	buildType entities.BuildTypeName,
	dir string,
) (*ReleaseReport, error) {
	if o.finder == nil {
		return nil, errors.New("no artifact finder configured")
	}

	ev, err := o.begin(ctx)
	if err != nil {
		return nil, err
	}
	flavor, err := ev.project.Flavor(flavorName)
	if err != nil {
		return nil, err
	}
	bt, err := ev.buildType(buildType)
	if err != nil {
		return nil, err
	}
	variant, err := ev.variant(ctx, flavor, bt, false)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(
		services.ArtifactName(ev.project.Name, variant.Identity.VersionName, services.DirTag(variant.Flavor, string(variant.BuildType))),
		services.ArtifactExtension)
	paths, err := o.finder.FindByPrefix(dir, prefix, services.ArtifactExtension)
	if err != nil {
		return nil, err
	}

	report := &ReleaseReport{
		Variant:    variant,
		Validation: services.NewReleaseService().ValidateRelease(ev.project.Name, variant, paths),
	}

	if o.checksums != nil {
		for _, path := range paths {
			if err := o.checksums.VerifySidecar(ctx, path); err != nil {
				report.ChecksumErrors = append(report.ChecksumErrors, filepath.Base(path)+": "+err.Error())
			}
		}
	}

	// Signatures are optional; those present must verify against the variant's key store
	cfg := ev.signingConfig(flavor.SigningConfig, signingPolicy(bt, false))
	if o.verifier != nil && cfg != nil {
		for _, path := range paths {
			err := o.verifier.Verify(ctx, path, cfg)
			if err != nil && !errors.Is(err, entities.ErrSignatureNotFound) {
				report.SignatureErrors = append(report.SignatureErrors, filepath.Base(path)+": "+err.Error())
			}
		}
	}

	return report, nil
}

func findOutput(outputs []entities.ArtifactOutput, split string) (entities.ArtifactOutput, bool) {
	for _, out := range outputs {
		if out.Split == split {
			return out, true
		}
	}
	return entities.ArtifactOutput{}, false
}

func signingPolicy(bt entities.BuildType, requireSigning bool) entities.SigningPolicy {
	return entities.SigningPolicy{Required: bt.SigningRequired || requireSigning}
}
