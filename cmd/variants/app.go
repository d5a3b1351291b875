package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/variants/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/variants/internal/domain-orchestrators"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/services"
	"github.com/ochairo/variants/internal/external-adapters/gpg"
	"github.com/ochairo/variants/internal/external-adapters/logging"
	"github.com/ochairo/variants/internal/external-adapters/manifest"
	"github.com/ochairo/variants/internal/external-adapters/properties"
	yamlrepo "github.com/ochairo/variants/internal/external-adapters/yaml"
)

// Output formats accepted by --format
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// app carries the global flags and I/O shared by every command
type app struct {
	rootDir        string
	configPath     string
	logLevel       string
	format         string
	requireSigning bool

	stdout    io.Writer
	stderr    io.Writer
	lookupEnv services.LookupEnv
}

func newApp(stdout, stderr io.Writer, lookupEnv services.LookupEnv) *app {
	return &app{stdout: stdout, stderr: stderr, lookupEnv: lookupEnv}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "variants",
		Short: "Resolve per-flavor application identity, signing and artifact names",
		Long: `variants evaluates a multi-flavor application project: it resolves the
application identifier, display name and version of every flavor and build type,
decides which signing configuration applies and names the artifacts per ABI split.

The project is read from variants.yml at --root; without one the built-in
J2ME-Loader project is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.format != formatYAML && a.format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", a.format, formatYAML, formatJSON)
			}
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.rootDir, "root", ".", "Project root directory")
	flags.StringVar(&a.configPath, "config", "", "Project configuration (default <root>/variants.yml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default $"+logging.EnvLogLevel+" or info)")
	flags.StringVar(&a.format, "format", formatYAML, "Output format: yaml or json")
	flags.BoolVar(&a.requireSigning, "require-signing", false, "Fail instead of warning when signing credentials are incomplete")

	root.AddCommand(
		newResolveCmd(a),
		newPlanCmd(a),
		newNameCmd(a),
		newPublishCmd(a),
		newValidateReleaseCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) logger() interfaces.Logger {
	level := a.logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	return logging.NewLogger("variants", level, a.stderr)
}

func (a *app) root() string {
	if abs, err := filepath.Abs(a.rootDir); err == nil {
		return abs
	}
	return a.rootDir
}

func (a *app) projects(logger interfaces.Logger) *yamlrepo.ProjectRepository {
	return yamlrepo.NewProjectRepository(a.root(), a.configPath, logger)
}

func (a *app) orchestrator(logger interfaces.Logger) *orchestrators.VariantOrchestrator {
	signer := gpg.NewSigner()
	return orchestrators.NewVariantOrchestrator(orchestrators.VariantOrchestratorConfig{
		Projects:    a.projects(logger),
		Descriptors: manifest.NewDescriptorReader(logger),
		Credentials: properties.NewCredentialStore(),
		Publisher:   gateways.NewArtifactPublisher(),
		Signer:      signer,
		Verifier:    signer,
		Finder:      gateways.NewArtifactFinder(),
		Checksums:   gateways.NewChecksumVerifier(),
		LookupEnv:   a.lookupEnv,
		Logger:      logger,
	})
}

// render writes v to stdout in the selected format
func (a *app) render(v interface{}) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}
