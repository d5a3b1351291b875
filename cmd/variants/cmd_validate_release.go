package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/variants/internal/domain/entities"
)

func newValidateReleaseCmd(a *app) *cobra.Command {
	var (
		artifactsDir string
		buildType    string
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "validate-release <flavor>",
		Short: "Check that every split of a variant was published intact",
		Long: `Validate that all expected split artifacts of a variant are present in the
artifacts directory, that no unexpected splits exist, that checksums match and
that a release variant with a signing configuration was signed.

Exits non-zero when the variant is not ready for release.`,
		Example: `  variants validate-release emulator
  variants validate-release midlet --artifacts ./dist --quiet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bt, err := entities.ParseBuildType(buildType)
			if err != nil {
				return err
			}
			report, err := a.orchestrator(a.logger()).ValidateRelease(cmd.Context(), args[0], bt, artifactsDir)
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(a.stdout, "🔍 Validating release for %s %s\n", report.Variant.Name, report.Variant.Identity.VersionName)
				fmt.Fprintf(a.stdout, "   Expected splits: %d\n", len(report.Validation.ExpectedSplits))
				fmt.Fprintf(a.stdout, "   Available splits: %d\n", len(report.Validation.AvailableSplits))
			}

			if !report.IsReady() {
				if msg := report.Validation.ErrorMessage(); msg != "" {
					fmt.Fprintf(a.stderr, "❌ %s\n", msg)
				}
				for _, e := range append(report.ChecksumErrors, report.SignatureErrors...) {
					fmt.Fprintf(a.stderr, "❌ %s\n", e)
				}
				return errors.New("release validation failed")
			}

			if !quiet {
				fmt.Fprintf(a.stdout, "✅ %s is ready for release\n", report.Variant.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&artifactsDir, "artifacts", "dist", "Directory containing published artifacts")
	cmd.Flags().StringVar(&buildType, "build-type", string(entities.BuildTypeRelease), "Build type: debug or release")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only output errors (exit code indicates success/failure)")
	return cmd
}
