package main

import (
	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/variants/internal/domain-orchestrators"
	"github.com/ochairo/variants/internal/domain/entities"
)

func newPublishCmd(a *app) *cobra.Command {
	var (
		split     string
		outputDir string
		sign      bool
	)

	cmd := &cobra.Command{
		Use:   "publish <flavor> <build-type> <file>",
		Short: "Copy a toolchain output under its artifact name",
		Long: `Copy a built package into the output directory under its computed artifact name
and write a .sha256 checksum next to it. With --sign the artifact is also signed
with the flavor's signing configuration, producing a detached .asc signature.`,
		Example: `  variants publish emulator release build/app-emulator-arm64-v8a-release.apk --split arm64-v8a --sign`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bt, err := entities.ParseBuildType(args[1])
			if err != nil {
				return err
			}
			result, err := a.orchestrator(a.logger()).Publish(cmd.Context(), orchestrators.PublishRequest{
				Flavor:         args[0],
				BuildType:      bt,
				Split:          split,
				SourcePath:     args[2],
				OutputDir:      outputDir,
				Sign:           sign,
				RequireSigning: a.requireSigning,
			})
			if err != nil {
				return err
			}
			return a.render(result)
		},
	}
	cmd.Flags().StringVar(&split, "split", entities.UniversalSplit, "ABI split of the file")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&sign, "sign", false, "Sign the artifact with the flavor's signing configuration")
	return cmd
}
