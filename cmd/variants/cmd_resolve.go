package main

import (
	"github.com/spf13/cobra"

	"github.com/ochairo/variants/internal/domain/entities"
)

func newResolveCmd(a *app) *cobra.Command {
	var buildType string

	cmd := &cobra.Command{
		Use:   "resolve <flavor>",
		Short: "Print the identity of one flavor",
		Example: `  variants resolve midlet
  variants resolve emulator --build-type debug --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bt, err := entities.ParseBuildType(buildType)
			if err != nil {
				return err
			}
			variant, err := a.orchestrator(a.logger()).ResolveOne(cmd.Context(), args[0], bt, a.requireSigning)
			if err != nil {
				return err
			}
			return a.render(variant.Identity)
		},
	}
	cmd.Flags().StringVar(&buildType, "build-type", string(entities.BuildTypeRelease), "Build type: debug or release")
	return cmd
}
