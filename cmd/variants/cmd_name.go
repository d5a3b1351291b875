package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/variants/internal/domain/services"
)

func newNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "name <project> <version> <dir-tag>",
		Short:   "Print the artifact file name for a build output",
		Example: `  variants name J2ME-Loader 0.87.1 emulator-release-arm64-v8a`,
		Args:    cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, services.ArtifactName(args[0], args[1], args[2]))
			return err
		},
	}
}
