package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/external-adapters/fswatch"
)

func newWatchCmd(a *app) *cobra.Command {
	var buildType string

	cmd := &cobra.Command{
		Use:   "watch <flavor>",
		Short: "Re-resolve a descriptor flavor whenever its descriptor changes",
		Long: `Print the identity of a descriptor-backed flavor, then watch its descriptor
file and print the identity again after every change. Each change triggers a
fresh evaluation. Stops on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := a.logger()

			bt, err := entities.ParseBuildType(buildType)
			if err != nil {
				return err
			}

			project, err := a.projects(logger).LoadProject(ctx)
			if err != nil {
				return err
			}
			flavor, err := project.Flavor(args[0])
			if err != nil {
				return err
			}
			src, ok := flavor.Source.(entities.DescriptorSource)
			if !ok {
				return fmt.Errorf("flavor %s does not read a descriptor", flavor.Name)
			}
			path := src.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(project.RootDir, project.ModuleDir, path)
			}

			orch := a.orchestrator(logger)
			resolve := func() {
				variant, err := orch.ResolveOne(ctx, flavor.Name, bt, a.requireSigning)
				if err != nil {
					logger.Error("resolution failed", interfaces.F("error", err.Error()))
					return
				}
				if err := a.render(variant.Identity); err != nil {
					logger.Error("failed to write identity", interfaces.F("error", err.Error()))
				}
			}

			resolve()
			return fswatch.NewDescriptorWatcher(0, logger).Watch(ctx, path, resolve)
		},
	}
	cmd.Flags().StringVar(&buildType, "build-type", string(entities.BuildTypeRelease), "Build type: debug or release")
	return cmd
}
