package main

import (
	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/variants/internal/domain-orchestrators"
	"github.com/ochairo/variants/internal/domain/entities"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		flavors    []string
		buildTypes []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Evaluate every flavor and build type of the project",
		Long: `Evaluate the project configuration once: identity, build config fields,
resource values, signing status and artifact names of every variant.
Missing signing credentials are reported as warnings unless --require-signing is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := orchestrators.EvaluateOptions{
				RequireSigning: a.requireSigning,
				Flavors:        flavors,
			}
			for _, name := range buildTypes {
				bt, err := entities.ParseBuildType(name)
				if err != nil {
					return err
				}
				opts.BuildTypes = append(opts.BuildTypes, bt)
			}

			plan, err := a.orchestrator(a.logger()).Evaluate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.render(plan)
		},
	}
	cmd.Flags().StringSliceVar(&flavors, "flavor", nil, "Only evaluate these flavors")
	cmd.Flags().StringSliceVar(&buildTypes, "build-type", nil, "Only evaluate these build types")
	return cmd
}
