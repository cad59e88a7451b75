package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngld/ktbind/pkg"
	"github.com/ngld/ktbind/pkg/pipeline"
	"github.com/ngld/ktbind/pkg/runner"
)

var fetchDepsCmd = &cobra.Command{
	Use:   "fetch-deps",
	Short: "Downloads the vendored jars",
	Long: `Downloads the jars listed in the manifest into rpc_example/kotlin/vendor.
Jars which already exist are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.stop()

		env, err := s.pipeline().Resolve()
		if err != nil {
			return err
		}

		pkg.PrintTask(pipeline.StateFetchDependencies.Title())
		ctx := runner.WithTask(s.ctx, string(pipeline.StateFetchDependencies))
		err = pipeline.FetchDependencies(ctx, env)
		if err != nil {
			return err
		}

		pkg.PrintTask("Done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchDepsCmd)
}
