package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngld/ktbind/pkg"
	"github.com/ngld/ktbind/pkg/config"
	"github.com/ngld/ktbind/pkg/pipeline"
	"github.com/ngld/ktbind/pkg/platform"
)

var checkToolsCmd = &cobra.Command{
	Use:   "check-tools",
	Short: "Checks that cargo, kotlinc and curl are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.stop()

		plat, err := platform.Current()
		if err != nil {
			return err
		}

		m, err := pipeline.DefaultManifest()
		if err != nil {
			return err
		}

		pkg.PrintTask("Checking tools")
		reqs := pipeline.RequiredTools(plat, m, s.cfg.Downloader == config.DownloaderCurl)
		result, err := pipeline.CheckTools(reqs, nil)
		for _, tool := range result {
			switch {
			case tool.Found():
				pkg.PrintSubtask(fmt.Sprintf("%s: %s", tool.Name, tool.Path))
			case tool.Optional:
				pkg.PrintSubtask(fmt.Sprintf("%s: not found (optional, %s)", tool.Name, tool.Purpose))
			default:
				pkg.PrintError(fmt.Sprintf("%s: not found (%s)", tool.Name, tool.Purpose))
			}
		}

		return err
	},
}

func init() {
	rootCmd.AddCommand(checkToolsCmd)
}
