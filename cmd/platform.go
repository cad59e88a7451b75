package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ngld/ktbind/pkg/pipeline"
	"github.com/ngld/ktbind/pkg/platform"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Prints the library naming conventions of the current platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		goos, err := cmd.Flags().GetString("os")
		if err != nil {
			return err
		}

		plat, err := platform.Resolve(goos)
		if err != nil {
			return err
		}

		m, err := pipeline.DefaultManifest()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "os:        %s\n", plat.OS)
		fmt.Fprintf(out, "extension: %s\n", plat.LibExt)
		fmt.Fprintf(out, "library:   %s\n", plat.LibFileName(m.Library))
		fmt.Fprintf(out, "kotlinc:   %s\n", plat.Kotlinc)
		fmt.Fprintf(out, "separator: %s\n", plat.ListSeparator)
		return nil
	},
}

func init() {
	platformCmd.Flags().String("os", runtime.GOOS, "operating system to resolve")
	rootCmd.AddCommand(platformCmd)
}
