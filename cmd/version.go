package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotruss",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gotruss v%s\n", version.Version)
		fmt.Fprintf(out, "Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
		fmt.Fprintln(out, "3D Truss Analysis Tool (direct stiffness method)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
