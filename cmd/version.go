package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information for sfsync",
	Long:  `Show version information for sfsync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf(`sfsync
  Version:	%v
  Build date:	%v
`, version, buildDate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
