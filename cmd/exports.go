package cmd

import (
	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/spf13/cobra"
)

var (
	exportsListCfg = actions.ExportsConfig{}
	exportsGetCfg  = actions.ExportGetConfig{}
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Inspect files written by the exporter",
}

var exportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported files under the output prefix, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		exportsListCfg.Bucket = deployment.OutputBucket
		exportsListCfg.Client = s3.NewClient(deployment.OutputBucket, deployment.Region, deployment.OutputPrefix)
		_, err := actions.RunListExports(ctx, newLogger(), &exportsListCfg)
		return err
	},
}

var exportsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the content of one exported file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		// Listed keys already include the output prefix.
		exportsGetCfg.Client = s3.NewClient(deployment.OutputBucket, deployment.Region, "")
		return actions.RunGetExport(ctx, newLogger(), &exportsGetCfg)
	},
}

func init() {
	rootCmd.AddCommand(exportsCmd)
	exportsCmd.AddCommand(exportsListCmd, exportsGetCmd)
	for _, c := range []*cobra.Command{exportsListCmd, exportsGetCmd} {
		c.Flags().SortFlags = false
		switches.addFlag(c, &deployment.OutputBucket, "output-bucket", "", true, "")
		switches.addFlag(c, &deployment.Region, "region", "", false, "")
		switches.addFlag(c, &logLevel, "log-level", "info", false, "")
		c.SilenceUsage = true
	}
	switches.addFlag(exportsListCmd, &deployment.OutputPrefix, "output-prefix", "", false, "")
	switches.addFlag(exportsListCmd, &exportsListCfg.Format, "output", actions.FormatText, false, "")
	switches.addFlag(exportsGetCmd, &exportsGetCfg.Key, "key", "", true, "")
}
