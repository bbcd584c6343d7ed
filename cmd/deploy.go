package cmd

import (
	"context"

	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/logger"
	"github.com/spf13/cobra"
)

var deployCfg = actions.DeployConfig{}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the changes an update would make to the stack",
	RunE:  getDeployRunner(actions.RunPreview),
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the pipeline resources",
	Long: `Create or update the role, policy, layer, exporter and importer functions, state machine
and hourly rule. The stack outputs are printed when the update completes`,
	RunE: getDeployRunner(actions.RunUp),
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete every resource in the stack",
	RunE:  getDeployRunner(actions.RunDestroy),
}

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Print the outputs of the last update",
	RunE:  getDeployRunner(actions.RunOutputs),
}

func getDeployRunner(fn func(ctx context.Context, log logger.Logger, cfg *actions.DeployConfig) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		deployCfg.Deployment = deployment
		return fn(ctx, newLogger(), &deployCfg)
	}
}

func init() {
	for _, c := range []*cobra.Command{previewCmd, upCmd, destroyCmd, outputsCmd} {
		rootCmd.AddCommand(c)
		c.Flags().SortFlags = false
		c.SilenceUsage = true
	}
	addDeploymentFlags(previewCmd)
	addDeploymentFlags(upCmd)
	addStackFlags(destroyCmd)
	addStackFlags(outputsCmd)
	switches.addFlag(upCmd, &deployCfg.Format, "output", actions.FormatJSON, false, "")
	switches.addFlag(outputsCmd, &deployCfg.Format, "output", actions.FormatJSON, false, "")
}
