package cmd

import (
	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/aws/secrets"
	"github.com/relloyd/sfsync/aws/twinmaker"
	"github.com/spf13/cobra"
)

var checkCfg = actions.CheckConfig{}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the pipeline's dependencies are in place",
	Long: `Check that the configuration is complete and that the resources the pipeline depends on exist:
the Secrets Manager secret and the Snowflake credentials it holds, the query file in the
function assets, the output bucket and the IoT TwinMaker workspace and component type`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func runCheck() error {
	ctx, cancel := commandContext()
	defer cancel()
	log := newLogger()
	checkCfg.Deployment = deployment
	checkCfg.Secrets = secrets.NewClient(deployment.Region)
	checkCfg.Bucket = s3.NewClient(deployment.OutputBucket, deployment.Region, deployment.OutputPrefix)
	checkCfg.TwinMaker = twinmaker.NewClient(deployment.Region)
	checkCfg.Snowflake = actions.NewSnowflakeProber(log)
	_, err := actions.RunCheck(ctx, log, &checkCfg)
	return err
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().SortFlags = false
	addDeploymentFlags(checkCmd)
	switches.addFlag(checkCmd, &checkCfg.Explain, "explain", "false", false, "")
	switches.addFlag(checkCmd, &checkCfg.Format, "output", actions.FormatText, false, "")
	checkCmd.SilenceUsage = true
}
