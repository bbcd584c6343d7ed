package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/logger"
	"github.com/spf13/cobra"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2024-03-01T10:00+0000"
	stackDumpOnPanic bool
	// Flags shared by every command that works with the deployed pipeline.
	deployment config.Deployment
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   constants.AppName,
	Short: "Deploy and operate a scheduled Snowflake to AWS IoT TwinMaker sync",
	Long: `sfsync deploys the Snowflake to IoT TwinMaker connector: one IAM role, a Lambda layer,
an exporter and an importer function, a two step state machine and an hourly rule that
starts it at minute 39. Use it to print the plan, deploy it with Pulumi, check that the
secret, bucket and workspace it depends on are in place, and trigger or inspect runs.`,
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if twelveFactorMode { // if we are running based on environment variables...
		if lambdaMode { // if we should handle lambda execution...
			lambda.Start(func() error { return execute12FactorMode(twelveFactorActions) })
		} else {
			if err := execute12FactorMode(twelveFactorActions); err != nil {
				// execute12FactorMode prints the error.
				os.Exit(1)
			}
		}
	} else { // else we're using CLI args and flags via Cobra...
		if err := rootCmd.Execute(); err != nil {
			// Execute() prints the error.
			os.Exit(1)
		}
	}
}

func newLogger() logger.Logger {
	return newLoggerAt(logLevel)
}

// newLoggerAt writes JSON in Lambda so CloudWatch can index the fields, and text elsewhere.
func newLoggerAt(level string) logger.Logger {
	if lambdaMode {
		return logger.NewJSONLogger(constants.AppName, level, stackDumpOnPanic)
	}
	return logger.NewLogger(constants.AppName, level, stackDumpOnPanic)
}

// commandContext is cancelled on SIGINT so that AWS calls and Pulumi operations stop cleanly.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// addDeploymentFlags registers the flags that make up config.Deployment.
// None are marked as required: config.Deployment.Validate() reports everything that is missing at once.
func addDeploymentFlags(c *cobra.Command) {
	switches.addFlag(c, &deployment.ImporterHandler, "importer-handler", "", false, "")
	switches.addFlag(c, &deployment.ExporterHandler, "exporter-handler", "", false, "")
	switches.addFlag(c, &deployment.QueryFileKey, "query-file-key", "", false, "")
	switches.addFlag(c, &deployment.SecretName, "secret-name", "", false, "")
	switches.addFlag(c, &deployment.OutputBucket, "output-bucket", "", false, "")
	switches.addFlag(c, &deployment.OutputPrefix, "output-prefix", "", false, "")
	switches.addFlag(c, &deployment.SnowflakeWorkspaceID, "workspace-id", "", false, "")
	switches.addFlag(c, &deployment.ComponentTypeID, "component-type-id", "", false, "")
	addStackFlags(c)
}

// addStackFlags registers the flags needed to find the Pulumi stack and the AWS region.
func addStackFlags(c *cobra.Command) {
	switches.addFlag(c, &deployment.AssetRoot, "asset-root", constants.DefaultAssetRoot, false, "")
	switches.addFlag(c, &deployment.Region, "region", "", false, "")
	switches.addFlag(c, &deployment.ProjectName, "project-name", constants.AppName, false, "")
	switches.addFlag(c, &deployment.StackName, "stack-name", constants.DefaultStackName, false, "")
	switches.addFlag(c, &logLevel, "log-level", "info", false, "")
}
