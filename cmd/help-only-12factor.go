package cmd

import (
	"fmt"

	"github.com/relloyd/sfsync/constants"
	"github.com/spf13/cobra"
)

var twelveFactorCmd = &cobra.Command{
	Use:   "12f",
	Short: `View help notes for running in Twelve-Factor mode`,
	Long: fmt.Sprintf(`
sfsync can be controlled by environment variables so that preflight checks and
manual runs can themselves be scheduled, for example as a Lambda function.

To enable Twelve-Factor mode, set environment variable %[1]s_12FACTOR_MODE=1,
or %[1]s_12FACTOR_MODE=lambda to serve the command as a Lambda handler.
Choose the command with %[1]s_COMMAND, which may be "check" or "run".
To supply flags documented by the regular command-line usage, set an 
equivalent environment variable using the following convention: 

<%[1]s>_<flag long-name in upper case with dashes as underscores>

For example, this will start one execution of the deployed state machine:

export %[1]s_12FACTOR_MODE=1
export %[1]s_LOG_LEVEL=debug
export %[1]s_COMMAND=run
export %[1]s_STATE_MACHINE_ARN=arn:aws:states:eu-west-1:123456789012:stateMachine:sm
export %[1]s_ROLE_ARN=arn:aws:iam::123456789012:role/connector
export %[1]s_IMPORTER_HANDLER=tm_importer.lambda_handler
export %[1]s_EXPORTER_HANDLER=snowflake_export.lambda_handler
export %[1]s_QUERY_FILE_KEY=query.sql
export %[1]s_SECRET_NAME=snowflake
export %[1]s_OUTPUT_BUCKET=my-bucket
export %[1]s_OUTPUT_PREFIX=exports
export %[1]s_WORKSPACE_ID=factory
export %[1]s_COMPONENT_TYPE_ID=com.snowflake.connector

Then execute the CLI tool without any arguments or flags.

`, constants.EnvVarPrefix),
}

func init() {
	rootCmd.AddCommand(twelveFactorCmd)
}
