package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/aws/sfn"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/logger"
	"github.com/spf13/cobra"
)

var (
	runCfg         = actions.RunConfig{}
	runPollSeconds int
	executionsCfg  = actions.ExecutionsConfig{}
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the workflow now",
	Long: `Start one execution of the deployed state machine with the same input the hourly rule sends.
Use --wait to block until the execution stops; the command fails unless it succeeded`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExecution()
	},
}

var executionsCmd = &cobra.Command{
	Use:   "executions",
	Short: "List recent executions of the workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		log := newLogger()
		if err := resolveStackOutputs(ctx, log, &executionsCfg.StateMachineARN, nil); err != nil {
			return err
		}
		executionsCfg.Client = sfn.NewClient(deployment.Region)
		_, err := actions.RunListExecutions(ctx, log, &executionsCfg)
		return err
	},
}

func runExecution() error {
	ctx, cancel := commandContext()
	defer cancel()
	log := newLogger()
	if err := resolveStackOutputs(ctx, log, &runCfg.StateMachineARN, &runCfg.RoleARN); err != nil {
		return err
	}
	runCfg.Deployment = deployment
	runCfg.PollInterval = time.Duration(runPollSeconds) * time.Second
	runCfg.Client = sfn.NewClient(deployment.Region)
	_, err := actions.RunExecution(ctx, log, &runCfg)
	return err
}

// resolveStackOutputs fills any empty ARN from the outputs of the deployed stack.
// Pass nil for values that are not needed.
func resolveStackOutputs(ctx context.Context, log logger.Logger, stateMachineARN *string, roleARN *string) error {
	missing := (stateMachineARN != nil && *stateMachineARN == "") || (roleARN != nil && *roleARN == "")
	if !missing {
		return nil
	}
	log.Debug("reading ARNs from the outputs of stack ", deployment.StackName)
	out, err := actions.StackOutputs(ctx, log, deployment)
	if err != nil {
		return errors.Wrap(err, "supply --state-machine-arn and --role-arn or deploy the stack first")
	}
	if stateMachineARN != nil && *stateMachineARN == "" {
		*stateMachineARN = out[constants.OutputStateMachineArn]
	}
	if roleARN != nil && *roleARN == "" {
		*roleARN = out[constants.OutputRoleArn]
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd, executionsCmd)
	// run
	runCmd.Flags().SortFlags = false
	addDeploymentFlags(runCmd)
	switches.addFlag(runCmd, &runCfg.StateMachineARN, "state-machine-arn", "", false, "")
	switches.addFlag(runCmd, &runCfg.RoleARN, "role-arn", "", false, "")
	switches.addFlag(runCmd, &runCfg.Wait, "wait", "false", false, "")
	switches.addFlag(runCmd, &runPollSeconds, "poll", "10", false, "")
	switches.addFlag(runCmd, &runCfg.Format, "output", actions.FormatJSON, false, "")
	runCmd.SilenceUsage = true
	// executions
	executionsCmd.Flags().SortFlags = false
	addStackFlags(executionsCmd)
	switches.addFlag(executionsCmd, &executionsCfg.StateMachineARN, "state-machine-arn", "", false, "")
	switches.addFlag(executionsCmd, &executionsCfg.Max, "max", "20", false, "")
	switches.addFlag(executionsCmd, &executionsCfg.Format, "output", actions.FormatText, false, "")
	executionsCmd.SilenceUsage = true
}
