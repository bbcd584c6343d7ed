package actions

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/aws/sfn"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/helper"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
	"github.com/rs/xid"
)

var ErrExecutionFailed = errors.New("execution did not succeed")

const defaultPollInterval = 10 * time.Second

type RunConfig struct {
	Deployment      config.Deployment
	StateMachineARN string `errorTxt:"state-machine-arn" mandatory:"yes"`
	RoleARN         string `errorTxt:"role-arn" mandatory:"yes"`
	Wait            bool
	PollInterval    time.Duration
	Client          sfn.Client
	Output          io.Writer
	Format          string
	Now             func() time.Time
}

// ExecutionName is unique per call and sorts by start time.
func ExecutionName(now time.Time) string {
	return fmt.Sprintf("%v-%v-%v", constants.AppName, now.UTC().Format(constants.TimeFormatYearSeconds), xid.New().String())
}

// RunExecution starts the workflow now with the same input the schedule would send.
// With Wait set it polls until the execution stops and fails unless it succeeded.
func RunExecution(ctx context.Context, log logger.Logger, cfg *RunConfig) (*sfn.Execution, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Deployment.Validate(); err != nil {
		return nil, err
	}
	plan, err := pipeline.NewPlan(cfg.Deployment)
	if err != nil {
		return nil, err
	}
	input, err := plan.Rule.InputFor(cfg.RoleARN).JSON()
	if err != nil {
		return nil, err
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	e, err := cfg.Client.StartExecution(ctx, cfg.StateMachineARN, ExecutionName(now()), input)
	if err != nil {
		return nil, err
	}
	log.Info("started execution ", e.Name)
	if cfg.Wait {
		if e, err = waitForExecution(ctx, log.WithField("execution", e.Name), cfg.Client, e.ARN, cfg.PollInterval); err != nil {
			return e, err
		}
	}
	if err := writeOutput(outputOrStdout(cfg.Output), e, cfg.Format); err != nil {
		return e, err
	}
	if e.IsTerminal() && e.Status != sfn.StatusSucceeded {
		return e, errors.Wrapf(ErrExecutionFailed, "execution %v ended with status %v", e.Name, e.Status)
	}
	return e, nil
}

func waitForExecution(ctx context.Context, log logger.Logger, c sfn.Describer, arn string, interval time.Duration) (*sfn.Execution, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		e, err := c.DescribeExecution(ctx, arn)
		if err != nil {
			return nil, err
		}
		if e.IsTerminal() {
			return e, nil
		}
		log.Debug("execution is ", e.Status)
		select {
		case <-ctx.Done():
			return e, errors.Wrapf(ctx.Err(), "stopped waiting for execution %v", arn)
		case <-ticker.C:
		}
	}
}

type ExecutionsConfig struct {
	StateMachineARN string `errorTxt:"state-machine-arn" mandatory:"yes"`
	Max             int
	Client          sfn.Lister
	Output          io.Writer
	Format          string
}

// RunListExecutions prints recent executions of the workflow.
func RunListExecutions(ctx context.Context, log logger.Logger, cfg *ExecutionsConfig) ([]sfn.Execution, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	list, err := cfg.Client.ListExecutions(ctx, cfg.StateMachineARN, cfg.Max)
	if err != nil {
		return nil, err
	}
	log.Debug("found ", len(list), " executions")
	if cfg.Format == FormatText {
		w := outputOrStdout(cfg.Output)
		for _, e := range list {
			fmt.Fprintf(w, "%-10v %v %v\n", e.Status, e.StartDate.Format(time.RFC3339), e.Name)
		}
		return list, nil
	}
	return list, writeOutput(outputOrStdout(cfg.Output), list, cfg.Format)
}
