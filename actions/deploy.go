package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optdestroy"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optpreview"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optup"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
	"github.com/relloyd/sfsync/stack"
)

const awsRegionConfigKey = "aws:region"

type DeployConfig struct {
	Deployment config.Deployment
	Output     io.Writer
	Format     string
}

// RunPreview shows the changes an update would make.
func RunPreview(ctx context.Context, log logger.Logger, cfg *DeployConfig) error {
	s, err := selectStackWithPlan(ctx, log, cfg)
	if err != nil {
		return err
	}
	res, err := s.Preview(ctx, optpreview.ProgressStreams(outputOrStdout(cfg.Output)))
	if err != nil {
		return errors.Wrapf(err, "preview of stack %v failed", s.Name())
	}
	for op, n := range res.ChangeSummary {
		log.Info(op, ": ", n)
	}
	return nil
}

// RunUp creates or updates every resource of the plan and prints the stack outputs.
func RunUp(ctx context.Context, log logger.Logger, cfg *DeployConfig) error {
	s, err := selectStackWithPlan(ctx, log, cfg)
	if err != nil {
		return err
	}
	res, err := s.Up(ctx, optup.ProgressStreams(outputOrStdout(cfg.Output)))
	if err != nil {
		return errors.Wrapf(err, "update of stack %v failed", s.Name())
	}
	log.Info("update ", res.Summary.Result, " for stack ", s.Name())
	return writeOutput(outputOrStdout(cfg.Output), outputValues(res.Outputs), cfg.Format)
}

// RunDestroy deletes every resource in the stack.
func RunDestroy(ctx context.Context, log logger.Logger, cfg *DeployConfig) error {
	s, err := selectStack(ctx, cfg.Deployment, nil, log)
	if err != nil {
		return err
	}
	if _, err = s.Destroy(ctx, optdestroy.ProgressStreams(outputOrStdout(cfg.Output))); err != nil {
		return errors.Wrapf(err, "destroy of stack %v failed", s.Name())
	}
	log.Info("stack ", s.Name(), " destroyed")
	return nil
}

// RunOutputs prints the outputs of the last update.
func RunOutputs(ctx context.Context, log logger.Logger, cfg *DeployConfig) error {
	out, err := StackOutputs(ctx, log, cfg.Deployment)
	if err != nil {
		return err
	}
	return writeOutput(outputOrStdout(cfg.Output), out, cfg.Format)
}

// StackOutputs returns the outputs of the deployed stack named by d.
func StackOutputs(ctx context.Context, log logger.Logger, d config.Deployment) (map[string]string, error) {
	s, err := selectStack(ctx, d, nil, log)
	if err != nil {
		return nil, err
	}
	out, err := s.Outputs(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read outputs of stack %v", s.Name())
	}
	return outputValues(out), nil
}

func outputValues(m auto.OutputMap) map[string]string {
	ret := make(map[string]string, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m[k].Secret {
			ret[k] = "[secret]"
			continue
		}
		ret[k] = fmt.Sprint(m[k].Value)
	}
	return ret
}

// selectStackWithPlan validates the deployment and its assets before handing the plan to Pulumi.
func selectStackWithPlan(ctx context.Context, log logger.Logger, cfg *DeployConfig) (auto.Stack, error) {
	if err := cfg.Deployment.Validate(); err != nil {
		return auto.Stack{}, err
	}
	plan, err := pipeline.NewPlan(cfg.Deployment)
	if err != nil {
		return auto.Stack{}, err
	}
	for _, p := range []string{plan.Layer.AssetPath, plan.Exporter.AssetPath} {
		if err := requireDir(p); err != nil {
			return auto.Stack{}, err
		}
	}
	return selectStack(ctx, plan.Deployment, plan, log)
}

func selectStack(ctx context.Context, d config.Deployment, plan *pipeline.Plan, log logger.Logger) (auto.Stack, error) {
	d.ApplyDefaults()
	s, err := auto.UpsertStackInlineSource(ctx, d.StackName, d.ProjectName, stack.Program(plan, log))
	if err != nil {
		return auto.Stack{}, errors.Wrapf(err, "unable to select stack %v/%v", d.ProjectName, d.StackName)
	}
	if d.Region != "" {
		if err = s.SetConfig(ctx, awsRegionConfigKey, auto.ConfigValue{Value: d.Region}); err != nil {
			return auto.Stack{}, errors.Wrap(err, "unable to set AWS region")
		}
	}
	log.Debug("using stack ", s.Name())
	return s, nil
}

func requireDir(p string) error {
	fi, err := os.Stat(p)
	if err != nil {
		return errors.Wrapf(err, "asset directory %v is not readable", p)
	}
	if !fi.IsDir() {
		return fmt.Errorf("asset path %v is not a directory", p)
	}
	return nil
}
