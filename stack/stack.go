// Package stack declares a pipeline.Plan as AWS resources with Pulumi.
package stack

import (
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudwatch"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/sfn"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
)

// Resources holds everything declared for one plan.
type Resources struct {
	Role         *iam.Role
	Policy       *iam.Policy
	Attachment   *iam.RolePolicyAttachment
	Layer        *lambda.LayerVersion
	Importer     *lambda.Function
	Exporter     *lambda.Function
	StateMachine *sfn.StateMachine
	Rule         *cloudwatch.EventRule
	Target       *cloudwatch.EventTarget
}

// Program returns the Pulumi program for plan. A nil plan declares an empty stack.
func Program(plan *pipeline.Plan, log logger.Logger) pulumi.RunFunc {
	return func(ctx *pulumi.Context) error {
		if plan == nil {
			log.Debug("no plan supplied; declaring an empty stack")
			return nil
		}
		r, err := Declare(ctx, plan, log)
		if err != nil {
			return err
		}
		ctx.Export(constants.OutputRoleArn, r.Role.Arn)
		ctx.Export(constants.OutputStateMachineArn, r.StateMachine.Arn)
		ctx.Export(constants.OutputExporterFunction, r.Exporter.Name)
		ctx.Export(constants.OutputImporterFunction, r.Importer.Name)
		ctx.Export(constants.OutputRuleName, r.Rule.Name)
		return nil
	}
}

// Declare registers every resource of plan with ctx.
func Declare(ctx *pulumi.Context, plan *pipeline.Plan, log logger.Logger) (*Resources, error) {
	provArgs := &aws.ProviderArgs{
		DefaultTags: &aws.ProviderDefaultTagsArgs{
			Tags: pulumi.StringMap{
				"Project":   pulumi.String(ctx.Project()),
				"Stack":     pulumi.String(ctx.Stack()),
				"ManagedBy": pulumi.String("Pulumi"),
			},
		},
	}
	// An explicit provider does not read aws:region from stack config.
	if plan.Deployment.Region != "" {
		provArgs.Region = pulumi.String(plan.Deployment.Region)
	}
	prov, err := aws.NewProvider(ctx, constants.AppName, provArgs)
	if err != nil {
		return nil, err
	}
	opts := pulumi.Provider(prov)
	r := &Resources{}

	part, err := aws.GetPartition(ctx, nil, opts)
	if err != nil {
		return nil, errors.Wrap(err, "unable to look up partition")
	}
	log.Debug("declaring resources in partition ", part.Partition)

	// Access role and its allow-all policy.
	trust, err := plan.Role.AssumeRolePolicy()
	if err != nil {
		return nil, err
	}
	r.Role, err = iam.NewRole(ctx, plan.Role.Name, &iam.RoleArgs{
		AssumeRolePolicy:  pulumi.String(trust),
		ManagedPolicyArns: pulumi.ToStringArray(plan.Role.ManagedPolicyARNs(part.Partition)),
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare role %v", plan.Role.Name)
	}
	if plan.Policy.IsAllowAll() {
		log.Warn("policy ", plan.Policy.Name, " allows every action on every resource")
	}
	doc, err := plan.Policy.Document()
	if err != nil {
		return nil, err
	}
	r.Policy, err = iam.NewPolicy(ctx, plan.Policy.Name, &iam.PolicyArgs{
		Policy: pulumi.String(doc),
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare policy %v", plan.Policy.Name)
	}
	r.Attachment, err = iam.NewRolePolicyAttachment(ctx, constants.PolicyAttachmentName, &iam.RolePolicyAttachmentArgs{
		Role:      r.Role.Name,
		PolicyArn: r.Policy.Arn,
	}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "unable to attach policy")
	}

	r.Layer, err = lambda.NewLayerVersion(ctx, plan.Layer.Name, &lambda.LayerVersionArgs{
		LayerName:          pulumi.String(plan.Layer.Name),
		Code:               pulumi.NewFileArchive(plan.Layer.AssetPath),
		CompatibleRuntimes: pulumi.ToStringArray(plan.Layer.CompatibleRuntimes),
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare layer %v", plan.Layer.Name)
	}

	if r.Importer, err = declareFunction(ctx, plan.Importer, r, opts); err != nil {
		return nil, err
	}
	if r.Exporter, err = declareFunction(ctx, plan.Exporter, r, opts); err != nil {
		return nil, err
	}

	wf := plan.Workflow
	definition := pulumi.All(r.Exporter.Arn, r.Importer.Arn).ApplyT(func(args []interface{}) (string, error) {
		return wf.Definition(map[string]string{
			plan.Exporter.Name: args[0].(string),
			plan.Importer.Name: args[1].(string),
		})
	}).(pulumi.StringOutput)
	r.StateMachine, err = sfn.NewStateMachine(ctx, wf.Name, &sfn.StateMachineArgs{
		RoleArn:    r.Role.Arn,
		Definition: definition,
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare state machine %v", wf.Name)
	}

	rule := plan.Rule
	r.Rule, err = cloudwatch.NewEventRule(ctx, rule.Name, &cloudwatch.EventRuleArgs{
		ScheduleExpression: pulumi.String(rule.Cron.Expression()),
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare rule %v", rule.Name)
	}
	input := r.Role.Arn.ApplyT(func(arn string) (string, error) {
		return rule.InputFor(arn).JSON()
	}).(pulumi.StringOutput)
	r.Target, err = cloudwatch.NewEventTarget(ctx, constants.RuleTargetName, &cloudwatch.EventTargetArgs{
		Rule:    r.Rule.Name,
		Arn:     r.StateMachine.Arn,
		RoleArn: r.Role.Arn,
		Input:   input,
	}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare target for rule %v", rule.Name)
	}
	log.Info("declared ", len(plan.Functions()), " functions, workflow ", wf.Name, " and rule ", rule.Cron.Expression())
	return r, nil
}

func declareFunction(ctx *pulumi.Context, f pipeline.Function, r *Resources, opts pulumi.ResourceOption) (*lambda.Function, error) {
	args := &lambda.FunctionArgs{
		Code:       pulumi.NewFileArchive(f.AssetPath),
		Handler:    pulumi.String(f.Handler.String()),
		Runtime:    pulumi.String(f.Runtime),
		MemorySize: pulumi.Int(f.MemoryMB),
		Timeout:    pulumi.Int(f.TimeoutSeconds()),
		Role:       r.Role.Arn,
		Layers:     pulumi.StringArray{r.Layer.Arn},
	}
	if len(f.Environment) > 0 {
		args.Environment = &lambda.FunctionEnvironmentArgs{
			Variables: pulumi.ToStringMap(f.Environment),
		}
	}
	fn, err := lambda.NewFunction(ctx, f.Name, args, opts, pulumi.DependsOn([]pulumi.Resource{r.Attachment}))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to declare function %v", f.Name)
	}
	return fn, nil
}
