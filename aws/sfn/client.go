package sfn

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sfn"
	"github.com/aws/aws-sdk-go/service/sfn/sfniface"
	"github.com/pkg/errors"
)

const pageSize = 100

func NewClient(region string) Client {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig.Region = aws.String(region)
	}
	sess := session.Must(session.NewSession(awsConfig))
	return NewClientWithAPI(sfn.New(sess))
}

func NewClientWithAPI(api sfniface.SFNAPI) Client {
	return &client{api: api}
}

type client struct {
	api sfniface.SFNAPI
}

func (c *client) StartExecution(ctx context.Context, stateMachineARN, name, input string) (*Execution, error) {
	res, err := c.api.StartExecutionWithContext(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(stateMachineARN),
		Name:            aws.String(name),
		Input:           aws.String(input),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to start execution %v", name)
	}
	return &Execution{
		ARN:       aws.StringValue(res.ExecutionArn),
		Name:      name,
		Status:    StatusRunning,
		StartDate: aws.TimeValue(res.StartDate),
		Input:     input,
	}, nil
}

func (c *client) DescribeExecution(ctx context.Context, executionARN string) (*Execution, error) {
	res, err := c.api.DescribeExecutionWithContext(ctx, &sfn.DescribeExecutionInput{
		ExecutionArn: aws.String(executionARN),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to describe execution %v", executionARN)
	}
	return &Execution{
		ARN:       aws.StringValue(res.ExecutionArn),
		Name:      aws.StringValue(res.Name),
		Status:    aws.StringValue(res.Status),
		StartDate: aws.TimeValue(res.StartDate),
		StopDate:  aws.TimeValue(res.StopDate),
		Input:     aws.StringValue(res.Input),
		Output:    aws.StringValue(res.Output),
	}, nil
}

func (c *client) ListExecutions(ctx context.Context, stateMachineARN string, max int) ([]Execution, error) {
	size := int64(pageSize)
	if max > 0 && max < pageSize {
		size = int64(max)
	}
	var executions []Execution
	err := c.api.ListExecutionsPagesWithContext(ctx, &sfn.ListExecutionsInput{
		StateMachineArn: aws.String(stateMachineARN),
		MaxResults:      aws.Int64(size),
	}, func(page *sfn.ListExecutionsOutput, lastPage bool) bool {
		for _, e := range page.Executions {
			executions = append(executions, Execution{
				ARN:       aws.StringValue(e.ExecutionArn),
				Name:      aws.StringValue(e.Name),
				Status:    aws.StringValue(e.Status),
				StartDate: aws.TimeValue(e.StartDate),
				StopDate:  aws.TimeValue(e.StopDate),
			})
			if max > 0 && len(executions) >= max {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list executions of %v", stateMachineARN)
	}
	return executions, nil
}
