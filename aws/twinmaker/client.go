package twinmaker

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iottwinmaker"
	"github.com/aws/aws-sdk-go/service/iottwinmaker/iottwinmakeriface"
	"github.com/pkg/errors"
)

func NewClient(region string) Checker {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig.Region = aws.String(region)
	}
	sess := session.Must(session.NewSession(awsConfig))
	return NewClientWithAPI(iottwinmaker.New(sess))
}

func NewClientWithAPI(api iottwinmakeriface.IoTTwinMakerAPI) Checker {
	return &client{api: api}
}

type client struct {
	api iottwinmakeriface.IoTTwinMakerAPI
}

func (c *client) WorkspaceExists(ctx context.Context, workspaceID string) (bool, error) {
	_, err := c.api.GetWorkspaceWithContext(ctx, &iottwinmaker.GetWorkspaceInput{
		WorkspaceId: aws.String(workspaceID),
	})
	return found(err, "workspace "+workspaceID)
}

func (c *client) ComponentTypeExists(ctx context.Context, workspaceID, componentTypeID string) (bool, error) {
	_, err := c.api.GetComponentTypeWithContext(ctx, &iottwinmaker.GetComponentTypeInput{
		WorkspaceId:     aws.String(workspaceID),
		ComponentTypeId: aws.String(componentTypeID),
	})
	return found(err, "component type "+componentTypeID)
}

func found(err error, what string) (bool, error) {
	if err == nil {
		return true, nil
	}
	if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == iottwinmaker.ErrCodeResourceNotFoundException {
		return false, nil
	}
	return false, errors.Wrapf(err, "unable to look up %v", what)
}
