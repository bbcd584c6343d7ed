package secrets

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/pkg/errors"
)

func NewClient(region string) Getter {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig.Region = aws.String(region)
	}
	sess := session.Must(session.NewSession(awsConfig))
	return NewClientWithAPI(secretsmanager.New(sess))
}

func NewClientWithAPI(api secretsmanageriface.SecretsManagerAPI) Getter {
	return &client{api: api}
}

type client struct {
	api secretsmanageriface.SecretsManagerAPI
}

// GetSecretString returns the current value of the secret, falling back to the binary value.
func (c *client) GetSecretString(ctx context.Context, name string) (string, error) {
	res, err := c.api.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == secretsmanager.ErrCodeResourceNotFoundException {
			return "", errors.Wrapf(ErrSecretNotFound, "secret %v", name)
		}
		return "", errors.Wrapf(err, "unable to read secret %v", name)
	}
	if res.SecretString != nil {
		return aws.StringValue(res.SecretString), nil
	}
	return string(res.SecretBinary), nil
}
