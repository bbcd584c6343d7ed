package pipeline

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/config"
)

// Payload is the workflow input built by the schedule rule. Every field is always present.
type Payload struct {
	SecretsName         string `json:"secretsName"`
	QueryFile           string `json:"queryFile"`
	Bucket              string `json:"bucket"`
	Prefix              string `json:"prefix"`
	WorkspaceID         string `json:"workspaceId"`
	ComponentTypeID     string `json:"componentTypeId"`
	IotTwinMakerRoleARN string `json:"iottwinmakerRoleArn"`
}

// NewPayload copies the deployment values; the role ARN is left for ScheduleRule.InputFor.
func NewPayload(d config.Deployment) Payload {
	return Payload{
		SecretsName:     d.SecretName,
		QueryFile:       d.QueryFileKey,
		Bucket:          d.OutputBucket,
		Prefix:          d.OutputPrefix,
		WorkspaceID:     d.SnowflakeWorkspaceID,
		ComponentTypeID: d.ComponentTypeID,
	}
}

func (p Payload) JSON() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "unable to render workflow input")
	}
	return string(b), nil
}
