package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/constants"
)

const (
	iamPolicyVersion = "2012-10-17"
	defaultPartition = "aws"
)

// Services that assume the access role.
var ServicePrincipals = []string{
	"lambda.amazonaws.com",
	"states.amazonaws.com",
	"events.amazonaws.com",
	"iottwinmaker.amazonaws.com",
}

// AWS managed policies attached to the access role.
var ManagedPolicies = []string{
	"AmazonS3FullAccess",
	"CloudWatchLogsFullAccess",
	"AWSStepFunctionsReadOnlyAccess",
	"SecretsManagerReadWrite",
}

// Capability is an IAM action pattern.
type Capability string

// AllowAll grants every action. The connector's policy is deliberately this broad;
// listing it as a capability keeps the breadth visible in synth output and tests.
const AllowAll Capability = "*"

type Effect string

const EffectAllow Effect = "Allow"

var ErrEmptyPolicy = errors.New("policy must have at least one statement")

// Role is the single execution identity shared by every resource in the plan.
// Managed policies are held by name; their ARNs depend on the partition the role lands in.
type Role struct {
	Name            string   `json:"name"`
	Principals      []string `json:"principals"`
	ManagedPolicies []string `json:"managedPolicies"`
}

func NewAccessRole() Role {
	return Role{
		Name:            constants.RoleName,
		Principals:      append([]string(nil), ServicePrincipals...),
		ManagedPolicies: append([]string(nil), ManagedPolicies...),
	}
}

// ManagedPolicyARNs returns the ARNs of the role's AWS managed policies in partition.
// An empty partition means the commercial "aws" partition.
func (r Role) ManagedPolicyARNs(partition string) []string {
	if partition == "" {
		partition = defaultPartition
	}
	arns := make([]string, 0, len(r.ManagedPolicies))
	for _, p := range r.ManagedPolicies {
		arns = append(arns, fmt.Sprintf("arn:%v:iam::aws:policy/%v", partition, p))
	}
	return arns
}

// PartitionForRegion guesses the partition of region from its prefix.
// The deployed stack asks the provider instead; this is only used to describe a plan offline.
func PartitionForRegion(region string) string {
	switch {
	case strings.HasPrefix(region, "cn-"):
		return "aws-cn"
	case strings.HasPrefix(region, "us-gov-"):
		return "aws-us-gov"
	case strings.HasPrefix(region, "us-iso-"):
		return "aws-iso"
	case strings.HasPrefix(region, "us-isob-"):
		return "aws-iso-b"
	}
	return defaultPartition
}

// AssumeRolePolicy renders the trust policy that lets every principal assume the role.
func (r Role) AssumeRolePolicy() (string, error) {
	doc := policyDocument{
		Version: iamPolicyVersion,
		Statement: []policyStatement{{
			Effect:    EffectAllow,
			Principal: map[string][]string{"Service": r.Principals},
			Action:    []string{"sts:AssumeRole"},
		}},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "unable to render assume role policy")
	}
	return string(b), nil
}

type Statement struct {
	Effect       Effect       `json:"effect"`
	Capabilities []Capability `json:"capabilities"`
	Resources    []string     `json:"resources"`
}

// Policy is a customer managed policy attached to the access role only.
type Policy struct {
	Name       string      `json:"name"`
	Statements []Statement `json:"statements"`
}

func NewAllowAllPolicy() Policy {
	return Policy{
		Name: constants.PolicyName,
		Statements: []Statement{{
			Effect:       EffectAllow,
			Capabilities: []Capability{AllowAll},
			Resources:    []string{"*"},
		}},
	}
}

func (p Policy) Validate() error {
	if len(p.Statements) == 0 {
		return errors.Wrapf(ErrEmptyPolicy, "policy %v", p.Name)
	}
	for i, s := range p.Statements {
		if len(s.Capabilities) == 0 || len(s.Resources) == 0 {
			return errors.Errorf("policy %v statement %v needs capabilities and resources", p.Name, i)
		}
	}
	return nil
}

// IsAllowAll reports whether any statement allows every action on every resource.
func (p Policy) IsAllowAll() bool {
	for _, s := range p.Statements {
		if s.Effect != EffectAllow {
			continue
		}
		if containsCapability(s.Capabilities, AllowAll) && containsString(s.Resources, "*") {
			return true
		}
	}
	return false
}

// Document renders the IAM JSON policy document.
func (p Policy) Document() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	doc := policyDocument{Version: iamPolicyVersion}
	for _, s := range p.Statements {
		actions := make([]string, 0, len(s.Capabilities))
		for _, c := range s.Capabilities {
			actions = append(actions, string(c))
		}
		doc.Statement = append(doc.Statement, policyStatement{
			Effect:   s.Effect,
			Action:   actions,
			Resource: s.Resources,
		})
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrapf(err, "unable to render policy %v", p.Name)
	}
	return string(b), nil
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    Effect              `json:"Effect"`
	Principal map[string][]string `json:"Principal,omitempty"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource,omitempty"`
}

func containsCapability(l []Capability, c Capability) bool {
	for _, v := range l {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
