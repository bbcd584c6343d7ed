package pipeline

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Manifest is a printable description of a Plan. ARNs that only exist after deployment
// are shown as ${name.arn} placeholders.
type Manifest struct {
	Role         RoleManifest       `json:"role"`
	Policy       PolicyManifest     `json:"policy"`
	Layer        Layer              `json:"layer"`
	Functions    []FunctionManifest `json:"functions"`
	StateMachine WorkflowManifest   `json:"stateMachine"`
	Rule         RuleManifest       `json:"rule"`
}

type RoleManifest struct {
	Name              string   `json:"name"`
	Principals        []string `json:"principals"`
	ManagedPolicyARNs []string `json:"managedPolicyArns"`
}

type PolicyManifest struct {
	Name       string      `json:"name"`
	AllowAll   bool        `json:"allowAll"`
	Document   string      `json:"document"`
	Statements []Statement `json:"statements"`
}

type FunctionManifest struct {
	Name        string            `json:"name"`
	AssetPath   string            `json:"assetPath"`
	Handler     string            `json:"handler"`
	IndexFile   string            `json:"indexFile"`
	Runtime     string            `json:"runtime"`
	MemoryMB    int               `json:"memoryMb"`
	TimeoutSecs int               `json:"timeoutSeconds"`
	Role        string            `json:"role"`
	Layers      []string          `json:"layers"`
	Environment map[string]string `json:"environment,omitempty"`
}

type WorkflowManifest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Steps      []Step `json:"steps"`
	Definition string `json:"definition"`
}

type RuleManifest struct {
	Name       string  `json:"name"`
	Schedule   string  `json:"schedule"`
	NextFiring string  `json:"nextFiring,omitempty"`
	Target     string  `json:"target"`
	Input      Payload `json:"input"`
}

// Placeholder stands in for the ARN of a resource that has not been deployed.
func Placeholder(name string) string {
	return fmt.Sprintf("${%v.arn}", name)
}

// Manifest describes p as of now.
func (p *Plan) Manifest(now time.Time) (*Manifest, error) {
	policyDoc, err := p.Policy.Document()
	if err != nil {
		return nil, err
	}
	arns := make(map[string]string)
	var funcs []FunctionManifest
	for _, f := range p.Functions() {
		arns[f.Name] = Placeholder(f.Name)
		funcs = append(funcs, FunctionManifest{
			Name:        f.Name,
			AssetPath:   f.AssetPath,
			Handler:     f.Handler.String(),
			IndexFile:   f.Handler.IndexFile(),
			Runtime:     f.Runtime,
			MemoryMB:    f.MemoryMB,
			TimeoutSecs: f.TimeoutSeconds(),
			Role:        f.Role,
			Layers:      f.Layers,
			Environment: f.Environment,
		})
	}
	def, err := p.Workflow.Definition(arns)
	if err != nil {
		return nil, errors.Wrap(err, "unable to describe workflow")
	}
	rule := RuleManifest{
		Name:     p.Rule.Name,
		Schedule: p.Rule.Cron.Expression(),
		Target:   p.Rule.Target,
		Input:    p.Rule.InputFor(Placeholder(p.Role.Name)),
	}
	if next, err := p.Rule.Cron.Next(now); err == nil {
		rule.NextFiring = next.Format(time.RFC3339)
	}
	return &Manifest{
		Role: RoleManifest{
			Name:              p.Role.Name,
			Principals:        p.Role.Principals,
			ManagedPolicyARNs: p.Role.ManagedPolicyARNs(PartitionForRegion(p.Deployment.Region)),
		},
		Policy: PolicyManifest{
			Name:       p.Policy.Name,
			AllowAll:   p.Policy.IsAllowAll(),
			Document:   policyDoc,
			Statements: p.Policy.Statements,
		},
		Layer:     p.Layer,
		Functions: funcs,
		StateMachine: WorkflowManifest{
			Name:       p.Workflow.Name,
			Role:       p.Workflow.Role,
			Steps:      p.Workflow.Steps[:],
			Definition: def,
		},
		Rule: rule,
	}, nil
}
