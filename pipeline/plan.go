package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
)

// Plan is the complete resource graph for one deployment.
type Plan struct {
	Deployment config.Deployment
	Role       Role
	Policy     Policy
	Layer      Layer
	Importer   Function
	Exporter   Function
	Workflow   Workflow
	Rule       ScheduleRule
}

// NewPlan builds the graph from d. It does not require d to be complete: missing values are
// carried through as empty strings so the graph can still be described. Malformed handler
// strings are rejected. The importer handler may name a nested module and is passed through as given.
func NewPlan(d config.Deployment) (*Plan, error) {
	d.ApplyDefaults()
	importerHandler, err := ParseHandlerPath(d.ImporterHandler)
	if err != nil {
		return nil, errors.Wrap(err, "importer")
	}
	exporterHandler, err := ParseHandler(d.ExporterHandler)
	if err != nil {
		return nil, errors.Wrap(err, "exporter")
	}
	p := &Plan{
		Deployment: d,
		Role:       NewAccessRole(),
		Policy:     NewAllowAllPolicy(),
	}
	p.Layer = Layer{
		Name:               constants.LayerName,
		AssetPath:          d.LayerAssetPath(),
		CompatibleRuntimes: []string{constants.LambdaRuntime},
	}
	p.Importer = p.newFunction(constants.ImporterFunctionName, importerHandler, nil)
	p.Exporter = p.newFunction(constants.ExporterFunctionName, exporterHandler, map[string]string{
		constants.ExporterEnvQueryFile:   d.QueryFileKey,
		constants.ExporterEnvSecretName:  d.SecretName,
		constants.ExporterEnvWorkspaceID: d.SnowflakeWorkspaceID,
	})
	p.Workflow = NewWorkflow(p.Role.Name, p.Exporter, p.Importer)
	p.Rule = NewScheduleRule(p.Workflow, NewPayload(d))
	return p, nil
}

func (p *Plan) newFunction(name string, h Handler, env map[string]string) Function {
	return Function{
		Name:        name,
		AssetPath:   p.Deployment.LambdaAssetPath(),
		Handler:     h,
		Runtime:     constants.LambdaRuntime,
		MemoryMB:    constants.LambdaMemoryMB,
		Timeout:     constants.LambdaTimeoutMinutes * time.Minute,
		Role:        p.Role.Name,
		Layers:      []string{p.Layer.Name},
		Environment: env,
	}
}

// Functions returns the functions in workflow order.
func (p *Plan) Functions() []Function {
	return []Function{p.Exporter, p.Importer}
}
