package pipeline

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/constants"
)

const (
	stateTypeTask      = "Task"
	exportOutputPath   = "$.Payload"
	paramFunctionName  = "FunctionName"
	paramPayloadFromIn = "Payload.$"
	wholeInputPath     = "$"
)

// Step invokes one function. OutputPath, when set, selects the part of the invocation result
// that becomes the input of the next step.
type Step struct {
	Name       string `json:"name"`
	Function   string `json:"function"`
	OutputPath string `json:"outputPath,omitempty"`
}

// Workflow is the fixed export then import chain. The array type keeps it at exactly two steps:
// Steps[0] runs first and its payload is the whole input of Steps[1].
// No retry or catch is declared, so a failing step fails the execution.
type Workflow struct {
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Steps [2]Step `json:"steps"`
}

func NewWorkflow(roleName string, exporter, importer Function) Workflow {
	return Workflow{
		Name: constants.StateMachineName,
		Role: roleName,
		Steps: [2]Step{
			{Name: constants.ExportStateName, Function: exporter.Name, OutputPath: exportOutputPath},
			{Name: constants.ImportStateName, Function: importer.Name},
		},
	}
}

// Definition renders the Amazon States Language document, given the ARN of each step's function
// keyed by function name.
func (w Workflow) Definition(functionARNs map[string]string) (string, error) {
	def := stateMachineDefinition{
		StartAt: w.Steps[0].Name,
		States:  make(map[string]taskState, len(w.Steps)),
	}
	for i, s := range w.Steps {
		arn, ok := functionARNs[s.Function]
		if !ok || arn == "" {
			return "", errors.Errorf("missing ARN for function %v used by state %v", s.Function, s.Name)
		}
		state := taskState{
			Type:     stateTypeTask,
			Resource: constants.LambdaInvokeResource,
			Parameters: map[string]string{
				paramFunctionName:  arn,
				paramPayloadFromIn: wholeInputPath,
			},
			OutputPath: s.OutputPath,
		}
		if i < len(w.Steps)-1 {
			state.Next = w.Steps[i+1].Name
		} else {
			state.End = true
		}
		def.States[s.Name] = state
	}
	b, err := json.Marshal(def)
	if err != nil {
		return "", errors.Wrapf(err, "unable to render definition for %v", w.Name)
	}
	return string(b), nil
}

type stateMachineDefinition struct {
	StartAt string               `json:"StartAt"`
	States  map[string]taskState `json:"States"`
}

type taskState struct {
	Type       string            `json:"Type"`
	Resource   string            `json:"Resource"`
	Parameters map[string]string `json:"Parameters"`
	OutputPath string            `json:"OutputPath,omitempty"`
	Next       string            `json:"Next,omitempty"`
	End        bool              `json:"End,omitempty"`
}
