//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package sfn

import (
	"context"
	"time"
)

// Execution status values reported by Step Functions.
const (
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusTimedOut  = "TIMED_OUT"
	StatusAborted   = "ABORTED"
)

// Execution is one run of a state machine.
type Execution struct {
	ARN       string    `json:"arn"`
	Name      string    `json:"name,omitempty"`
	Status    string    `json:"status,omitempty"`
	StartDate time.Time `json:"startDate"`
	StopDate  time.Time `json:"stopDate,omitempty"`
	Input     string    `json:"input,omitempty"`
	Output    string    `json:"output,omitempty"`
}

// IsTerminal reports whether the execution has stopped.
func (e Execution) IsTerminal() bool {
	switch e.Status {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return true
	}
	return false
}

type Client interface {
	Starter
	Describer
	Lister
}

type Starter interface {
	StartExecution(ctx context.Context, stateMachineARN, name, input string) (*Execution, error)
}

type Describer interface {
	DescribeExecution(ctx context.Context, executionARN string) (*Execution, error)
}

type Lister interface {
	// ListExecutions returns at most max executions, most recent first.
	ListExecutions(ctx context.Context, stateMachineARN string, max int) ([]Execution, error)
}
