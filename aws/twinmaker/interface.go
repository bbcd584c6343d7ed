//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package twinmaker

import "context"

type Checker interface {
	WorkspaceExists(ctx context.Context, workspaceID string) (bool, error)
	ComponentTypeExists(ctx context.Context, workspaceID, componentTypeID string) (bool, error)
}
