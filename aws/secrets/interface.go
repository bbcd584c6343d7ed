//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package secrets

import (
	"context"
	"errors"
)

var ErrSecretNotFound = errors.New("secret not found")

type Getter interface {
	// GetSecretString returns ErrSecretNotFound if no secret has the given name.
	GetSecretString(ctx context.Context, name string) (string, error)
}
