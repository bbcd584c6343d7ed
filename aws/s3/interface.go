//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package s3

import (
	"context"
	"errors"
	"time"
)

var ErrKeyNotFound = errors.New("key not found")

// Object describes one exported file.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

type Client interface {
	Lister
	Getter
	BucketChecker
}

type Lister interface {
	// List returns every object whose key starts with the client prefix followed by key.
	List(ctx context.Context, key string) ([]Object, error)
}

type Getter interface {
	// Get returns ErrKeyNotFound if the given key doesn't exist.
	Get(ctx context.Context, key string) (data []byte, err error)
}

type BucketChecker interface {
	// BucketExists reports whether the bucket is reachable with the current credentials.
	BucketExists(ctx context.Context) (bool, error)
}
