package pipeline

import (
	"time"
)

// Layer is an immutable dependency bundle shared by reference.
type Layer struct {
	Name               string   `json:"name"`
	AssetPath          string   `json:"assetPath"`
	CompatibleRuntimes []string `json:"compatibleRuntimes"`
}

// Function is a packaged unit of handler code. Role and Layers hold the names of the
// shared Role and Layer it is attached to.
type Function struct {
	Name        string
	AssetPath   string
	Handler     Handler
	Runtime     string
	MemoryMB    int
	Timeout     time.Duration
	Role        string
	Layers      []string
	Environment map[string]string
}

func (f Function) TimeoutSeconds() int {
	return int(f.Timeout / time.Second)
}
