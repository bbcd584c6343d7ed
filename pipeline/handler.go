package pipeline

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidHandler = errors.New("handler must be of the form <module>.<callable>")

// Handler is a function entry point of the form "module.callable".
type Handler struct {
	Module   string `json:"module"`
	Callable string `json:"callable"`
}

// ParseHandler splits s into module and callable.
// An empty string yields the zero Handler so that an unconfigured plan can still be described;
// presence is enforced by config.Deployment.Validate.
func ParseHandler(s string) (Handler, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Handler{}, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Handler{}, errors.Wrapf(ErrInvalidHandler, "bad handler %q", s)
	}
	return Handler{Module: parts[0], Callable: parts[1]}, nil
}

// ParseHandlerPath accepts a dotted module path such as "handlers.tm_importer.import_handler".
// The callable is whatever follows the last dot, so String returns s unchanged.
func ParseHandlerPath(s string) (Handler, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Handler{}, nil
	}
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return Handler{}, errors.Wrapf(ErrInvalidHandler, "bad handler %q", s)
	}
	for _, part := range strings.Split(s[:i], ".") {
		if part == "" {
			return Handler{}, errors.Wrapf(ErrInvalidHandler, "bad handler %q", s)
		}
	}
	return Handler{Module: s[:i], Callable: s[i+1:]}, nil
}

func (h Handler) IsZero() bool {
	return h.Module == "" && h.Callable == ""
}

func (h Handler) String() string {
	if h.IsZero() {
		return ""
	}
	return h.Module + "." + h.Callable
}

// IndexFile is the source file that holds the callable, relative to the function's asset dir.
func (h Handler) IndexFile() string {
	if h.Module == "" {
		return ""
	}
	return path.Join(strings.Split(h.Module, ".")...) + ".py"
}
