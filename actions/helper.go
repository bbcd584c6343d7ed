package actions

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/relloyd/sfsync/logger"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// writeOutput marshals v as JSON or YAML and writes it to f.
func writeOutput(f io.Writer, v interface{}, format string) error {
	var err error
	var data []byte
	switch strings.ToLower(format) {
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatJSON, "":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("unable to marshal output: %w", err)
	}
	_, err = f.Write(data)
	return err
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func getPrintLogFunc(log logger.Logger, w io.Writer, useStdOut bool) func(msg string) {
	return func(msg string) {
		if useStdOut {
			fmt.Fprintln(outputOrStdout(w), msg)
		} else {
			log.Info(msg)
		}
	}
}
