package actions

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/helper"
	"github.com/relloyd/sfsync/logger"
)

// Export is one file written by the exporter under <prefix>/<unix seconds>.json.
type Export struct {
	s3.Object
	ExportedAt *time.Time `json:"exportedAt,omitempty"`
}

// ExportTime recovers the export time from the object name, if it follows the exporter's naming.
func ExportTime(key string) (time.Time, bool) {
	base := strings.TrimSuffix(path.Base(key), ".json")
	if base == path.Base(key) {
		return time.Time{}, false
	}
	secs, err := strconv.ParseFloat(base, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	whole := int64(secs)
	nanos := int64((secs - float64(whole)) * 1e9)
	return time.Unix(whole, nanos).UTC(), true
}

type ExportsConfig struct {
	Bucket string `errorTxt:"output-bucket" mandatory:"yes"`
	Client s3.Lister
	Output io.Writer
	Format string
}

// RunListExports prints the exported files, newest first.
func RunListExports(ctx context.Context, log logger.Logger, cfg *ExportsConfig) ([]Export, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	objects, err := cfg.Client.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("unable to list exports in bucket %v: %w", cfg.Bucket, err)
	}
	exports := make([]Export, 0, len(objects))
	for _, o := range objects {
		e := Export{Object: o}
		if t, ok := ExportTime(o.Key); ok {
			e.ExportedAt = &t
		}
		exports = append(exports, e)
	}
	sort.SliceStable(exports, func(i, j int) bool {
		return exports[i].LastModified.After(exports[j].LastModified)
	})
	log.Debug("found ", len(exports), " exports in bucket ", cfg.Bucket)
	if cfg.Format == FormatText {
		w := outputOrStdout(cfg.Output)
		for _, e := range exports {
			fmt.Fprintf(w, "%v %10v %v\n", e.LastModified.Format(time.RFC3339), e.Size, e.Key)
		}
		return exports, nil
	}
	return exports, writeOutput(outputOrStdout(cfg.Output), exports, cfg.Format)
}

type ExportGetConfig struct {
	Key    string `errorTxt:"key" mandatory:"yes"`
	Client s3.Getter
	Output io.Writer
}

// RunGetExport copies one export to the output.
func RunGetExport(ctx context.Context, log logger.Logger, cfg *ExportGetConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	b, err := cfg.Client.Get(ctx, cfg.Key)
	if err != nil {
		return fmt.Errorf("unable to fetch export %v: %w", cfg.Key, err)
	}
	log.Debug("fetched ", len(b), " bytes from ", cfg.Key)
	_, err = outputOrStdout(cfg.Output).Write(b)
	return err
}
