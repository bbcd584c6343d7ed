package actions

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/aws/secrets"
	"github.com/relloyd/sfsync/aws/twinmaker"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
	"github.com/relloyd/sfsync/rdbms"
)

var ErrCheckFailed = errors.New("preflight checks failed")

type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

type CheckResult struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

type CheckReport struct {
	Results []CheckResult `json:"results"`
}

func (r *CheckReport) add(name string, status CheckStatus, format string, args ...interface{}) {
	r.Results = append(r.Results, CheckResult{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Failed reports whether any check failed. Warnings do not count.
func (r *CheckReport) Failed() bool {
	for _, c := range r.Results {
		if c.Status == CheckFail {
			return true
		}
	}
	return false
}

func (r *CheckReport) Get(name string) (CheckResult, bool) {
	for _, c := range r.Results {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// Check names.
const (
	CheckDeployment    = "config"
	CheckHandlers      = "handlers"
	CheckAssets        = "assets"
	CheckQueryFile     = "query-file"
	CheckSecret        = "secret"
	CheckSnowflake     = "snowflake"
	CheckQuery         = "query"
	CheckBucket        = "bucket"
	CheckWorkspace     = "workspace"
	CheckComponentType = "component-type"
)

type CheckConfig struct {
	Deployment config.Deployment
	Explain    bool // compile the query file in Snowflake
	Secrets    secrets.Getter
	Bucket     s3.BucketChecker
	TwinMaker  twinmaker.Checker
	Snowflake  SnowflakeProber
	Output     io.Writer
	Format     string
}

// RunCheck verifies that a deployment can work before the schedule fires.
// Every check runs even when an earlier one fails, except those that need an earlier result.
func RunCheck(ctx context.Context, log logger.Logger, cfg *CheckConfig) (*CheckReport, error) {
	r := &CheckReport{}
	d := cfg.Deployment
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		r.add(CheckDeployment, CheckFail, "%v", err)
	} else {
		r.add(CheckDeployment, CheckOK, "all values supplied")
	}
	plan, err := pipeline.NewPlan(d)
	if err != nil {
		r.add(CheckHandlers, CheckFail, "%v", err)
	} else {
		r.add(CheckHandlers, CheckOK, "exporter %v in %v, importer %v in %v",
			plan.Exporter.Handler.Callable, plan.Exporter.Handler.IndexFile(),
			plan.Importer.Handler.Callable, plan.Importer.Handler.IndexFile())
		checkAssets(r, plan)
	}
	query := checkQueryFile(r, d)
	creds := checkSecret(ctx, r, cfg.Secrets, d.SecretName)
	if creds != nil && cfg.Snowflake != nil {
		if version, err := cfg.Snowflake.Ping(ctx, creds); err != nil {
			r.add(CheckSnowflake, CheckFail, "%v", err)
		} else {
			r.add(CheckSnowflake, CheckOK, "connected as %v to %v (version %v)", creds.User, creds.Account, version)
			if cfg.Explain && query != "" {
				if explained, err := cfg.Snowflake.Explain(ctx, creds, query); err != nil {
					r.add(CheckQuery, CheckFail, "%v", err)
				} else {
					r.add(CheckQuery, CheckOK, "query compiles (%v plan rows)", explained.Rows)
				}
			}
		}
	}
	checkBucket(ctx, r, cfg.Bucket, d.OutputBucket)
	checkTwinMaker(ctx, r, cfg.TwinMaker, d.SnowflakeWorkspaceID, d.ComponentTypeID)
	if err := printCheckReport(outputOrStdout(cfg.Output), r, cfg.Format); err != nil {
		return r, err
	}
	if r.Failed() {
		log.Error(ErrCheckFailed)
		return r, ErrCheckFailed
	}
	return r, nil
}

func checkAssets(r *CheckReport, plan *pipeline.Plan) {
	var missing []string
	for _, p := range []string{plan.Layer.AssetPath, plan.Exporter.AssetPath} {
		if err := requireDir(p); err != nil {
			missing = append(missing, p)
		}
	}
	for _, f := range plan.Functions() {
		if f.Handler.IsZero() {
			continue
		}
		p := filepath.Join(f.AssetPath, f.Handler.IndexFile())
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		r.add(CheckAssets, CheckFail, "missing %v", missing)
		return
	}
	r.add(CheckAssets, CheckOK, "layer and function code found")
}

// checkQueryFile looks for the query file where the exporter opens it: relative to its code root.
func checkQueryFile(r *CheckReport, d config.Deployment) string {
	if d.QueryFileKey == "" {
		r.add(CheckQueryFile, CheckFail, "no query file configured")
		return ""
	}
	p := filepath.Join(d.LambdaAssetPath(), d.QueryFileKey)
	b, err := ioutil.ReadFile(p)
	if err != nil {
		r.add(CheckQueryFile, CheckFail, "%v", err)
		return ""
	}
	q := rdbms.PrepareQueryText(string(b))
	if q == "" {
		r.add(CheckQueryFile, CheckFail, "%v is empty", p)
		return ""
	}
	r.add(CheckQueryFile, CheckOK, "%v", p)
	return q
}

func checkSecret(ctx context.Context, r *CheckReport, g secrets.Getter, name string) *rdbms.SnowflakeConnectionDetails {
	if g == nil || name == "" {
		r.add(CheckSecret, CheckFail, "no secret configured")
		return nil
	}
	s, err := g.GetSecretString(ctx, name)
	if err != nil {
		r.add(CheckSecret, CheckFail, "%v", err)
		return nil
	}
	creds, err := rdbms.NewSnowflakeConnectionDetails(s)
	if err != nil {
		r.add(CheckSecret, CheckFail, "%v", err)
		return nil
	}
	r.add(CheckSecret, CheckOK, "%v holds %v", name, creds)
	return creds
}

func checkBucket(ctx context.Context, r *CheckReport, b s3.BucketChecker, name string) {
	if b == nil || name == "" {
		r.add(CheckBucket, CheckFail, "no output bucket configured")
		return
	}
	ok, err := b.BucketExists(ctx)
	switch {
	case err != nil:
		r.add(CheckBucket, CheckFail, "%v", err)
	case !ok:
		r.add(CheckBucket, CheckFail, "bucket %v does not exist", name)
	default:
		r.add(CheckBucket, CheckOK, "bucket %v reachable", name)
	}
}

// checkTwinMaker only warns: the importer creates what is missing.
func checkTwinMaker(ctx context.Context, r *CheckReport, c twinmaker.Checker, workspaceID, componentTypeID string) {
	if c == nil || workspaceID == "" {
		r.add(CheckWorkspace, CheckWarn, "no workspace configured")
		return
	}
	ok, err := c.WorkspaceExists(ctx, workspaceID)
	switch {
	case err != nil:
		r.add(CheckWorkspace, CheckFail, "%v", err)
		return
	case !ok:
		r.add(CheckWorkspace, CheckWarn, "workspace %v not found; the importer will create it", workspaceID)
		return
	}
	r.add(CheckWorkspace, CheckOK, "workspace %v found", workspaceID)
	if componentTypeID == "" {
		return
	}
	ok, err = c.ComponentTypeExists(ctx, workspaceID, componentTypeID)
	switch {
	case err != nil:
		r.add(CheckComponentType, CheckFail, "%v", err)
	case !ok:
		r.add(CheckComponentType, CheckWarn, "component type %v not found; the importer will create it", componentTypeID)
	default:
		r.add(CheckComponentType, CheckOK, "component type %v found", componentTypeID)
	}
}

func printCheckReport(w io.Writer, r *CheckReport, format string) error {
	if format != "" && format != FormatText {
		return writeOutput(w, r, format)
	}
	for _, c := range r.Results {
		mark := string(c.Status)
		if c.Status == CheckFail {
			mark = constants.EmojiBang + " " + mark
		}
		if _, err := fmt.Fprintf(w, "%-6v %-15v %v\n", mark, c.Name, c.Detail); err != nil {
			return err
		}
	}
	return nil
}
