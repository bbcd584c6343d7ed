package pipeline

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
)

func testDeployment() config.Deployment {
	return config.Deployment{
		ImporterHandler:      "importer.lambda_handler",
		ExporterHandler:      "exporter.lambda_handler",
		QueryFileKey:         "query.sql",
		SecretName:           "sf-secret",
		OutputBucket:         "bucket",
		OutputPrefix:         "exports/",
		SnowflakeWorkspaceID: "ws",
		ComponentTypeID:      "com.snowflake.connector",
		AssetRoot:            "assets",
	}
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan(testDeployment())
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range p.Functions() {
		if f.Role != p.Role.Name {
			t.Fatalf("function %v: expected role %q; got %q", f.Name, p.Role.Name, f.Role)
		}
		if len(f.Layers) != 1 || f.Layers[0] != p.Layer.Name {
			t.Fatalf("function %v: expected layer %q; got %v", f.Name, p.Layer.Name, f.Layers)
		}
		if f.MemoryMB != 256 {
			t.Fatalf("function %v: expected 256 MB; got %v", f.Name, f.MemoryMB)
		}
		if f.TimeoutSeconds() != 900 {
			t.Fatalf("function %v: expected 900s; got %v", f.Name, f.TimeoutSeconds())
		}
		if f.Runtime != "python3.8" {
			t.Fatalf("function %v: expected python3.8; got %v", f.Name, f.Runtime)
		}
		if f.AssetPath != filepath.Join("assets", constants.LambdaAssetDir) {
			t.Fatalf("function %v: unexpected asset path %q", f.Name, f.AssetPath)
		}
	}
	if p.Workflow.Role != p.Role.Name {
		t.Fatalf("expected workflow role %q; got %q", p.Role.Name, p.Workflow.Role)
	}
	if p.Workflow.Steps[0].Function != p.Exporter.Name || p.Workflow.Steps[1].Function != p.Importer.Name {
		t.Fatalf("expected export then import; got %+v", p.Workflow.Steps)
	}
	if p.Exporter.Handler.IndexFile() != "exporter.py" {
		t.Fatalf("expected %q; got %q", "exporter.py", p.Exporter.Handler.IndexFile())
	}
	env := p.Exporter.Environment
	if env["S3_QUERY_FILE"] != "query.sql" || env["SECRET_MANAGER_SECRET"] != "sf-secret" || env["WORKSPACE_ID"] != "ws" {
		t.Fatalf("unexpected exporter environment %v", env)
	}
	if len(p.Importer.Environment) != 0 {
		t.Fatalf("expected no importer environment; got %v", p.Importer.Environment)
	}
	if p.Rule.Cron.Expression() != "cron(39 * * * ? *)" {
		t.Fatalf("unexpected schedule %q", p.Rule.Cron.Expression())
	}
	if p.Rule.Input.Bucket != "bucket" || p.Rule.Input.WorkspaceID != "ws" {
		t.Fatalf("unexpected rule input %+v", p.Rule.Input)
	}
	if p.Layer.AssetPath != filepath.Join("assets", constants.LayerAssetDir) {
		t.Fatalf("unexpected layer asset path %q", p.Layer.AssetPath)
	}
}

func TestNewPlanZeroDeployment(t *testing.T) {
	p, err := NewPlan(config.Deployment{})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Exporter.Handler.IsZero() || !p.Importer.Handler.IsZero() {
		t.Fatal("expected zero handlers")
	}
	if p.Deployment.StackName != constants.DefaultStackName {
		t.Fatalf("expected %q; got %q", constants.DefaultStackName, p.Deployment.StackName)
	}
	if p.Layer.Name == "" || p.Workflow.Name == "" || p.Rule.Name == "" {
		t.Fatal("expected every resource to be described")
	}
}

func TestNewPlanBadHandler(t *testing.T) {
	d := testDeployment()
	d.ExporterHandler = "no_callable"
	if _, err := NewPlan(d); !errors.Is(err, ErrInvalidHandler) {
		t.Fatalf("expected ErrInvalidHandler; got %v", err)
	}
}

func TestNewPlanNestedImporterHandler(t *testing.T) {
	d := testDeployment()
	d.ImporterHandler = "handlers.tm_importer.import_handler"
	p, err := NewPlan(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Importer.Handler.String(); got != d.ImporterHandler {
		t.Fatalf("expected %q; got %q", d.ImporterHandler, got)
	}
	if got := p.Importer.Handler.IndexFile(); got != "handlers/tm_importer.py" {
		t.Fatalf("expected %q; got %q", "handlers/tm_importer.py", got)
	}
	// The exporter keeps the strict module.callable form.
	d.ExporterHandler = "handlers.snowflake_export.lambda_handler"
	if _, err := NewPlan(d); !errors.Is(err, ErrInvalidHandler) {
		t.Fatalf("expected ErrInvalidHandler; got %v", err)
	}
}

func TestManifestPartition(t *testing.T) {
	d := testDeployment()
	d.Region = "cn-north-1"
	p, err := NewPlan(d)
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Manifest(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for _, arn := range m.Role.ManagedPolicyARNs {
		if !strings.HasPrefix(arn, "arn:aws-cn:iam::aws:policy/") {
			t.Fatalf("expected aws-cn ARN; got %q", arn)
		}
	}
}

func TestManifest(t *testing.T) {
	p, err := NewPlan(testDeployment())
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Manifest(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if m.Rule.NextFiring != "2024-03-01T10:39:00Z" {
		t.Fatalf("expected %q; got %q", "2024-03-01T10:39:00Z", m.Rule.NextFiring)
	}
	if m.Rule.Input.IotTwinMakerRoleARN != Placeholder(constants.RoleName) {
		t.Fatalf("expected placeholder role ARN; got %q", m.Rule.Input.IotTwinMakerRoleARN)
	}
	if !m.Policy.AllowAll {
		t.Fatal("expected allow-all policy in manifest")
	}
	if len(m.Functions) != 2 || m.Functions[0].Name != constants.ExporterFunctionName {
		t.Fatalf("expected exporter first; got %+v", m.Functions)
	}
	if len(m.StateMachine.Steps) != 2 || m.StateMachine.Definition == "" {
		t.Fatalf("unexpected state machine %+v", m.StateMachine)
	}
}
