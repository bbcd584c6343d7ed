package actions

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
)

var testLog = logger.NewLogger("actions-test", "error", false)

func testDeployment() config.Deployment {
	return config.Deployment{
		ImporterHandler:      "tm_importer.lambda_handler",
		ExporterHandler:      "snowflake_export.lambda_handler",
		QueryFileKey:         "query.sql",
		SecretName:           "sf-secret",
		OutputBucket:         "bucket",
		OutputPrefix:         "exports",
		SnowflakeWorkspaceID: "ws",
		ComponentTypeID:      "com.snowflake.connector",
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestRunSynthJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	err := RunSynth(testLog, &SynthConfig{Deployment: testDeployment(), Format: FormatJSON, Output: buf, Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	m := pipeline.Manifest{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("bad JSON output: %v", err)
	}
	if m.Rule.Schedule != "cron(39 * * * ? *)" {
		t.Fatalf("expected %q; got %q", "cron(39 * * * ? *)", m.Rule.Schedule)
	}
	if m.Rule.NextFiring != "2024-03-01T10:39:00Z" {
		t.Fatalf("expected %q; got %q", "2024-03-01T10:39:00Z", m.Rule.NextFiring)
	}
}

func TestRunSynthYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	err := RunSynth(testLog, &SynthConfig{Deployment: config.Deployment{}, Format: FormatYAML, Output: buf, Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "cron(39 * * * ? *)") {
		t.Fatalf("expected schedule in YAML output; got %v", buf.String())
	}
}

func TestRunSynthBadFormat(t *testing.T) {
	err := RunSynth(testLog, &SynthConfig{Deployment: testDeployment(), Format: "xml", Output: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
