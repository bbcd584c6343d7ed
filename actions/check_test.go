package actions

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	s3mocks "github.com/relloyd/sfsync/aws/s3/mocks"
	"github.com/relloyd/sfsync/aws/secrets"
	secretmocks "github.com/relloyd/sfsync/aws/secrets/mocks"
	tmmocks "github.com/relloyd/sfsync/aws/twinmaker/mocks"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/rdbms"
)

const testSecretJSON = `{"USER":"u","PASSWORD":"p","ACCOUNT":"acme","ROLE":"r","WAREHOUSE":"wh","DATABASE":"db","SCHEMA":"s"}`

type fakeProber struct {
	pingErr    error
	explainErr error
	explained  string
}

func (f *fakeProber) Ping(ctx context.Context, d *rdbms.SnowflakeConnectionDetails) (string, error) {
	return "8.0.0", f.pingErr
}

func (f *fakeProber) Explain(ctx context.Context, d *rdbms.SnowflakeConnectionDetails, query string) (*rdbms.RowCounter, error) {
	f.explained = query
	if f.explainErr != nil {
		return nil, f.explainErr
	}
	return &rdbms.RowCounter{Rows: 4}, nil
}

// writeAssets lays out the asset directories that d points at.
func writeAssets(t *testing.T, d *config.Deployment) {
	t.Helper()
	d.AssetRoot = t.TempDir()
	files := map[string]string{
		filepath.Join(constants.LayerAssetDir, "python", "requirements.txt"): "boto3\n",
		filepath.Join(constants.LambdaAssetDir, "snowflake_export.py"):      "def lambda_handler(e, c): pass\n",
		filepath.Join(constants.LambdaAssetDir, "tm_importer.py"):           "def lambda_handler(e, c): pass\n",
		filepath.Join(constants.LambdaAssetDir, "query.sql"):                "SELECT 1\nFROM dual\n",
	}
	for name, content := range files {
		p := filepath.Join(d.AssetRoot, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunCheckAllGood(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	d := testDeployment()
	writeAssets(t, &d)
	sec := secretmocks.NewMockGetter(ctrl)
	sec.EXPECT().GetSecretString(gomock.Any(), "sf-secret").Return(testSecretJSON, nil)
	bucket := s3mocks.NewMockBucketChecker(ctrl)
	bucket.EXPECT().BucketExists(gomock.Any()).Return(true, nil)
	tm := tmmocks.NewMockChecker(ctrl)
	tm.EXPECT().WorkspaceExists(gomock.Any(), "ws").Return(true, nil)
	tm.EXPECT().ComponentTypeExists(gomock.Any(), "ws", "com.snowflake.connector").Return(false, nil)
	prober := &fakeProber{}
	buf := &bytes.Buffer{}
	r, err := RunCheck(context.Background(), testLog, &CheckConfig{
		Deployment: d,
		Explain:    true,
		Secrets:    sec,
		Bucket:     bucket,
		TwinMaker:  tm,
		Snowflake:  prober,
		Output:     buf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\n%v", err, buf.String())
	}
	expected := map[string]CheckStatus{
		CheckDeployment:    CheckOK,
		CheckHandlers:      CheckOK,
		CheckAssets:        CheckOK,
		CheckQueryFile:     CheckOK,
		CheckSecret:        CheckOK,
		CheckSnowflake:     CheckOK,
		CheckQuery:         CheckOK,
		CheckBucket:        CheckOK,
		CheckWorkspace:     CheckOK,
		CheckComponentType: CheckWarn,
	}
	for name, status := range expected {
		got, ok := r.Get(name)
		if !ok {
			t.Fatalf("missing check %v", name)
		}
		if got.Status != status {
			t.Fatalf("check %v: expected %q; got %q (%v)", name, status, got.Status, got.Detail)
		}
	}
	if prober.explained != "SELECT 1FROM dual" {
		t.Fatalf("expected flattened query; got %q", prober.explained)
	}
	if strings.Contains(buf.String(), "p@") {
		t.Fatal("password leaked into check output")
	}
}

func TestRunCheckFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	d := testDeployment()
	d.AssetRoot = t.TempDir()
	d.ComponentTypeID = ""
	sec := secretmocks.NewMockGetter(ctrl)
	sec.EXPECT().GetSecretString(gomock.Any(), "sf-secret").Return("", secrets.ErrSecretNotFound)
	bucket := s3mocks.NewMockBucketChecker(ctrl)
	bucket.EXPECT().BucketExists(gomock.Any()).Return(false, nil)
	tm := tmmocks.NewMockChecker(ctrl)
	tm.EXPECT().WorkspaceExists(gomock.Any(), "ws").Return(false, nil)
	buf := &bytes.Buffer{}
	r, err := RunCheck(context.Background(), testLog, &CheckConfig{
		Deployment: d,
		Secrets:    sec,
		Bucket:     bucket,
		TwinMaker:  tm,
		Snowflake:  &fakeProber{},
		Output:     buf,
	})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed; got %v", err)
	}
	for _, name := range []string{CheckDeployment, CheckAssets, CheckQueryFile, CheckSecret, CheckBucket} {
		if got, _ := r.Get(name); got.Status != CheckFail {
			t.Fatalf("check %v: expected fail; got %q", name, got.Status)
		}
	}
	if _, ok := r.Get(CheckSnowflake); ok {
		t.Fatal("expected Snowflake check to be skipped without credentials")
	}
	if got, _ := r.Get(CheckWorkspace); got.Status != CheckWarn {
		t.Fatalf("expected missing workspace to warn; got %q", got.Status)
	}
	if !strings.Contains(buf.String(), constants.EmojiBang) {
		t.Fatalf("expected failures to be marked; got %v", buf.String())
	}
}

func TestRunCheckBadSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	d := testDeployment()
	writeAssets(t, &d)
	sec := secretmocks.NewMockGetter(ctrl)
	sec.EXPECT().GetSecretString(gomock.Any(), gomock.Any()).Return(`{"USER":"u"}`, nil)
	bucket := s3mocks.NewMockBucketChecker(ctrl)
	bucket.EXPECT().BucketExists(gomock.Any()).Return(true, nil)
	tm := tmmocks.NewMockChecker(ctrl)
	tm.EXPECT().WorkspaceExists(gomock.Any(), gomock.Any()).Return(true, nil)
	tm.EXPECT().ComponentTypeExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	r, err := RunCheck(context.Background(), testLog, &CheckConfig{
		Deployment: d, Secrets: sec, Bucket: bucket, TwinMaker: tm, Snowflake: &fakeProber{}, Output: &bytes.Buffer{}, Format: FormatJSON,
	})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed; got %v", err)
	}
	got, _ := r.Get(CheckSecret)
	if got.Status != CheckFail || !strings.Contains(got.Detail, "PASSWORD") {
		t.Fatalf("expected missing keys in secret check; got %+v", got)
	}
}
