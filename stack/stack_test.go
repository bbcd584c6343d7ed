package stack

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
)

const (
	typeRole         = "aws:iam/role:Role"
	typePolicy       = "aws:iam/policy:Policy"
	typeAttachment   = "aws:iam/rolePolicyAttachment:RolePolicyAttachment"
	typeLayer        = "aws:lambda/layerVersion:LayerVersion"
	typeFunction     = "aws:lambda/function:Function"
	typeStateMachine = "aws:sfn/stateMachine:StateMachine"
	typeRule         = "aws:cloudwatch/eventRule:EventRule"
	typeTarget       = "aws:cloudwatch/eventTarget:EventTarget"
	typeProvider     = "pulumi:providers:aws"

	tokenGetPartition = "aws:index/getPartition:getPartition"
)

type declared struct {
	typ    string
	name   string
	inputs map[string]interface{}
}

// mocks records every registered resource and echoes its inputs back with a fake ARN.
type mocks struct {
	mu        sync.Mutex
	resources []declared
	partition string
}

func (m *mocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	inputs := args.Inputs.Mappable()
	m.mu.Lock()
	m.resources = append(m.resources, declared{typ: args.TypeToken, name: args.Name, inputs: inputs})
	m.mu.Unlock()
	outputs := args.Inputs.Copy()
	outputs["arn"] = resource.NewStringProperty(mockARN(args.Name))
	if _, ok := outputs["name"]; !ok {
		outputs["name"] = resource.NewStringProperty(args.Name)
	}
	return args.Name + "_id", outputs, nil
}

func (m *mocks) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	if args.Token == tokenGetPartition {
		partition := m.partition
		if partition == "" {
			partition = "aws"
		}
		return resource.PropertyMap{
			"id":        resource.NewStringProperty(partition),
			"partition": resource.NewStringProperty(partition),
			"dnsSuffix": resource.NewStringProperty("amazonaws.com"),
		}, nil
	}
	return resource.PropertyMap{}, nil
}

func (m *mocks) provider() (declared, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resources {
		if r.typ == typeProvider {
			return r, true
		}
	}
	return declared{}, false
}

func (m *mocks) awsResources() []declared {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []declared
	for _, r := range m.resources {
		if strings.HasPrefix(r.typ, "aws:") {
			out = append(out, r)
		}
	}
	return out
}

func (m *mocks) byType(typ string) []declared {
	var out []declared
	for _, r := range m.awsResources() {
		if r.typ == typ {
			out = append(out, r)
		}
	}
	return out
}

func (m *mocks) byName(name string) declared {
	for _, r := range m.awsResources() {
		if r.name == name {
			return r
		}
	}
	return declared{}
}

func mockARN(name string) string {
	return "arn:aws:mock:::" + name
}

func testLogger() logger.Logger {
	return logger.NewLogger("stack-test", "error", false)
}

// testPlan builds a plan whose asset directories exist.
func testPlan(t *testing.T, d config.Deployment) *pipeline.Plan {
	t.Helper()
	d.AssetRoot = t.TempDir()
	for _, dir := range []string{constants.LayerAssetDir, constants.LambdaAssetDir} {
		p := filepath.Join(d.AssetRoot, dir)
		if err := os.MkdirAll(p, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(p, "placeholder.py"), []byte("# test\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	plan, err := pipeline.NewPlan(d)
	if err != nil {
		t.Fatal(err)
	}
	return plan
}

func fullDeployment() config.Deployment {
	return config.Deployment{
		ImporterHandler:      "tm_importer.lambda_handler",
		ExporterHandler:      "snowflake_export.lambda_handler",
		QueryFileKey:         "query.sql",
		SecretName:           "sf-secret",
		OutputBucket:         "bucket",
		OutputPrefix:         "exports/",
		SnowflakeWorkspaceID: "ws",
		ComponentTypeID:      "com.snowflake.connector",
	}
}

func run(t *testing.T, plan *pipeline.Plan) *mocks {
	t.Helper()
	return runIn(t, plan, "")
}

func runIn(t *testing.T, plan *pipeline.Plan, partition string) *mocks {
	t.Helper()
	m := &mocks{partition: partition}
	err := pulumi.RunErr(Program(plan, testLogger()), pulumi.WithMocks("sfsync", "test", m))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestEmptyStack(t *testing.T) {
	m := run(t, nil)
	if got := len(m.awsResources()); got != 0 {
		t.Fatalf("expected 0 resources; got %v", got)
	}
}

func TestResourceCounts(t *testing.T) {
	m := run(t, testPlan(t, fullDeployment()))
	expected := map[string]int{
		typeRole:         1,
		typePolicy:       1,
		typeAttachment:   1,
		typeLayer:        1,
		typeFunction:     2,
		typeStateMachine: 1,
		typeRule:         1,
		typeTarget:       1,
	}
	total := 0
	for typ, n := range expected {
		if got := len(m.byType(typ)); got != n {
			t.Fatalf("expected %v resources of type %v; got %v", n, typ, got)
		}
		total += n
	}
	if got := len(m.awsResources()); got != total {
		t.Fatalf("expected %v resources; got %v", total, got)
	}
}

func TestZeroDeploymentDeclaresEverything(t *testing.T) {
	m := run(t, testPlan(t, config.Deployment{}))
	if got := len(m.awsResources()); got != 9 {
		t.Fatalf("expected 9 resources; got %v", got)
	}
}

func TestFunctionsShareRoleAndLayer(t *testing.T) {
	m := run(t, testPlan(t, fullDeployment()))
	roleARN := mockARN(constants.RoleName)
	layerARN := mockARN(constants.LayerName)
	for _, f := range m.byType(typeFunction) {
		if f.inputs["role"] != roleARN {
			t.Fatalf("function %v: expected role %q; got %v", f.name, roleARN, f.inputs["role"])
		}
		layers, _ := f.inputs["layers"].([]interface{})
		if len(layers) != 1 || layers[0] != layerARN {
			t.Fatalf("function %v: expected layers [%v]; got %v", f.name, layerARN, layers)
		}
		if f.inputs["memorySize"] != float64(256) {
			t.Fatalf("function %v: expected memory 256; got %v", f.name, f.inputs["memorySize"])
		}
		if f.inputs["timeout"] != float64(900) {
			t.Fatalf("function %v: expected timeout 900; got %v", f.name, f.inputs["timeout"])
		}
		if f.inputs["runtime"] != "python3.8" {
			t.Fatalf("function %v: expected python3.8; got %v", f.name, f.inputs["runtime"])
		}
	}
	exporter := m.byName(constants.ExporterFunctionName)
	if exporter.inputs["handler"] != "snowflake_export.lambda_handler" {
		t.Fatalf("expected %q; got %v", "snowflake_export.lambda_handler", exporter.inputs["handler"])
	}
	env, _ := exporter.inputs["environment"].(map[string]interface{})
	vars, _ := env["variables"].(map[string]interface{})
	if vars["S3_QUERY_FILE"] != "query.sql" || vars["SECRET_MANAGER_SECRET"] != "sf-secret" || vars["WORKSPACE_ID"] != "ws" {
		t.Fatalf("unexpected exporter environment %v", vars)
	}
	attachment := m.byType(typeAttachment)[0]
	if attachment.inputs["policyArn"] != mockARN(constants.PolicyName) {
		t.Fatalf("expected policy %q; got %v", mockARN(constants.PolicyName), attachment.inputs["policyArn"])
	}
}

func TestStateMachineDefinition(t *testing.T) {
	m := run(t, testPlan(t, fullDeployment()))
	sm := m.byType(typeStateMachine)[0]
	if sm.inputs["roleArn"] != mockARN(constants.RoleName) {
		t.Fatalf("expected role %q; got %v", mockARN(constants.RoleName), sm.inputs["roleArn"])
	}
	def, _ := sm.inputs["definition"].(string)
	var parsed struct {
		StartAt string
		States  map[string]struct {
			Parameters map[string]string
			Next       string
			End        bool
		}
	}
	if err := json.Unmarshal([]byte(def), &parsed); err != nil {
		t.Fatalf("bad definition %q: %v", def, err)
	}
	if parsed.StartAt != constants.ExportStateName {
		t.Fatalf("expected %q; got %q", constants.ExportStateName, parsed.StartAt)
	}
	export := parsed.States[constants.ExportStateName]
	if export.Parameters["FunctionName"] != mockARN(constants.ExporterFunctionName) || export.Next != constants.ImportStateName {
		t.Fatalf("unexpected export state %+v", export)
	}
	imp := parsed.States[constants.ImportStateName]
	if imp.Parameters["FunctionName"] != mockARN(constants.ImporterFunctionName) || !imp.End {
		t.Fatalf("unexpected import state %+v", imp)
	}
}

func TestRuleTargetInput(t *testing.T) {
	m := run(t, testPlan(t, fullDeployment()))
	rule := m.byType(typeRule)[0]
	if rule.inputs["scheduleExpression"] != "cron(39 * * * ? *)" {
		t.Fatalf("expected %q; got %v", "cron(39 * * * ? *)", rule.inputs["scheduleExpression"])
	}
	target := m.byType(typeTarget)[0]
	if target.inputs["arn"] != mockARN(constants.StateMachineName) {
		t.Fatalf("expected target %q; got %v", mockARN(constants.StateMachineName), target.inputs["arn"])
	}
	if target.inputs["rule"] != constants.RuleName {
		t.Fatalf("expected rule %q; got %v", constants.RuleName, target.inputs["rule"])
	}
	input, _ := target.inputs["input"].(string)
	var payload map[string]string
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		t.Fatalf("bad input %q: %v", input, err)
	}
	if len(payload) != 7 {
		t.Fatalf("expected 7 keys; got %v", len(payload))
	}
	if payload["iottwinmakerRoleArn"] != mockARN(constants.RoleName) {
		t.Fatalf("expected %q; got %q", mockARN(constants.RoleName), payload["iottwinmakerRoleArn"])
	}
	if payload["componentTypeId"] != "com.snowflake.connector" || payload["bucket"] != "bucket" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestProviderRegion(t *testing.T) {
	d := fullDeployment()
	d.Region = "eu-west-1"
	m := run(t, testPlan(t, d))
	p, ok := m.provider()
	if !ok {
		t.Fatal("expected an explicit aws provider")
	}
	if p.inputs["region"] != "eu-west-1" {
		t.Fatalf("expected provider region %q; got %v", "eu-west-1", p.inputs["region"])
	}
}

func TestProviderRegionUnset(t *testing.T) {
	m := run(t, testPlan(t, fullDeployment()))
	p, ok := m.provider()
	if !ok {
		t.Fatal("expected an explicit aws provider")
	}
	if r, set := p.inputs["region"]; set && r != "" {
		t.Fatalf("expected no provider region; got %v", r)
	}
}

func TestManagedPolicyPartition(t *testing.T) {
	for _, partition := range []string{"aws", "aws-cn"} {
		m := runIn(t, testPlan(t, fullDeployment()), partition)
		role := m.byType(typeRole)[0]
		arns, _ := role.inputs["managedPolicyArns"].([]interface{})
		if len(arns) != 4 {
			t.Fatalf("partition %v: expected 4 managed policies; got %v", partition, arns)
		}
		prefix := "arn:" + partition + ":iam::aws:policy/"
		for _, a := range arns {
			s, _ := a.(string)
			if !strings.HasPrefix(s, prefix) {
				t.Fatalf("partition %v: expected prefix %q; got %q", partition, prefix, s)
			}
		}
	}
}

func TestImporterHandlerPassthrough(t *testing.T) {
	d := fullDeployment()
	d.ImporterHandler = "handlers.tm_importer.import_handler"
	m := run(t, testPlan(t, d))
	importer := m.byName(constants.ImporterFunctionName)
	if importer.inputs["handler"] != d.ImporterHandler {
		t.Fatalf("expected %q; got %v", d.ImporterHandler, importer.inputs["handler"])
	}
}
