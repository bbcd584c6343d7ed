package constants

const (
	AppName               = "sfsync"
	EnvVarPrefix          = "SFSYNC" // prefixed for environment variables in twelveFactorMode
	TimeFormatYearSeconds = "20060102T150405"
	EmojiBang             = "\U0001F4A5"
	DefaultStackName      = "dev"
	DefaultAssetRoot      = "."
)

// Logical resource names. These match the names used by earlier deployments of the connector
// so that stacks can be compared side by side.
const (
	RoleName             = "iottwinmaker_connector_role"
	PolicyName           = "IoTTwinMakerFullAccessPolicy"
	LayerName            = "iottwinmaker_env"
	ImporterFunctionName = "iottwinmakerImporterLambda"
	ExporterFunctionName = "snowflake_exporter_lambda"
	ExportStateName      = "snowflake_export"
	ImportStateName      = "snowflake_import"
	StateMachineName     = "snowflake_to_iottwinmaker"
	RuleName             = "snowflake_load_sfn_s3_trigger"
	RuleTargetName       = RuleName + "_target"
	PolicyAttachmentName = PolicyName + "_attachment"
)

// Asset directories, relative to the asset root.
const (
	LayerAssetDir  = "snowflake-python-and-boto3"
	LambdaAssetDir = "sync-connector-lambda"
)

const (
	LambdaRuntime        = "python3.8"
	LambdaMemoryMB       = 256
	LambdaTimeoutMinutes = 15
	ScheduleMinute       = "39"
	LambdaInvokeResource = "arn:aws:states:::lambda:invoke"
)

// Environment variables handed to the exporter function.
const (
	ExporterEnvQueryFile   = "S3_QUERY_FILE"
	ExporterEnvSecretName  = "SECRET_MANAGER_SECRET"
	ExporterEnvWorkspaceID = "WORKSPACE_ID"
)

// Stack output names.
const (
	OutputRoleArn          = "roleArn"
	OutputStateMachineArn  = "stateMachineArn"
	OutputExporterFunction = "exporterFunction"
	OutputImporterFunction = "importerFunction"
	OutputRuleName         = "ruleName"
)

// Keys expected in the Secrets Manager secret holding Snowflake credentials.
const (
	SnowflakeSecretKeyAccount   = "ACCOUNT"
	SnowflakeSecretKeyUser      = "USER"
	SnowflakeSecretKeyPassword  = "PASSWORD"
	SnowflakeSecretKeyRole      = "ROLE"
	SnowflakeSecretKeyWarehouse = "WAREHOUSE"
	SnowflakeSecretKeyDatabase  = "DATABASE"
	SnowflakeSecretKeySchema    = "SCHEMA"
)
