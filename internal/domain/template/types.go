// Where: cli/internal/domain/template/types.go
// What: Render inputs for the generated deployment documents.
// Why: Keep document layout data independent from argument handling.
package template

// EnvVar is a runtime variable. Exactly one of Value, Ref, or GetAtt is used;
// Ref and GetAtt render as CloudFormation intrinsics.
type EnvVar struct {
	Name   string
	Value  string
	Ref    string
	GetAtt []string
}

// WranglerData describes a wrangler.toml document.
type WranglerData struct {
	Notes             []string
	WorkerName        string
	Main              string
	CompatibilityDate string
	AccountID         string
	Buckets           []R2Binding
	Vars              []EnvVar
}

// R2Binding binds an R2 bucket to a Worker variable.
type R2Binding struct {
	Binding      string
	BucketName   string
	Jurisdiction string
}

// SAMData describes a SAM template.yaml document.
type SAMData struct {
	Notes       []string
	Description string
	StackName   string
	Region      string
	Function    SAMFunction
	Bucket      *SAMBucket
	TableBucket *SAMTableBucket
	LogGroup    SAMLogGroup
}

// SAMFunction is the ingestion Lambda function.
type SAMFunction struct {
	LogicalID    string
	Name         string
	CodeURI      string
	Handler      string
	Runtime      string
	Architecture string
	MemorySize   int
	Timeout      int
	Env          []EnvVar
	FunctionURL  bool
	AuthType     string
}

// URLLogicalID is the logical ID SAM assigns to the function URL resource.
func (f SAMFunction) URLLogicalID() string {
	return f.LogicalID + "Url"
}

// SAMBucket is the S3 bucket receiving Parquet files.
type SAMBucket struct {
	LogicalID string
	Name      string
}

// SAMTableBucket is the S3 Tables bucket and namespace receiving Iceberg tables.
type SAMTableBucket struct {
	LogicalID          string
	Name               string
	NamespaceLogicalID string
	Namespace          string
}

// SAMLogGroup is the function's CloudWatch log group.
type SAMLogGroup struct {
	LogicalID     string
	Name          string
	RetentionDays int
}
