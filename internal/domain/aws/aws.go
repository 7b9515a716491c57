// Where: cli/internal/domain/aws/aws.go
// What: AWS Lambda + S3/S3 Tables SAM template generation.
// Why: Turn validated arguments into a deterministic template.yaml.
package aws

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/domain/names"
	"github.com/otlp2parquet/cli/internal/domain/pipeline"
	"github.com/otlp2parquet/cli/internal/domain/template"
	"github.com/otlp2parquet/cli/internal/meta"
)

// Platform is the name used in messages and dispatch.
const Platform = string(names.AWS)

const (
	StorageS3       = "s3"
	StorageS3Tables = "s3tables"

	ArchARM64 = "arm64"
	ArchX8664 = "x86_64"

	AuthIAM  = "AWS_IAM"
	AuthNone = "NONE"

	DefaultRegion           = "us-east-1"
	DefaultMemorySize       = 512
	DefaultTimeout          = 30
	DefaultLogRetentionDays = 14
	DefaultCodeURI          = "target/lambda/otlp2parquet/"

	handler = "bootstrap"
	runtime = "provided.al2023"
)

var (
	regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d{1,2}$`)

	// CloudWatch Logs only accepts these retention periods.
	retentionDays = []int{
		1, 3, 5, 7, 14, 30, 60, 90, 120, 150, 180, 365, 400, 545,
		731, 1096, 1827, 2192, 2557, 2922, 3288, 3653,
	}
)

// Args is the fully resolved input for the AWS generator.
type Args struct {
	StackName        string
	Bucket           string
	Storage          string
	TableBucket      string
	Namespace        string
	Region           string
	Architecture     string
	MemorySize       int
	Timeout          int
	CodeURI          string
	FunctionURL      bool
	AuthType         string
	LogRetentionDays int
	Pipeline         pipeline.Settings
	Output           string
	Force            bool
}

// WithDefaults fills optional fields that were left empty. Region is left
// alone; callers resolve it from the environment first.
func (a Args) WithDefaults() Args {
	a.StackName = strings.TrimSpace(a.StackName)
	a.Storage = strings.ToLower(strings.TrimSpace(a.Storage))
	if a.Storage == "" {
		a.Storage = StorageS3
	}
	a.Bucket = strings.TrimSpace(a.Bucket)
	a.TableBucket = strings.TrimSpace(a.TableBucket)
	a.Namespace = strings.TrimSpace(a.Namespace)
	if a.StackName != "" {
		if a.Bucket == "" {
			a.Bucket = a.StackName + "-data"
		}
		if a.TableBucket == "" {
			a.TableBucket = a.StackName + "-tables"
		}
		if a.Namespace == "" {
			a.Namespace = a.StackName
		}
	}
	a.Region = strings.ToLower(strings.TrimSpace(a.Region))
	if a.Region == "" {
		a.Region = DefaultRegion
	}
	a.Architecture = strings.ToLower(strings.TrimSpace(a.Architecture))
	if a.Architecture == "" {
		a.Architecture = ArchARM64
	}
	if a.MemorySize == 0 {
		a.MemorySize = DefaultMemorySize
	}
	if a.Timeout == 0 {
		a.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(a.CodeURI) == "" {
		a.CodeURI = DefaultCodeURI
	}
	a.AuthType = strings.ToUpper(strings.TrimSpace(a.AuthType))
	if a.AuthType == "" {
		a.AuthType = AuthIAM
	}
	if a.LogRetentionDays == 0 {
		a.LogRetentionDays = DefaultLogRetentionDays
	}
	if strings.TrimSpace(a.Output) == "" {
		a.Output = meta.SAMTemplateFileName
	}
	a.Pipeline = a.Pipeline.WithDefaults()
	return a
}

// ValidateRequired reports a missing required argument. It needs no
// defaults or environment lookups, so callers run it first.
func ValidateRequired(a Args) error {
	if strings.TrimSpace(a.StackName) == "" {
		return failure.WithHint(
			failure.Argumentf(Platform, "validate arguments", "--stack-name is required"),
			"pass --stack-name <name> or set %s", meta.CreateEnvPrefix+"_STACK_NAME",
		)
	}
	return nil
}

// Validate reports missing or malformed arguments as argument errors.
func Validate(a Args) error {
	if err := ValidateRequired(a); err != nil {
		return err
	}
	if a.Storage != StorageS3 && a.Storage != StorageS3Tables {
		return failure.Argumentf(Platform, "validate arguments",
			"--storage must be %q or %q, got %q", StorageS3, StorageS3Tables, a.Storage)
	}
	if !regionPattern.MatchString(a.Region) {
		return failure.Argumentf(Platform, "validate arguments",
			"--region %q is not a valid AWS region name", a.Region)
	}
	if a.Architecture != ArchARM64 && a.Architecture != ArchX8664 {
		return failure.Argumentf(Platform, "validate arguments",
			"--arch must be %q or %q, got %q", ArchARM64, ArchX8664, a.Architecture)
	}
	if a.MemorySize < 128 || a.MemorySize > 10240 {
		return failure.Argumentf(Platform, "validate arguments",
			"--memory must be between 128 and 10240 MB, got %d", a.MemorySize)
	}
	if a.Timeout < 1 || a.Timeout > 900 {
		return failure.Argumentf(Platform, "validate arguments",
			"--timeout must be between 1 and 900 seconds, got %d", a.Timeout)
	}
	if a.AuthType != AuthIAM && a.AuthType != AuthNone {
		return failure.Argumentf(Platform, "validate arguments",
			"--auth-type must be %q or %q, got %q", AuthIAM, AuthNone, a.AuthType)
	}
	if !containsInt(retentionDays, a.LogRetentionDays) {
		return failure.WithHint(
			failure.Argumentf(Platform, "validate arguments",
				"--log-retention %d is not a CloudWatch retention period", a.LogRetentionDays),
			"allowed values: %s", joinInts(retentionDays),
		)
	}
	if err := a.Pipeline.Validate(); err != nil {
		return failure.Argument(Platform, "validate arguments", err)
	}
	return nil
}

// Plan holds the derived names and logical IDs for one template.
type Plan struct {
	Args Args

	Stack         string
	FunctionID    string
	FunctionName  string
	LogGroupID    string
	BucketID      string
	Bucket        string
	TableBucketID string
	TableBucket   string
	NamespaceID   string
	Namespace     string
}

// NewPlan derives every platform-constrained name from the arguments.
func NewPlan(a Args) (Plan, error) {
	stack, err := names.Derive(a.StackName, names.CloudFormationStack)
	if err != nil {
		return Plan{}, err
	}
	prefix, err := names.Derive(stack, names.LogicalID)
	if err != nil {
		return Plan{}, err
	}
	function, err := names.Derive(stack+"-ingest", names.LambdaFunction)
	if err != nil {
		return Plan{}, err
	}

	p := Plan{
		Args:         a,
		Stack:        stack,
		FunctionID:   prefix + "Function",
		FunctionName: function,
		LogGroupID:   prefix + "LogGroup",
	}

	switch a.Storage {
	case StorageS3Tables:
		if p.TableBucket, err = names.Derive(a.TableBucket, names.S3TableBucket); err != nil {
			return Plan{}, err
		}
		if p.Namespace, err = names.Derive(a.Namespace, names.S3TablesNamespace); err != nil {
			return Plan{}, err
		}
		p.TableBucketID = prefix + "TableBucket"
		p.NamespaceID = prefix + "Namespace"
	default:
		if p.Bucket, err = names.Derive(a.Bucket, names.S3Bucket); err != nil {
			return Plan{}, err
		}
		p.BucketID = prefix + "Bucket"
	}

	for _, id := range []string{p.FunctionID, p.LogGroupID, p.BucketID, p.TableBucketID, p.NamespaceID} {
		if id == "" {
			continue
		}
		if err := names.Check(id, names.LogicalID); err != nil {
			return Plan{}, failure.Name(Platform, "derive logical ids", err)
		}
	}
	return p, nil
}

// Env returns the function's environment variables sorted by name.
func (p Plan) Env() []template.EnvVar {
	extra := map[string]string{
		pipeline.Key("STORAGE"): StorageS3,
	}
	intrinsic := []template.EnvVar{
		{Name: pipeline.Key("S3_REGION"), Ref: "AWS::Region"},
	}
	if p.Args.Storage == StorageS3Tables {
		extra[pipeline.Key("CATALOG")] = StorageS3Tables
		extra[pipeline.Key("ICEBERG_NAMESPACE")] = p.Namespace
		intrinsic = append(intrinsic, template.EnvVar{
			Name:   pipeline.Key("S3TABLES_BUCKET_ARN"),
			GetAtt: []string{p.TableBucketID, "TableBucketARN"},
		})
	} else {
		intrinsic = append(intrinsic, template.EnvVar{
			Name: pipeline.Key("S3_BUCKET"),
			Ref:  p.BucketID,
		})
	}

	env := p.Args.Pipeline.Env(extra)
	vars := make([]template.EnvVar, 0, len(env)+len(intrinsic))
	for _, v := range env {
		vars = append(vars, template.EnvVar{Name: v.Name, Value: v.Value})
	}
	vars = append(vars, intrinsic...)
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// NextSteps lists the commands to run after the template is written.
func (p Plan) NextSteps() []string {
	return []string{
		"sam deploy --stack-name " + p.Stack + " --region " + p.Args.Region +
			" --capabilities CAPABILITY_IAM --resolve-s3",
	}
}

// Render produces the template.yaml bytes for the plan.
func Render(p Plan) ([]byte, error) {
	notes := []string{"", "Next steps:"}
	for _, step := range p.NextSteps() {
		notes = append(notes, "  "+step)
	}
	if p.Args.FunctionURL && p.Args.AuthType == AuthNone {
		notes = append(notes, "", "The function URL is public (--auth-type NONE).")
	}

	data := template.SAMData{
		Notes:       notes,
		Description: meta.AppName + " ingestion pipeline (" + p.Stack + ")",
		StackName:   p.Stack,
		Region:      p.Args.Region,
		Function: template.SAMFunction{
			LogicalID:    p.FunctionID,
			Name:         p.FunctionName,
			CodeURI:      p.Args.CodeURI,
			Handler:      handler,
			Runtime:      runtime,
			Architecture: p.Args.Architecture,
			MemorySize:   p.Args.MemorySize,
			Timeout:      p.Args.Timeout,
			Env:          p.Env(),
			FunctionURL:  p.Args.FunctionURL,
			AuthType:     p.Args.AuthType,
		},
		LogGroup: template.SAMLogGroup{
			LogicalID:     p.LogGroupID,
			Name:          "/aws/lambda/" + p.FunctionName,
			RetentionDays: p.Args.LogRetentionDays,
		},
	}
	if p.BucketID != "" {
		data.Bucket = &template.SAMBucket{LogicalID: p.BucketID, Name: p.Bucket}
	}
	if p.TableBucketID != "" {
		data.TableBucket = &template.SAMTableBucket{
			LogicalID:          p.TableBucketID,
			Name:               p.TableBucket,
			NamespaceLogicalID: p.NamespaceID,
			Namespace:          p.Namespace,
		}
	}

	doc, err := template.RenderSAM(data)
	if err != nil {
		return nil, failure.Generation(Platform, "render template.yaml", errors.Wrap(err, "template"))
	}
	return doc, nil
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
