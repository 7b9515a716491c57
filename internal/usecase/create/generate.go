// Where: cli/internal/usecase/create/generate.go
// What: Per-platform generation pipelines.
// Why: Validate, derive, render, verify, then write, in that order, for both platforms.
package create

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/otlp2parquet/cli/internal/domain/aws"
	"github.com/otlp2parquet/cli/internal/domain/cloudflare"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/infra/awsregion"
	"github.com/otlp2parquet/cli/internal/infra/fileops"
	"github.com/otlp2parquet/cli/internal/infra/schema"
	"github.com/otlp2parquet/cli/internal/infra/ui"
)

// RegionResolver fills in an AWS region when none was given.
type RegionResolver interface {
	Resolve(ctx context.Context, explicit string) awsregion.Resolution
}

// Result describes one generated document.
type Result struct {
	Platform  string
	Output    string
	Document  []byte
	Resources []ui.KeyValue
	NextSteps []string
}

// ToStdout reports whether the document was printed instead of written.
func (r Result) ToStdout() bool {
	return isStdout(r.Output)
}

// Generator runs the generation pipelines.
type Generator struct {
	Stdout    io.Writer
	Regions   RegionResolver
	WriteFile func(path string, data []byte, perm os.FileMode) error
}

// NewGenerator returns a Generator writing to the real filesystem and stdout.
func NewGenerator() *Generator {
	return &Generator{
		Stdout:    os.Stdout,
		Regions:   awsregion.New(),
		WriteFile: fileops.WriteFileAtomic,
	}
}

// Cloudflare generates a wrangler.toml.
func (g *Generator) Cloudflare(ctx context.Context, args cloudflare.Args) (Result, error) {
	args = args.WithDefaults()
	if err := cloudflare.Validate(args); err != nil {
		return Result{}, err
	}
	if err := checkOutput(cloudflare.Platform, args.Output, args.Force); err != nil {
		return Result{}, err
	}
	plan, err := cloudflare.NewPlan(args)
	if err != nil {
		return Result{}, err
	}
	log.Debug("derived cloudflare names", "worker", plan.Worker, "bucket", plan.Bucket, "binding", plan.Binding)

	doc, err := cloudflare.Render(plan)
	if err != nil {
		return Result{}, err
	}
	if err := schema.ValidateWrangler(doc, schema.WranglerExpect{
		WorkerName: plan.Worker,
		Binding:    plan.Binding,
		BucketName: plan.Bucket,
	}); err != nil {
		return Result{}, failure.Generation(cloudflare.Platform, "verify wrangler.toml", err)
	}

	if err := g.emit(ctx, cloudflare.Platform, args.Output, doc); err != nil {
		return Result{}, err
	}
	return Result{
		Platform: cloudflare.Platform,
		Output:   args.Output,
		Document: doc,
		Resources: []ui.KeyValue{
			{Key: "Worker", Value: plan.Worker},
			{Key: "R2 bucket", Value: plan.Bucket},
			{Key: "Binding", Value: plan.Binding},
		},
		NextSteps: plan.NextSteps(),
	}, nil
}

// AWS generates a SAM template.yaml.
func (g *Generator) AWS(ctx context.Context, args aws.Args) (Result, error) {
	if err := aws.ValidateRequired(args); err != nil {
		return Result{}, err
	}
	if g.Regions != nil {
		args.Region = g.Regions.Resolve(ctx, args.Region).Region
	}
	args = args.WithDefaults()
	if err := aws.Validate(args); err != nil {
		return Result{}, err
	}
	if err := checkOutput(aws.Platform, args.Output, args.Force); err != nil {
		return Result{}, err
	}
	plan, err := aws.NewPlan(args)
	if err != nil {
		return Result{}, err
	}
	log.Debug("derived aws names", "stack", plan.Stack, "function", plan.FunctionName, "function_id", plan.FunctionID)

	doc, err := aws.Render(plan)
	if err != nil {
		return Result{}, err
	}
	expect := schema.SAMExpect{FunctionID: plan.FunctionID, Resources: []string{plan.LogGroupID}}
	resources := []ui.KeyValue{
		{Key: "Stack", Value: plan.Stack},
		{Key: "Region", Value: args.Region},
		{Key: "Function", Value: plan.FunctionName},
	}
	if plan.BucketID != "" {
		expect.Resources = append(expect.Resources, plan.BucketID)
		resources = append(resources, ui.KeyValue{Key: "S3 bucket", Value: plan.Bucket})
	}
	if plan.TableBucketID != "" {
		expect.Resources = append(expect.Resources, plan.TableBucketID, plan.NamespaceID)
		resources = append(resources,
			ui.KeyValue{Key: "Table bucket", Value: plan.TableBucket},
			ui.KeyValue{Key: "Namespace", Value: plan.Namespace},
		)
	}
	if err := schema.ValidateSAM(doc, expect); err != nil {
		return Result{}, failure.Generation(aws.Platform, "verify template.yaml", err)
	}

	if err := g.emit(ctx, aws.Platform, args.Output, doc); err != nil {
		return Result{}, err
	}
	return Result{
		Platform:  aws.Platform,
		Output:    args.Output,
		Document:  doc,
		Resources: resources,
		NextSteps: plan.NextSteps(),
	}, nil
}
