package create

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/otlp2parquet/cli/internal/domain/aws"
	"github.com/otlp2parquet/cli/internal/domain/cloudflare"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/infra/awsregion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRegion string

func (r fixedRegion) Resolve(_ context.Context, explicit string) awsregion.Resolution {
	if explicit != "" {
		return awsregion.Resolution{Region: explicit, Source: awsregion.SourceExplicit}
	}
	return awsregion.Resolution{Region: string(r), Source: awsregion.SourceShared}
}

func newTestGenerator(stdout *bytes.Buffer) *Generator {
	g := NewGenerator()
	g.Stdout = stdout
	g.Regions = fixedRegion("us-east-1")
	return g
}

func TestRunnerDispatchesToExactlyOneGenerator(t *testing.T) {
	var cfCalls, awsCalls int
	r := Runner{
		Cloudflare: func(context.Context, cloudflare.Args) (Result, error) {
			cfCalls++
			return Result{Platform: cloudflare.Platform}, nil
		},
		AWS: func(context.Context, aws.Args) (Result, error) {
			awsCalls++
			return Result{Platform: aws.Platform}, nil
		},
	}

	res, err := r.Run(context.Background(), Cloudflare{Args: cloudflare.Args{Name: "otlp-demo"}})
	require.NoError(t, err)
	assert.Equal(t, cloudflare.Platform, res.Platform)
	assert.Equal(t, 1, cfCalls)
	assert.Equal(t, 0, awsCalls)

	res, err = r.Run(context.Background(), AWS{Args: aws.Args{StackName: "otlp-prod"}})
	require.NoError(t, err)
	assert.Equal(t, aws.Platform, res.Platform)
	assert.Equal(t, 1, cfCalls)
	assert.Equal(t, 1, awsCalls)
}

func TestRunnerReturnsGeneratorErrorUnchanged(t *testing.T) {
	want := failure.Name(aws.Platform, "derive stack name", errors.New("empty"))
	r := Runner{AWS: func(context.Context, aws.Args) (Result, error) { return Result{}, want }}

	_, err := r.Run(context.Background(), AWS{})
	assert.Same(t, want, err)
}

func TestRunnerRejectsUnknownCommand(t *testing.T) {
	_, err := Runner{}.Run(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrArgument)
	assert.Contains(t, err.Error(), "unsupported command")
}

func TestRunnerWithoutGeneratorFails(t *testing.T) {
	_, err := Runner{}.Run(context.Background(), Cloudflare{Args: cloudflare.Args{Name: "otlp-demo"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrGeneration)
	assert.Contains(t, err.Error(), "create cloudflare: dispatch")
}

func TestCloudflareBindsDerivedBucket(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wrangler.toml")
	g := newTestGenerator(&bytes.Buffer{})

	res, err := NewRunner(g).Run(context.Background(), Cloudflare{Args: cloudflare.Args{
		Name:   "otlp-demo",
		Bucket: "otlp-demo-data",
		Output: out,
	}})
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, res.Document, written)
	assert.Contains(t, string(written), `binding = "OTLP_DEMO_DATA"`)
	assert.Contains(t, string(written), `bucket_name = "otlp-demo-data"`)
	assert.False(t, res.ToStdout())
	assert.Equal(t, "npx wrangler deploy", res.NextSteps[len(res.NextSteps)-1])
}

func TestAWSNamesFunctionAndBucketFromStack(t *testing.T) {
	out := filepath.Join(t.TempDir(), "template.yaml")
	g := newTestGenerator(&bytes.Buffer{})

	res, err := NewRunner(g).Run(context.Background(), AWS{Args: aws.Args{
		StackName:   "otlp-prod",
		FunctionURL: true,
		Output:      out,
	}})
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(written)
	assert.Contains(t, doc, "  OtlpProdFunction:\n    Type: AWS::Serverless::Function")
	assert.Contains(t, doc, "  OtlpProdBucket:\n    Type: AWS::S3::Bucket")
	assert.Contains(t, doc, `FunctionName: "otlp-prod-ingest"`)
	assert.Contains(t, doc, `BucketName: "otlp-prod-data"`)
	assert.Equal(t, []string{"sam deploy --stack-name otlp-prod --region us-east-1 --capabilities CAPABILITY_IAM --resolve-s3"}, res.NextSteps)
}

func TestAWSUsesResolvedRegion(t *testing.T) {
	var stdout bytes.Buffer
	g := newTestGenerator(&stdout)
	g.Regions = fixedRegion("eu-west-1")

	res, err := g.AWS(context.Background(), aws.Args{StackName: "otlp-prod", Output: "-"})
	require.NoError(t, err)
	assert.True(t, res.ToStdout())
	assert.Contains(t, stdout.String(), `Region: "eu-west-1"`)
}

type countingRegion struct {
	calls int
}

func (c *countingRegion) Resolve(context.Context, string) awsregion.Resolution {
	c.calls++
	return awsregion.Resolution{Region: awsregion.Fallback, Source: awsregion.SourceFallback}
}

func TestMissingRequiredNameCreatesNothing(t *testing.T) {
	tests := []struct {
		name string
		cmd  func(dir string) Command
	}{
		{
			name: "cloudflare without name",
			cmd: func(dir string) Command {
				return Cloudflare{Args: cloudflare.Args{Output: filepath.Join(dir, "wrangler.toml")}}
			},
		},
		{
			name: "aws without stack name",
			cmd: func(dir string) Command {
				return AWS{Args: aws.Args{StackName: "  ", Output: filepath.Join(dir, "template.yaml")}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var stdout bytes.Buffer
			g := newTestGenerator(&stdout)

			_, err := NewRunner(g).Run(context.Background(), tt.cmd(dir))
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrArgument)
			assert.Equal(t, 2, failure.ExitCode(err))
			assert.Empty(t, stdout.String())

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestAWSMissingStackNameSkipsRegionLookup(t *testing.T) {
	regions := &countingRegion{}
	g := newTestGenerator(&bytes.Buffer{})
	g.Regions = regions

	_, err := g.AWS(context.Background(), aws.Args{Output: filepath.Join(t.TempDir(), "template.yaml")})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrArgument)
	assert.Contains(t, err.Error(), "--stack-name is required")
	assert.Zero(t, regions.calls)

	_, err = g.AWS(context.Background(), aws.Args{StackName: "otlp-prod", Output: "-"})
	require.NoError(t, err)
	assert.Equal(t, 1, regions.calls)
}

func TestIdenticalArgsProduceIdenticalBytes(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(&bytes.Buffer{})
	args := aws.Args{StackName: "otlp-prod", Storage: "s3tables", FunctionURL: true}

	first := args
	first.Output = filepath.Join(dir, "a.yaml")
	second := args
	second.Output = filepath.Join(dir, "b.yaml")

	_, err := g.AWS(context.Background(), first)
	require.NoError(t, err)
	_, err = g.AWS(context.Background(), second)
	require.NoError(t, err)

	a, err := os.ReadFile(first.Output)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Output)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExistingOutputRequiresForce(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wrangler.toml")
	require.NoError(t, os.WriteFile(out, []byte("keep me"), 0o644))
	g := newTestGenerator(&bytes.Buffer{})
	args := cloudflare.Args{Name: "otlp-demo", Output: out}

	_, err := g.Cloudflare(context.Background(), args)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrArgument)
	require.NotEmpty(t, failure.Hints(err))
	assert.Contains(t, failure.Hints(err)[0], "--force")
	kept, _ := os.ReadFile(out)
	assert.Equal(t, "keep me", string(kept))

	args.Force = true
	_, err = g.Cloudflare(context.Background(), args)
	require.NoError(t, err)
	replaced, _ := os.ReadFile(out)
	assert.Contains(t, string(replaced), `name = "otlp-demo"`)
}

func TestWriteFailureIsIOError(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})
	g.WriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only file system") }

	_, err := g.Cloudflare(context.Background(), cloudflare.Args{Name: "otlp-demo", Output: filepath.Join(t.TempDir(), "w.toml")})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrIO)
	assert.Equal(t, 5, failure.ExitCode(err))
}

func TestNameFailureIsNameError(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})
	_, err := g.AWS(context.Background(), aws.Args{StackName: "日本語", Output: "-"})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrName)
	assert.Equal(t, 3, failure.ExitCode(err))
}

func TestCanceledContextWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wrangler.toml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(&bytes.Buffer{}).Cloudflare(ctx, cloudflare.Args{Name: "otlp-demo", Output: out})
	require.Error(t, err)
	assert.NoFileExists(t, out)
}
