// Where: cli/internal/usecase/create/create.go
// What: Deploy dispatcher for the create command.
// Why: Route each invocation to exactly one platform generator.
package create

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/domain/aws"
	"github.com/otlp2parquet/cli/internal/domain/cloudflare"
	"github.com/otlp2parquet/cli/internal/domain/failure"
)

// Command is a parsed create invocation. The set of variants is closed:
// Cloudflare and AWS are the only implementations.
type Command interface {
	isCommand()
}

// Cloudflare requests a wrangler.toml for Workers + R2.
type Cloudflare struct {
	Args cloudflare.Args
}

// AWS requests a SAM template for Lambda + S3 or S3 Tables.
type AWS struct {
	Args aws.Args
}

func (Cloudflare) isCommand() {}
func (AWS) isCommand()        {}

// Runner holds one entry point per platform.
type Runner struct {
	Cloudflare func(context.Context, cloudflare.Args) (Result, error)
	AWS        func(context.Context, aws.Args) (Result, error)
}

// NewRunner wires a Runner to the generators of g.
func NewRunner(g *Generator) Runner {
	return Runner{Cloudflare: g.Cloudflare, AWS: g.AWS}
}

// Run invokes the generator matching cmd and returns its result and error
// unchanged.
func (r Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case Cloudflare:
		if r.Cloudflare == nil {
			return Result{}, failure.Generation(cloudflare.Platform, "dispatch", errors.New("generator is not configured"))
		}
		return r.Cloudflare(ctx, c.Args)
	case AWS:
		if r.AWS == nil {
			return Result{}, failure.Generation(aws.Platform, "dispatch", errors.New("generator is not configured"))
		}
		return r.AWS(ctx, c.Args)
	default:
		return Result{}, failure.Argument("", "dispatch", errors.Newf("unsupported command %T", cmd))
	}
}

// Run dispatches cmd with the default generator.
func Run(ctx context.Context, cmd Command) error {
	_, err := NewRunner(NewGenerator()).Run(ctx, cmd)
	return err
}
