// Where: cli/internal/domain/cloudflare/cloudflare.go
// What: Cloudflare Workers + R2 manifest generation.
// Why: Turn validated arguments into a deterministic wrangler.toml.
package cloudflare

import (
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"github.com/otlp2parquet/cli/internal/domain/names"
	"github.com/otlp2parquet/cli/internal/domain/pipeline"
	"github.com/otlp2parquet/cli/internal/domain/template"
	"github.com/otlp2parquet/cli/internal/meta"
)

// Platform is the name used in messages and dispatch.
const Platform = string(names.Cloudflare)

const (
	CatalogPlain   = "plain"
	CatalogIceberg = "iceberg"

	DefaultCompatibilityDate = "2025-01-01"
	DefaultMain              = "build/worker/shim.mjs"

	catalogEndpoint = "https://catalog.cloudflarestorage.com"
)

var (
	accountIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)
	jurisdictions    = []string{"eu", "fedramp"}
)

// Args is the fully resolved input for the Cloudflare generator.
type Args struct {
	Name              string
	Bucket            string
	AccountID         string
	Jurisdiction      string
	Catalog           string
	CompatibilityDate string
	Main              string
	BasicAuth         bool
	Pipeline          pipeline.Settings
	Output            string
	Force             bool
}

// WithDefaults fills optional fields that were left empty.
func (a Args) WithDefaults() Args {
	a.Name = strings.TrimSpace(a.Name)
	a.Bucket = strings.TrimSpace(a.Bucket)
	if a.Bucket == "" && a.Name != "" {
		a.Bucket = a.Name + "-data"
	}
	a.AccountID = strings.ToLower(strings.TrimSpace(a.AccountID))
	a.Jurisdiction = strings.ToLower(strings.TrimSpace(a.Jurisdiction))
	a.Catalog = strings.ToLower(strings.TrimSpace(a.Catalog))
	if a.Catalog == "" {
		a.Catalog = CatalogPlain
	}
	if strings.TrimSpace(a.CompatibilityDate) == "" {
		a.CompatibilityDate = DefaultCompatibilityDate
	}
	if strings.TrimSpace(a.Main) == "" {
		a.Main = DefaultMain
	}
	if strings.TrimSpace(a.Output) == "" {
		a.Output = meta.WranglerFileName
	}
	a.Pipeline = a.Pipeline.WithDefaults()
	return a
}

// Validate reports missing or malformed arguments as argument errors.
func Validate(a Args) error {
	if a.Name == "" {
		return failure.WithHint(
			failure.Argumentf(Platform, "validate arguments", "--name is required"),
			"pass --name <project> or set %s", meta.CreateEnvPrefix+"_NAME",
		)
	}
	if a.AccountID != "" && !accountIDPattern.MatchString(a.AccountID) {
		return failure.Argumentf(Platform, "validate arguments",
			"--account-id must be 32 hexadecimal characters, got %q", a.AccountID)
	}
	if a.Jurisdiction != "" && !contains(jurisdictions, a.Jurisdiction) {
		return failure.Argumentf(Platform, "validate arguments",
			"--jurisdiction must be one of %s, got %q", strings.Join(jurisdictions, ", "), a.Jurisdiction)
	}
	switch a.Catalog {
	case CatalogPlain:
	case CatalogIceberg:
		if a.AccountID == "" {
			return failure.WithHint(
				failure.Argumentf(Platform, "validate arguments", "--catalog iceberg requires --account-id"),
				"find the account id in the Cloudflare dashboard sidebar",
			)
		}
	default:
		return failure.Argumentf(Platform, "validate arguments",
			"--catalog must be %q or %q, got %q", CatalogPlain, CatalogIceberg, a.Catalog)
	}
	if _, err := time.Parse(time.DateOnly, a.CompatibilityDate); err != nil {
		return failure.Argumentf(Platform, "validate arguments",
			"--compatibility-date must be YYYY-MM-DD, got %q", a.CompatibilityDate)
	}
	if err := a.Pipeline.Validate(); err != nil {
		return failure.Argument(Platform, "validate arguments", err)
	}
	return nil
}

// Plan holds the derived, platform-conformant names for one manifest.
type Plan struct {
	Args    Args
	Worker  string
	Bucket  string
	Binding string
}

// NewPlan derives every platform-constrained name from the arguments.
func NewPlan(a Args) (Plan, error) {
	worker, err := names.Derive(a.Name, names.CloudflareWorker)
	if err != nil {
		return Plan{}, err
	}
	bucket, err := names.Derive(a.Bucket, names.R2Bucket)
	if err != nil {
		return Plan{}, err
	}
	binding, err := names.Derive(bucket, names.WorkerBinding)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Args: a, Worker: worker, Bucket: bucket, Binding: binding}, nil
}

// Vars returns the Worker [vars] for the plan.
func (p Plan) Vars() []template.EnvVar {
	extra := map[string]string{
		pipeline.Key("STORAGE"):    "r2",
		pipeline.Key("R2_BINDING"): p.Binding,
		pipeline.Key("R2_BUCKET"):  p.Bucket,
	}
	if p.Args.Catalog == CatalogIceberg {
		extra[pipeline.Key("CATALOG")] = CatalogIceberg
		extra[pipeline.Key("ICEBERG_REST_URI")] = catalogEndpoint + "/" + p.Args.AccountID + "/" + p.Bucket
		extra[pipeline.Key("ICEBERG_WAREHOUSE")] = p.Args.AccountID + "_" + p.Bucket
	}
	if p.Args.BasicAuth {
		extra[pipeline.Key("BASIC_AUTH_ENABLED")] = "true"
	}
	env := p.Args.Pipeline.Env(extra)
	vars := make([]template.EnvVar, 0, len(env))
	for _, v := range env {
		vars = append(vars, template.EnvVar{Name: v.Name, Value: v.Value})
	}
	return vars
}

// NextSteps lists the commands to run after the manifest is written.
func (p Plan) NextSteps() []string {
	create := "npx wrangler r2 bucket create " + p.Bucket
	if p.Args.Jurisdiction != "" {
		create += " --jurisdiction " + p.Args.Jurisdiction
	}
	steps := []string{create}
	if p.Args.Catalog == CatalogIceberg {
		steps = append(steps,
			"npx wrangler r2 bucket catalog enable "+p.Bucket,
			"npx wrangler secret put "+pipeline.Key("ICEBERG_TOKEN"),
		)
	}
	if p.Args.BasicAuth {
		steps = append(steps, "npx wrangler secret put "+pipeline.Key("BASIC_AUTH_PASSWORD"))
	}
	return append(steps, "npx wrangler deploy")
}

// Render produces the wrangler.toml bytes for the plan.
func Render(p Plan) ([]byte, error) {
	notes := []string{"", "Next steps:"}
	for _, step := range p.NextSteps() {
		notes = append(notes, "  "+step)
	}
	doc, err := template.RenderWrangler(template.WranglerData{
		Notes:             notes,
		WorkerName:        p.Worker,
		Main:              p.Args.Main,
		CompatibilityDate: p.Args.CompatibilityDate,
		AccountID:         p.Args.AccountID,
		Buckets: []template.R2Binding{{
			Binding:      p.Binding,
			BucketName:   p.Bucket,
			Jurisdiction: p.Args.Jurisdiction,
		}},
		Vars: p.Vars(),
	})
	if err != nil {
		return nil, failure.Generation(Platform, "render wrangler.toml", errors.Wrap(err, "template"))
	}
	return doc, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
