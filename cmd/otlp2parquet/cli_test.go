// Where: cli/cmd/otlp2parquet/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies wires real implementations.
package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/otlp2parquet/cli/internal/infra/awsregion"
	"github.com/otlp2parquet/cli/internal/infra/interaction"
	"github.com/otlp2parquet/cli/internal/usecase/create"
)

type stubRegion struct{}

func (stubRegion) Resolve(context.Context, string) awsregion.Resolution {
	return awsregion.Resolution{Region: "eu-west-1", Source: awsregion.SourceShared}
}

func TestBuildDependencies(t *testing.T) {
	origGetwd := getwd
	origRegion := newRegion
	t.Cleanup(func() {
		getwd = origGetwd
		newRegion = origRegion
	})
	getwd = func() (string, error) { return "/project", nil }
	newRegion = func() create.RegionResolver { return stubRegion{} }

	deps := buildDependencies(context.Background())
	if deps.Out != os.Stdout || deps.ErrOut != os.Stderr || deps.In != os.Stdin {
		t.Fatalf("expected process streams to be wired")
	}
	if _, ok := deps.Prompter.(interaction.HuhPrompter); !ok {
		t.Fatalf("expected huh prompter, got %T", deps.Prompter)
	}
	dir, err := deps.Getwd()
	if err != nil || dir != "/project" {
		t.Fatalf("unexpected getwd result %q %v", dir, err)
	}

	var buf bytes.Buffer
	gen := deps.NewGenerator(&buf)
	if gen.Stdout != &buf {
		t.Fatalf("generator stdout not wired")
	}
	if got := gen.Regions.Resolve(context.Background(), ""); got.Region != "eu-west-1" {
		t.Fatalf("unexpected region %q", got.Region)
	}
	if gen.WriteFile == nil {
		t.Fatalf("generator write func not wired")
	}
}
