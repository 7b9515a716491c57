// Where: cli/internal/infra/awsregion/awsregion.go
// What: AWS region resolution from shared config and environment.
// Why: Generated templates should target the region the user's AWS tooling already uses.
package awsregion

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/charmbracelet/log"
)

// Fallback is used when nothing else names a region.
const Fallback = "us-east-1"

// Source names where a resolved region came from.
type Source string

const (
	SourceExplicit Source = "argument"
	SourceShared   Source = "aws shared config"
	SourceFallback Source = "fallback"
)

// Resolution is a resolved region and its origin.
type Resolution struct {
	Region string
	Source Source
}

// Loader reads the shared AWS configuration. It must not call AWS APIs.
type Loader func(ctx context.Context) (awssdk.Config, error)

// Resolver resolves regions. The zero value uses the SDK's default loader.
type Resolver struct {
	Load Loader
}

// New returns a Resolver backed by the AWS shared config chain
// (AWS_REGION, AWS_DEFAULT_REGION, AWS_PROFILE, ~/.aws/config).
func New() *Resolver {
	return &Resolver{Load: defaultLoader}
}

func defaultLoader(ctx context.Context) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx)
}

// Resolve returns explicit when set, otherwise the shared-config region,
// otherwise Fallback. A broken shared config is logged and skipped.
func (r *Resolver) Resolve(ctx context.Context, explicit string) Resolution {
	if region := strings.TrimSpace(explicit); region != "" {
		return r.checked(Resolution{Region: strings.ToLower(region), Source: SourceExplicit})
	}
	load := defaultLoader
	if r != nil && r.Load != nil {
		load = r.Load
	}
	cfg, err := load(ctx)
	if err != nil {
		log.Debug("aws shared config unavailable", "error", err)
	} else if region := strings.TrimSpace(cfg.Region); region != "" {
		return r.checked(Resolution{Region: strings.ToLower(region), Source: SourceShared})
	}
	return Resolution{Region: Fallback, Source: SourceFallback}
}

func (r *Resolver) checked(res Resolution) Resolution {
	log.Debug("resolved aws region", "region", res.Region, "source", string(res.Source))
	if !Known(res.Region) {
		log.Warn("region is not in the known region list; the template may fail to deploy", "region", res.Region)
	}
	return res
}

// Known reports whether region appears in the SDK's S3 location constraint
// list. us-east-1 is implicit there.
func Known(region string) bool {
	if region == Fallback {
		return true
	}
	for _, value := range types.BucketLocationConstraint("").Values() {
		if string(value) == region {
			return true
		}
	}
	return false
}
