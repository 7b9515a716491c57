// Where: cli/internal/infra/config/defaults.go
// What: Project defaults file load/save.
// Why: Let a repository pin generator inputs in <project>/.<brand>/config.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/otlp2parquet/cli/internal/domain/aws"
	"github.com/otlp2parquet/cli/internal/domain/cloudflare"
	"github.com/otlp2parquet/cli/internal/domain/pipeline"
	"github.com/otlp2parquet/cli/internal/infra/fileops"
	"github.com/otlp2parquet/cli/internal/meta"
	"gopkg.in/yaml.v3"
)

// Defaults represents the <project>/.<brand>/config.yaml file.
// Values fill only fields left empty by flags and environment variables.
type Defaults struct {
	Version    int                `yaml:"version"`
	Pipeline   PipelineDefaults   `yaml:"pipeline,omitempty"`
	Cloudflare CloudflareDefaults `yaml:"cloudflare,omitempty"`
	AWS        AWSDefaults        `yaml:"aws,omitempty"`
}

// PipelineDefaults apply to both generators.
type PipelineDefaults struct {
	BatchMaxRows    int    `yaml:"batch_max_rows,omitempty"`
	BatchMaxAgeSecs int    `yaml:"batch_max_age_secs,omitempty"`
	LogLevel        string `yaml:"log_level,omitempty"`
}

// CloudflareDefaults mirrors the create cloudflare flags.
type CloudflareDefaults struct {
	Name              string `yaml:"name,omitempty"`
	Bucket            string `yaml:"bucket,omitempty"`
	AccountID         string `yaml:"account_id,omitempty"`
	Jurisdiction      string `yaml:"jurisdiction,omitempty"`
	Catalog           string `yaml:"catalog,omitempty"`
	CompatibilityDate string `yaml:"compatibility_date,omitempty"`
	Main              string `yaml:"main,omitempty"`
	BasicAuth         bool   `yaml:"basic_auth,omitempty"`
	Output            string `yaml:"output,omitempty"`
}

// AWSDefaults mirrors the create aws flags.
type AWSDefaults struct {
	StackName        string `yaml:"stack_name,omitempty"`
	Bucket           string `yaml:"bucket,omitempty"`
	Storage          string `yaml:"storage,omitempty"`
	TableBucket      string `yaml:"table_bucket,omitempty"`
	Namespace        string `yaml:"namespace,omitempty"`
	Region           string `yaml:"region,omitempty"`
	Architecture     string `yaml:"arch,omitempty"`
	MemorySize       int    `yaml:"memory,omitempty"`
	Timeout          int    `yaml:"timeout,omitempty"`
	CodeURI          string `yaml:"code_uri,omitempty"`
	FunctionURL      *bool  `yaml:"function_url,omitempty"`
	AuthType         string `yaml:"auth_type,omitempty"`
	LogRetentionDays int    `yaml:"log_retention,omitempty"`
	Output           string `yaml:"output,omitempty"`
}

// DefaultDefaults returns an empty Defaults with version set.
func DefaultDefaults() Defaults {
	return Defaults{Version: 1}
}

// DefaultsPath returns the path to the defaults file under projectRoot.
func DefaultsPath(projectRoot string) (string, error) {
	root := strings.TrimSpace(projectRoot)
	if root == "" {
		return "", fmt.Errorf("project root is required")
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Join(root, meta.HomeDir, meta.ConfigFileName), nil
}

// LoadDefaults reads and parses a defaults file.
func LoadDefaults(path string) (Defaults, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults file: %w", err)
	}

	cfg := DefaultDefaults()
	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Defaults{}, fmt.Errorf("decode defaults file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveDefaults writes a Defaults to the specified path.
func SaveDefaults(path string, cfg Defaults) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode defaults file: %w", err)
	}

	if err := fileops.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create defaults dir: %w", err)
	}

	if err := fileops.WriteFileAtomic(path, payload, 0o600); err != nil {
		return fmt.Errorf("write defaults file: %w", err)
	}
	return nil
}

// Apply fills empty pipeline settings.
func (d PipelineDefaults) Apply(s pipeline.Settings) pipeline.Settings {
	if s.BatchMaxRows == 0 {
		s.BatchMaxRows = d.BatchMaxRows
	}
	if s.BatchMaxAgeSecs == 0 {
		s.BatchMaxAgeSecs = d.BatchMaxAgeSecs
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	return s
}

// ApplyCloudflare fills empty Cloudflare arguments from the file.
func (d Defaults) ApplyCloudflare(a cloudflare.Args) cloudflare.Args {
	c := d.Cloudflare
	a.Name = firstNonEmpty(a.Name, c.Name)
	a.Bucket = firstNonEmpty(a.Bucket, c.Bucket)
	a.AccountID = firstNonEmpty(a.AccountID, c.AccountID)
	a.Jurisdiction = firstNonEmpty(a.Jurisdiction, c.Jurisdiction)
	a.Catalog = firstNonEmpty(a.Catalog, c.Catalog)
	a.CompatibilityDate = firstNonEmpty(a.CompatibilityDate, c.CompatibilityDate)
	a.Main = firstNonEmpty(a.Main, c.Main)
	a.BasicAuth = a.BasicAuth || c.BasicAuth
	a.Output = firstNonEmpty(a.Output, c.Output)
	a.Pipeline = d.Pipeline.Apply(a.Pipeline)
	return a
}

// ApplyAWS fills empty AWS arguments from the file.
func (d Defaults) ApplyAWS(a aws.Args) aws.Args {
	c := d.AWS
	a.StackName = firstNonEmpty(a.StackName, c.StackName)
	a.Bucket = firstNonEmpty(a.Bucket, c.Bucket)
	a.Storage = firstNonEmpty(a.Storage, c.Storage)
	a.TableBucket = firstNonEmpty(a.TableBucket, c.TableBucket)
	a.Namespace = firstNonEmpty(a.Namespace, c.Namespace)
	a.Region = firstNonEmpty(a.Region, c.Region)
	a.Architecture = firstNonEmpty(a.Architecture, c.Architecture)
	if a.MemorySize == 0 {
		a.MemorySize = c.MemorySize
	}
	if a.Timeout == 0 {
		a.Timeout = c.Timeout
	}
	a.CodeURI = firstNonEmpty(a.CodeURI, c.CodeURI)
	a.AuthType = firstNonEmpty(a.AuthType, c.AuthType)
	if a.LogRetentionDays == 0 {
		a.LogRetentionDays = c.LogRetentionDays
	}
	a.Output = firstNonEmpty(a.Output, c.Output)
	a.Pipeline = d.Pipeline.Apply(a.Pipeline)
	return a
}

// FunctionURLEnabled reports the file's function URL preference, which is
// on unless the file turns it off.
func (d AWSDefaults) FunctionURLEnabled() bool {
	return d.FunctionURL == nil || *d.FunctionURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
