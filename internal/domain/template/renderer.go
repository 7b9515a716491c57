// Where: cli/internal/domain/template/renderer.go
// What: Render wrangler.toml and SAM template.yaml outputs.
// Why: Keep document layout in reviewable templates instead of string building.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/otlp2parquet/cli/internal/meta"
)

const (
	wranglerTemplate = "wrangler.toml.tmpl"
	samTemplate      = "template.yaml.tmpl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// RenderWrangler renders a Workers manifest.
func RenderWrangler(data WranglerData) ([]byte, error) {
	if data.WorkerName == "" {
		return nil, fmt.Errorf("worker name is required")
	}
	if len(data.Buckets) == 0 {
		return nil, fmt.Errorf("at least one r2 bucket binding is required")
	}
	return renderTemplate(wranglerTemplate, data)
}

// RenderSAM renders a SAM deployment template.
func RenderSAM(data SAMData) ([]byte, error) {
	if data.Function.LogicalID == "" {
		return nil, fmt.Errorf("function logical id is required")
	}
	if data.Bucket == nil && data.TableBucket == nil {
		return nil, fmt.Errorf("a bucket or table bucket is required")
	}
	return renderTemplate(samTemplate, data)
}

func renderTemplate(name string, data any) ([]byte, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	pathName := "templates/" + name
	tmpl, err := template.New(path.Base(pathName)).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"appName": func() string { return meta.AppName }}).
		ParseFS(templateFS, pathName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
