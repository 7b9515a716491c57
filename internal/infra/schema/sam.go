// Where: cli/internal/infra/schema/sam.go
// What: SAM template parsing and validation.
// Why: Reject templates that parse but reference resources they never declare.
package schema

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// SAMExpect lists the logical IDs the template must declare.
type SAMExpect struct {
	FunctionID string
	Resources  []string
}

type samResource struct {
	Type       string         `yaml:"Type"`
	Properties map[string]any `yaml:"Properties"`
}

type samTemplate struct {
	Resources map[string]samResource `yaml:"Resources"`
	Outputs   map[string]any         `yaml:"Outputs"`
}

// ValidateSAM parses content as YAML, checks it against the SAM schema, and
// verifies every expected resource exists and every Ref or Fn::GetAtt
// resolves to a declared resource.
func ValidateSAM(content []byte, want SAMExpect) error {
	var tmpl samTemplate
	if err := yaml.Unmarshal(content, &tmpl); err != nil {
		return errors.Wrap(err, "parse template.yaml")
	}
	jsonData, err := sigsyaml.YAMLToJSON(content)
	if err != nil {
		return errors.Wrap(err, "convert template.yaml to json")
	}
	if err := validateJSON(samSchema, jsonData); err != nil {
		return err
	}

	fn, ok := tmpl.Resources[want.FunctionID]
	if !ok {
		return &Mismatch{Field: "Resources", Want: want.FunctionID}
	}
	if fn.Type != "AWS::Serverless::Function" {
		return &Mismatch{Field: want.FunctionID + ".Type", Want: "AWS::Serverless::Function", Got: fn.Type}
	}
	for _, id := range want.Resources {
		if _, ok := tmpl.Resources[id]; !ok {
			return &Mismatch{Field: "Resources", Want: id}
		}
	}

	declared := declaredTargets(tmpl.Resources)
	var dangling []string
	collectDangling(tmpl.Resources, declared, &dangling)
	collectDangling(tmpl.Outputs, declared, &dangling)
	if len(dangling) > 0 {
		sort.Strings(dangling)
		return errors.Newf("template references undeclared resources: %s", strings.Join(dangling, ", "))
	}
	return nil
}

// declaredTargets includes the implicit <Function>Url resource SAM creates
// for functions with a FunctionUrlConfig.
func declaredTargets(resources map[string]samResource) map[string]bool {
	out := make(map[string]bool, len(resources))
	for id, res := range resources {
		out[id] = true
		if res.Type == "AWS::Serverless::Function" {
			if _, ok := res.Properties["FunctionUrlConfig"]; ok {
				out[id+"Url"] = true
			}
		}
	}
	return out
}

func collectDangling(node any, declared map[string]bool, dangling *[]string) {
	switch value := node.(type) {
	case map[string]samResource:
		for _, res := range value {
			collectDangling(res.Properties, declared, dangling)
		}
	case map[string]any:
		for key, child := range value {
			switch key {
			case "Ref":
				if target, ok := child.(string); ok && !strings.HasPrefix(target, "AWS::") && !declared[target] {
					*dangling = append(*dangling, target)
				}
				continue
			case "Fn::GetAtt":
				if parts, ok := child.([]any); ok && len(parts) > 0 {
					if target, ok := parts[0].(string); ok && !declared[target] {
						*dangling = append(*dangling, target)
					}
				}
				continue
			}
			collectDangling(child, declared, dangling)
		}
	case []any:
		for _, child := range value {
			collectDangling(child, declared, dangling)
		}
	}
}
