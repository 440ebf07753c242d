// Package calibration loads and validates the scoring tables. A table
// carries either fixed per-kernel factors or reference throughputs for
// ratio scoring, split by suite because multi-core aggregates run at a
// different magnitude than single-core results.
package calibration

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Method selects how composites are computed from kernel throughputs.
type Method string

const (
	// MethodFactor sums ops-per-second times a fixed per-kernel factor.
	MethodFactor Method = "factor"
	// MethodRatio takes 100 times the geometric mean of ops-per-second
	// over a reference device's throughputs.
	MethodRatio Method = "ratio"
)

// Table is one calibration table. For MethodFactor the maps hold
// scoring factors; for MethodRatio they hold the reference device's
// ops-per-second values.
type Table struct {
	Method     Method             `yaml:"method" json:"method"`
	Reference  string             `yaml:"reference,omitempty" json:"reference,omitempty"`
	SingleCore map[string]float64 `yaml:"single_core" json:"single_core"`
	MultiCore  map[string]float64 `yaml:"multi_core" json:"multi_core"`
}

//go:embed default_factors.yaml
var defaultFactorsYAML []byte

//go:embed table.schema.json
var tableSchemaJSON string

var tableSchema *jsonschema.Schema

var schemaPrinter = message.NewPrinter(language.English)

func init() {
	tableSchema = mustCompileSchema(tableSchemaJSON, "table.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Default returns the embedded factor table. The embedded table is
// validated at init-time expense on first use; a broken embed is a
// build defect and panics.
func Default() *Table {
	t, err := parse(defaultFactorsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded calibration table invalid: %v", err))
	}
	return t
}

// Load reads, schema-validates and parses a calibration table file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration table: %w", err)
	}
	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("calibration table %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return &t, nil
}

// ValidateBytes validates raw YAML bytes against the table schema and
// returns human-readable errors.
func ValidateBytes(data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}

	err := tableSchema.Validate(convertToJSONCompatible(yamlDoc))
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(schemaPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible normalizes YAML-decoded values for schema
// validation. yaml.v3 already uses map[string]any for string keys.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}

// ValueFor returns the table entry for a kernel in the given suite map.
// A missing entry returns 0; scorers treat that as zero contribution,
// never NaN.
func (t *Table) ValueFor(multiCore bool, kernelID string) float64 {
	m := t.SingleCore
	if multiCore {
		m = t.MultiCore
	}
	return m[kernelID]
}

// Covers reports whether both suite maps carry an entry for every given
// kernel ID.
func (t *Table) Covers(kernelIDs []string) bool {
	for _, id := range kernelIDs {
		if _, ok := t.SingleCore[id]; !ok {
			return false
		}
		if _, ok := t.MultiCore[id]; !ok {
			return false
		}
	}
	return true
}
