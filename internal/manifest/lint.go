package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/frontmatter.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// LintResult contains every issue found by Lint.
type LintResult struct {
	Issues []LintIssue
}

// Clean reports whether no issues were found.
func (r *LintResult) Clean() bool { return len(r.Issues) == 0 }

// LintIssue is one problem in the frontmatter.
type LintIssue struct {
	Path    string // Instance location (e.g., "/metadata/version")
	Message string
	Keyword string // Schema keyword that failed, empty for non-schema checks
}

func (i LintIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("frontmatter.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("frontmatter.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Lint reads the SKILL.md in dir and checks its frontmatter as YAML against
// the frontmatter schema. Unlike ValidateSkill it collects all issues. The
// error return is for I/O failures and a missing or unterminated block.
func Lint(dir string) (*LintResult, error) {
	entry := filepath.Join(dir, EntryPoint)
	data, err := os.ReadFile(entry)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry, err)
	}

	block, _, err := Split(string(data))
	if err != nil {
		return nil, err
	}
	return LintBlock([]byte(block))
}

// LintBlock checks a raw frontmatter block.
func LintBlock(block []byte) (*LintResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(block, &raw); err != nil {
		return &LintResult{Issues: []LintIssue{{
			Message: fmt.Sprintf("frontmatter is not valid YAML: %v", err),
		}}}, nil
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	// Round-trip through JSON so the validator sees JSON-compatible types.
	raw = normalizeYAML(raw)
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	result := &LintResult{}
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		result.Issues = extractIssues(ve)
	}

	if issue, ok := checkMetadataVersion(raw); !ok {
		result.Issues = append(result.Issues, issue)
	}

	return result, nil
}

// checkMetadataVersion requires metadata.version, when set, to be semver.
func checkMetadataVersion(raw interface{}) (LintIssue, bool) {
	top, ok := raw.(map[string]interface{})
	if !ok {
		return LintIssue{}, true
	}
	meta, ok := top["metadata"].(map[string]interface{})
	if !ok {
		return LintIssue{}, true
	}
	v, ok := meta["version"]
	if !ok {
		return LintIssue{}, true
	}

	version := strings.TrimPrefix(fmt.Sprint(v), "v")
	if _, err := semver.NewVersion(version); err != nil {
		return LintIssue{
			Path:    "/metadata/version",
			Message: fmt.Sprintf("%q is not a semantic version: %v", fmt.Sprint(v), err),
		}, false
	}
	return LintIssue{}, true
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []LintIssue {
	var issues []LintIssue
	collectIssues(ve, &issues)

	if len(issues) == 0 {
		return []LintIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]LintIssue) {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords say nothing useful on their own.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, LintIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func deduplicateIssues(issues []LintIssue) []LintIssue {
	seen := make(map[string]bool)
	var result []LintIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeYAML converts YAML-decoded values to JSON-compatible types.
// Maps with non-string keys are rekeyed with their string form.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
