package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/agentx-labs/skillkit/internal/naming"
	"github.com/agentx-labs/skillkit/internal/platform"
	"github.com/bmatcuk/doublestar/v4"
)

// Kind selects which asset Create produces.
type Kind string

const (
	KindSkill       Kind = "skill"
	KindInstruction Kind = "instruction"
	KindAgent       Kind = "agent"
)

// Kinds lists every supported asset kind.
var Kinds = []Kind{KindSkill, KindInstruction, KindAgent}

const (
	entryPoint        = "SKILL.md"
	readmeFile        = "README.md"
	referencesDir     = "references"
	instructionSuffix = ".instructions.md"
	agentSuffix       = ".agent.md"
)

var (
	ErrPathConflict = errors.New("path already exists")
	ErrMissingInput = errors.New("missing required input")
	ErrUnknownKind  = errors.New("unknown asset kind")
)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name    string // e.g., "pdf-processing"
	Title   string // Derived: "Pdf Processing"
	ApplyTo string // Glob for instructions, inserted verbatim
}

// Options carries the per-kind extras.
type Options struct {
	ApplyTo string // required for instructions
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Path     string   // directory (skill) or file (instruction, agent) created
	Files    []string // created entries, relative to Path's parent
	Warnings []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(name, applyTo string) *ScaffoldData {
	return &ScaffoldData{
		Name:    name,
		Title:   naming.Title(name),
		ApplyTo: applyTo,
	}
}

// Create scaffolds an asset named name under root. The name is validated
// before anything touches the filesystem, and an existing target is an
// error. Writes made before a later failure are left in place.
func Create(kind Kind, name, root string, opts Options) (*Result, error) {
	if err := naming.Validate(name); err != nil {
		return nil, err
	}

	switch kind {
	case KindSkill:
		return createSkill(name, root)
	case KindInstruction:
		if opts.ApplyTo == "" {
			return nil, fmt.Errorf("%w: instructions need an apply-to glob pattern", ErrMissingInput)
		}
		res, err := createFile(name, root, instructionSuffix, "instruction.md.tmpl", NewScaffoldData(name, opts.ApplyTo))
		if err != nil {
			return nil, err
		}
		if !doublestar.ValidatePattern(opts.ApplyTo) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("applyTo %q is not a valid glob pattern; it was written as given", opts.ApplyTo))
		}
		return res, nil
	case KindAgent:
		return createFile(name, root, agentSuffix, "agent.md.tmpl", NewScaffoldData(name, ""))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// createSkill builds <root>/<name>/ with SKILL.md, references/ and README.md.
func createSkill(name, root string) (*Result, error) {
	dir := filepath.Join(root, name)
	if _, err := os.Lstat(dir); err == nil {
		return nil, fmt.Errorf("%w: skill directory %s", ErrPathConflict, dir)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: skill directory %s", ErrPathConflict, dir)
		}
		return nil, fmt.Errorf("creating skill directory %s: %w", dir, err)
	}

	data := NewScaffoldData(name, "")
	result := &Result{Path: dir}

	if err := render(path.Join("skill", entryPoint+".tmpl"), filepath.Join(dir, entryPoint), data); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, filepath.Join(name, entryPoint))

	refs := filepath.Join(dir, referencesDir)
	if err := os.Mkdir(refs, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", refs, err)
	}
	result.Files = append(result.Files, filepath.Join(name, referencesDir)+string(filepath.Separator))

	readme := filepath.Join(dir, readmeFile)
	if _, err := os.Stat(readme); errors.Is(err, fs.ErrNotExist) {
		if err := render(path.Join("skill", readmeFile+".tmpl"), readme, data); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, filepath.Join(name, readmeFile))
	}

	return result, nil
}

// createFile writes a single templated markdown file at <root>/<name><suffix>.
func createFile(name, root, suffix, tmplName string, data *ScaffoldData) (*Result, error) {
	target := filepath.Join(root, name+suffix)
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrPathConflict, target)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	if err := render(tmplName, target, data); err != nil {
		return nil, err
	}

	return &Result{
		Path:  target,
		Files: []string{name + suffix},
	}, nil
}

// render executes an embedded template and writes the output atomically.
func render(tmplName, outPath string, data *ScaffoldData) error {
	tmplPath := path.Join("scaffolds", tmplName)
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(tmplName).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplName, err)
	}

	if err := platform.WriteFileAtomic(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
