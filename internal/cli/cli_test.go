package cli

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/skillkit/internal/manifest"
	"github.com/agentx-labs/skillkit/internal/naming"
	"github.com/agentx-labs/skillkit/internal/packager"
	"github.com/agentx-labs/skillkit/internal/scaffold"
	"github.com/fatih/color"
	"github.com/spf13/viper"
)

// runCLI executes the root command in-process with a sandboxed config home.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	createPath = ""
	instructionApplyTo = ""
	packageOut = ""
	validateStrict = false
	versionShort = false
	versionJSON = false
	debug = false
	color.NoColor = true
	viper.Reset()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		viper.Reset()
	})

	err := Execute("1.0.0", "abc123", "2026-01-01")
	return stdout.String(), stderr.String(), err
}

func sandbox(t *testing.T) string {
	t.Helper()
	t.Setenv("SKILLKIT_HOME", t.TempDir())
	t.Setenv("SKILLKIT_DIST_DIR", "")
	t.Setenv("SKILLKIT_INSTRUCTIONS_DIR", "")
	t.Setenv("SKILLKIT_AGENTS_DIR", "")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLifecycle(t *testing.T) {
	dir := sandbox(t)

	stdout, _, err := runCLI(t, "create", "skill", "pdf-processing")
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if !strings.Contains(stdout, "✓ Created skill at pdf-processing") {
		t.Errorf("unexpected create output: %q", stdout)
	}
	skill, err := os.ReadFile(filepath.Join(dir, "pdf-processing", "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(skill), "name: pdf-processing") {
		t.Errorf("SKILL.md missing name: %s", skill)
	}

	stdout, stderr, err := runCLI(t, "validate", "pdf-processing", "--strict")
	if err != nil {
		t.Fatalf("validate: %v (stderr %q)", err, stderr)
	}
	if !strings.Contains(stdout, "is valid") {
		t.Errorf("unexpected validate output: %q", stdout)
	}

	stdout, _, err = runCLI(t, "package", "pdf-processing")
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	archive := filepath.Join(dir, "dist", "pdf-processing.zip")
	if !strings.Contains(stdout, filepath.Join("dist", "pdf-processing.zip")) {
		t.Errorf("unexpected package output: %q", stdout)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer r.Close()
	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	for _, want := range []string{"pdf-processing/SKILL.md", "pdf-processing/README.md"} {
		if !names[want] {
			t.Errorf("archive missing %s (have %v)", want, names)
		}
	}

	_, stderr, err = runCLI(t, "package", "pdf-processing")
	if !errors.Is(err, packager.ErrArchiveConflict) {
		t.Errorf("second package error = %v, want ErrArchiveConflict", err)
	}
	if !strings.Contains(stderr, "✗ Error:") {
		t.Errorf("stderr should carry the failure marker, got %q", stderr)
	}
}

func TestCreateSkillInvalidName(t *testing.T) {
	dir := sandbox(t)

	_, stderr, err := runCLI(t, "create", "skill", "PDF_Processing")
	if !errors.Is(err, naming.ErrInvalidIdentifier) {
		t.Fatalf("error = %v, want ErrInvalidIdentifier", err)
	}
	if !strings.Contains(stderr, "invalid identifier") {
		t.Errorf("stderr = %q", stderr)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no files should be created, found %d", len(entries))
	}
}

func TestCreateSkillWithPath(t *testing.T) {
	dir := sandbox(t)

	if _, _, err := runCLI(t, "create", "skill", "my-skill", "--path", "skills"); err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "skills", "my-skill", "SKILL.md")); err != nil {
		t.Errorf("SKILL.md not created under --path: %v", err)
	}

	_, _, err := runCLI(t, "create", "skill", "my-skill", "--path", "skills")
	if !errors.Is(err, scaffold.ErrPathConflict) {
		t.Errorf("second create error = %v, want ErrPathConflict", err)
	}
}

func TestCreateKindDirFlags(t *testing.T) {
	dir := sandbox(t)

	runs := []struct {
		args []string
		want string
	}{
		{[]string{"create", "skill", "my-skill", "--skills-dir", ".agent/skills"}, filepath.Join(".agent", "skills", "my-skill", "SKILL.md")},
		{[]string{"create", "instruction", "go-style", "--apply-to", "**/*.go", "--instructions-dir", "docs/instructions"}, filepath.Join("docs", "instructions", "go-style.instructions.md")},
		{[]string{"create", "agent", "release-manager", "--agents-dir", "docs/agents"}, filepath.Join("docs", "agents", "release-manager.agent.md")},
	}
	for _, r := range runs {
		if _, _, err := runCLI(t, r.args...); err != nil {
			t.Fatalf("%v: %v", r.args, err)
		}
		if _, err := os.Stat(filepath.Join(dir, r.want)); err != nil {
			t.Errorf("%v: expected %s: %v", r.args, r.want, err)
		}
	}
}

func TestCreateInstructionDefaultsToRepoRoot(t *testing.T) {
	dir := sandbox(t)
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "pkg", "api")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	if _, _, err := runCLI(t, "create", "instruction", "go-style", "--apply-to", "**/*.go"); err != nil {
		t.Fatalf("create instruction: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".github", "instructions", "go-style.instructions.md"))
	if err != nil {
		t.Fatalf("instruction file not at repo root: %v", err)
	}
	if !strings.Contains(string(data), `applyTo: "**/*.go"`) {
		t.Errorf("applyTo missing from %s", data)
	}
}

func TestCreateInstructionRequiresApplyTo(t *testing.T) {
	sandbox(t)

	_, _, err := runCLI(t, "create", "instruction", "go-style", "--path", "instr")
	if !errors.Is(err, scaffold.ErrMissingInput) {
		t.Errorf("error = %v, want ErrMissingInput", err)
	}
}

func TestCreateInstructionBadGlobWarns(t *testing.T) {
	sandbox(t)

	_, stderr, err := runCLI(t, "create", "instruction", "odd", "--apply-to", "src/[a-", "--path", "instr")
	if err != nil {
		t.Fatalf("create instruction: %v", err)
	}
	if !strings.Contains(stderr, "⚠") {
		t.Errorf("expected a warning on stderr, got %q", stderr)
	}
}

func TestCreateAgentUsesConfiguredDir(t *testing.T) {
	dir := sandbox(t)
	t.Setenv("SKILLKIT_AGENTS_DIR", filepath.Join(dir, "custom-agents"))

	if _, _, err := runCLI(t, "create", "agent", "release-manager"); err != nil {
		t.Fatalf("create agent: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom-agents", "release-manager.agent.md")); err != nil {
		t.Errorf("agent file not in configured dir: %v", err)
	}
}

func TestValidateLintWarnings(t *testing.T) {
	dir := sandbox(t)
	skillDir := filepath.Join(dir, "my-skill")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: my-skill\ndescription: Does things\nauthor: someone\n---\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, "validate", "my-skill")
	if err != nil {
		t.Fatalf("validate without --strict: %v", err)
	}
	if !strings.Contains(stderr, "⚠") {
		t.Errorf("expected lint warning, got %q", stderr)
	}

	_, _, err = runCLI(t, "validate", "my-skill", "--strict")
	if !errors.Is(err, manifest.ErrMalformedMetadata) {
		t.Errorf("validate --strict error = %v, want ErrMalformedMetadata", err)
	}
}

func TestValidateNameMismatch(t *testing.T) {
	dir := sandbox(t)
	if _, _, err := runCLI(t, "create", "skill", "my-skill"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "my-skill", "SKILL.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mutated := strings.Replace(string(data), "name: my-skill", "name: other-skill", 1)
	if err := os.WriteFile(path, []byte(mutated), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err = runCLI(t, "validate", "my-skill")
	if !errors.Is(err, manifest.ErrNameMismatch) {
		t.Errorf("error = %v, want ErrNameMismatch", err)
	}
}

func TestPackageExplicitOutputDir(t *testing.T) {
	dir := sandbox(t)
	if _, _, err := runCLI(t, "create", "skill", "my-skill"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "package", "my-skill", "out"); err != nil {
		t.Fatalf("package: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "my-skill.zip")); err != nil {
		t.Errorf("archive not in explicit output dir: %v", err)
	}
}

func TestPackageOutFlag(t *testing.T) {
	dir := sandbox(t)
	if _, _, err := runCLI(t, "create", "skill", "my-skill"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "package", "my-skill", "--out", "release"); err != nil {
		t.Fatalf("package --out: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "release", "my-skill.zip")); err != nil {
		t.Errorf("archive not in --out dir: %v", err)
	}

	if _, _, err := runCLI(t, "package", "my-skill", "other", "--out", "release"); err == nil {
		t.Error("package with both [output-dir] and --out should fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "other")); !os.IsNotExist(err) {
		t.Error("nothing should be written when the output directory is ambiguous")
	}
}

func TestPackageConfiguredDistDir(t *testing.T) {
	dir := sandbox(t)
	t.Setenv("SKILLKIT_DIST_DIR", "build")
	if _, _, err := runCLI(t, "create", "skill", "my-skill"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "package", "my-skill"); err != nil {
		t.Fatalf("package: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "my-skill.zip")); err != nil {
		t.Errorf("archive not in configured dist dir: %v", err)
	}
}

func TestConfigSetGet(t *testing.T) {
	sandbox(t)

	if _, _, err := runCLI(t, "config", "set", "dist_dir", "artifacts"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	stdout, _, err := runCLI(t, "config", "get", "dist_dir")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(stdout) != "artifacts" {
		t.Errorf("config get = %q, want %q", stdout, "artifacts")
	}

	if _, _, err := runCLI(t, "config", "set", "nope", "x"); err == nil {
		t.Error("config set with unknown key should fail")
	}
}

func TestVersion(t *testing.T) {
	sandbox(t)

	stdout, _, err := runCLI(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "1.0.0" {
		t.Errorf("version --short = %q", stdout)
	}

	stdout, _, err = runCLI(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"commit": "abc123"`) {
		t.Errorf("version --json = %q", stdout)
	}
}
