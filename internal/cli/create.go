package cli

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/skillkit/internal/config"
	"github.com/agentx-labs/skillkit/internal/platform"
	"github.com/agentx-labs/skillkit/internal/scaffold"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Shared flag for all create subcommands.
var createPath string

var instructionApplyTo string

func init() {
	createCmd.PersistentFlags().StringVar(&createPath, "path", "", "Directory to create the asset in")
	rootCmd.AddCommand(createCmd)

	createCmd.AddCommand(createSkillCmd)
	createCmd.AddCommand(createInstructionCmd)
	createCmd.AddCommand(createAgentCmd)

	createInstructionCmd.Flags().StringVar(&instructionApplyTo, "apply-to", "", `Glob the instruction applies to (required, e.g. "**/*.go")`)

	// Per-kind spellings of --path.
	createSkillCmd.Flags().StringVar(&createPath, "skills-dir", "", "Alias for --path")
	createInstructionCmd.Flags().StringVar(&createPath, "instructions-dir", "", "Alias for --path")
	createAgentCmd.Flags().StringVar(&createPath, "agents-dir", "", "Alias for --path")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new asset from a template",
	Long:  `Create a new skill, instruction, or agent from built-in templates. Existing paths are never overwritten.`,
}

// ─── create skill ──────────────────────────────────────────────────

var createSkillCmd = &cobra.Command{
	Use:   "skill <name>",
	Short: "Scaffold a new skill directory",
	Long: `Scaffold <path>/<name>/ containing SKILL.md, README.md and an empty references/ folder.

Example:
  skillkit create skill pdf-processing --path skills
  skillkit create skill pdf-processing --skills-dir .agent/skills`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := createPath
		if root == "" {
			root = "."
		}
		result, err := scaffold.Create(scaffold.KindSkill, args[0], root, scaffold.Options{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printResult(cmd, "skill", result)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Fill in the description and sections of SKILL.md")
		fmt.Fprintf(out, "  2. Run 'skillkit validate %s'\n", result.Path)
		return nil
	},
}

// ─── create instruction ────────────────────────────────────────────

var createInstructionCmd = &cobra.Command{
	Use:   "instruction <topic>",
	Short: "Scaffold a new instructions file",
	Long: `Scaffold <path>/<topic>.instructions.md. Without --path the file goes to
.github/instructions/ at the repository root (or the instructions_dir setting).

Example:
  skillkit create instruction go-style --apply-to "**/*.go"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := config.Resolve(createPath, config.KeyInstructionsDir, defaultGitHubDir("instructions"))
		result, err := scaffold.Create(scaffold.KindInstruction, args[0], root, scaffold.Options{ApplyTo: instructionApplyTo})
		if err != nil {
			return err
		}
		printResult(cmd, "instruction", result)
		return nil
	},
}

// ─── create agent ──────────────────────────────────────────────────

var createAgentCmd = &cobra.Command{
	Use:   "agent <role>",
	Short: "Scaffold a new agent file",
	Long: `Scaffold <path>/<role>.agent.md. Without --path the file goes to
.github/agents/ at the repository root (or the agents_dir setting).

Example:
  skillkit create agent release-manager`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := config.Resolve(createPath, config.KeyAgentsDir, defaultGitHubDir("agents"))
		result, err := scaffold.Create(scaffold.KindAgent, args[0], root, scaffold.Options{})
		if err != nil {
			return err
		}
		printResult(cmd, "agent", result)
		return nil
	},
}

// ─── Helpers ───────────────────────────────────────────────────────

// defaultGitHubDir returns <repo-root>/.github/<sub>.
func defaultGitHubDir(sub string) string {
	root := platform.RepoRootFromCwd()
	log.Debug("Resolved repository root", "root", root)
	return filepath.Join(root, ".github", sub)
}

func printResult(cmd *cobra.Command, kind string, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	printSuccess(out, "Created %s at %s", kind, result.Path)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		printWarning(cmd.ErrOrStderr(), w)
	}
}
