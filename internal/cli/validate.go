package cli

import (
	"fmt"

	"github.com/agentx-labs/skillkit/internal/manifest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var validateStrict bool

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on frontmatter lint issues (unknown keys, bad metadata)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <skill-dir>",
	Short: "Validate a skill directory",
	Long: `Check that a directory contains SKILL.md with a frontmatter block whose name
matches the directory and whose description is 1-1024 characters without
angle brackets. The first violation is reported.

Lint issues (keys outside the Agent Skills set, non-semver metadata.version)
are printed as warnings, or fail the command with --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := manifest.ValidateSkill(dir); err != nil {
			return err
		}

		lint, err := manifest.Lint(dir)
		if err != nil {
			return err
		}
		log.Debug("Lint finished", "dir", dir, "issues", len(lint.Issues))
		for _, issue := range lint.Issues {
			printWarning(cmd.ErrOrStderr(), issue.String())
		}
		if validateStrict && !lint.Clean() {
			return fmt.Errorf("%w: %d lint issue(s) in %s", manifest.ErrMalformedMetadata, len(lint.Issues), dir)
		}

		printSuccess(cmd.OutOrStdout(), "Skill %s is valid", dir)
		return nil
	},
}
