package cli

import (
	"errors"
	"fmt"

	"github.com/agentx-labs/skillkit/internal/config"
	"github.com/agentx-labs/skillkit/internal/packager"
	"github.com/spf13/cobra"
)

var packageOut string

func init() {
	packageCmd.Flags().StringVar(&packageOut, "out", "", "Output directory (same as the [output-dir] argument)")
	rootCmd.AddCommand(packageCmd)
}

var packageCmd = &cobra.Command{
	Use:   "package <skill-dir> [output-dir]",
	Short: "Validate a skill and bundle it into a zip archive",
	Long: `Validate <skill-dir>, then write <output-dir>/<skill-name>.zip containing every
regular file under the skill, prefixed with the skill's name. Symlinks and
.DS_Store files are skipped. An existing archive is never overwritten.

The output directory is [output-dir] or --out, else the dist_dir setting,
else ./dist.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := packageOut
		if len(args) == 2 {
			if packageOut != "" {
				return errors.New("output directory given both as argument and --out")
			}
			outDir = args[1]
		}
		outDir = config.Resolve(outDir, config.KeyDistDir, packager.DefaultOutputDir)

		result, err := packager.Package(args[0], outDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Packaged %s", result.ArchivePath)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		return nil
	},
}
