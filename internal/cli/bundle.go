package cli

import (
	"github.com/outline-labs/opc/internal/command"
	"github.com/spf13/cobra"
)

var (
	bundleOutput string
	bundleWatch  bool
	extractDest  string
)

func init() {
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "bundle file to write (default: <pluginID>.opb next to the project)")
	bundleCmd.Flags().BoolVarP(&bundleWatch, "watch", "w", false, "re-bundle whenever a project file changes")
	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "directory to create (default: ./<pluginID>)")
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(extractCmd)
}

var bundleCmd = &cobra.Command{
	Use:     "bundle",
	Aliases: []string{"b"},
	Short:   "Bundle the plugin to a .opb file",
	Long: `Read plugin.json and every element file, then write them as a single
JSON bundle. Nothing is written if any declared file is missing.

With --watch the project is bundled once and again after every change
until interrupted. Failed rebuilds are reported and watching continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, command.Bundle{Output: bundleOutput, Watch: bundleWatch})
	},
}

var extractCmd = &cobra.Command{
	Use:     "extract <file.opb> [dest]",
	Aliases: []string{"e"},
	Short:   "Recreate a plugin project from a .opb file",
	Long: `Write the project contained in a bundle to a new directory. The
destination must not exist. A failed extraction is not rolled back.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := append([]string{"extract"}, args...)
		if extractDest != "" && len(args) == 1 {
			argv = append(argv, extractDest)
		}
		return dispatch(cmd, argv)
	},
}

// run executes an already resolved command.
func run(cmd *cobra.Command, c command.Command) error {
	logger.Debug("running command", "name", c.Name(), "project", projectDir)
	out, err := newExecutor(cmd).Execute(cmd.Context(), c)
	printOutcome(cmd.OutOrStdout(), c, out)
	return err
}
