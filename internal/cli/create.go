package cli

import "github.com/spf13/cobra"

var createBlank bool

func init() {
	createCmd.Flags().BoolVar(&createBlank, "blank", false, "skip the sample widget and node")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"c"},
	Short:   "Create the file tree for a new plugin",
	Long: `Create ./<name> containing plugin.json and icon.svg. Unless --blank is
given, a sample widget and a sample node are added as well.

Manifest metadata (author, description, version, category) comes from the
user configuration when set; see 'config set'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := []string{"create", args[0]}
		if createBlank {
			argv = append(argv, "--blank")
		}
		return dispatch(cmd, argv)
	},
}
