package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Check plugin.json and the element files",
	Long: `Validate plugin.json against its schema, then check that every declared
element file and icon.svg exists. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, []string{"validate"})
	},
}
