package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show the manual, or usage for one command",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, append([]string{"help"}, args...))
	},
}
