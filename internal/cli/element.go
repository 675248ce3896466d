package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
}

var addCmd = &cobra.Command{
	Use:     "add widget|node <id>",
	Aliases: []string{"a"},
	Short:   "Add a new widget or node to the plugin",
	Long: `Create the element's files and declare it in plugin.json.

A widget gets the directory <id>/ with <id>.html, <id>.css, <id>.js and
<id>.svg. A node gets <id>.js at the project root. Identifiers must not
start with an uppercase letter and must not contain '_', '-', '/', '\',
'.', ':', whitespace or control characters.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"widget", "node"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, append([]string{"add"}, args...))
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove widget|node <id>",
	Aliases: []string{"r"},
	Short:   "Remove a widget or node from the plugin",
	Long: `Drop the element from plugin.json, then delete its files.

The manifest is authoritative: if the files are already gone, or cannot
be deleted, the element is still removed and a warning is printed.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"widget", "node"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, append([]string{"remove"}, args...))
	},
}
