package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/outline-labs/opc/internal/command"
	"github.com/outline-labs/opc/internal/element"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List declared widgets and nodes",
	Long:    `List every element declared in plugin.json and whether its files exist.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if !listJSON {
		return run(cmd, command.List{})
	}
	out, err := newExecutor(cmd).Execute(cmd.Context(), command.List{})
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(out.Listing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling listing: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printListing(w io.Writer, l *element.Listing) {
	if l == nil {
		return
	}
	fmt.Fprintln(w, TitleStyle.Render(l.PluginID))
	if len(l.Widgets) == 0 && len(l.Nodes) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No widgets or nodes declared."))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tNAME\tFILES")
	for _, s := range append(append([]element.Status{}, l.Widgets...), l.Nodes...) {
		files := "ok"
		if !s.Complete() {
			files = "missing " + strings.Join(s.Missing, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Kind, s.ID, s.Name, files)
	}
	tw.Flush()

	if !l.Icon {
		fmt.Fprintln(w, WarningStyle.Render("warning: ")+"icon.svg is missing")
	}
}
