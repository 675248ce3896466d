package cli

import (
	"fmt"

	"github.com/outline-labs/opc/internal/branding"
	"github.com/outline-labs/opc/internal/command"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit, and build date of this binary. Running
` + branding.CLIName() + ` with no arguments prints the same information.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	switch {
	case versionShort:
		fmt.Fprintln(w, buildVersion)
		return nil
	case versionJSON:
		data, err := manifest.EncodeJSON(command.BuildInfo{
			Version: buildVersion,
			Commit:  buildCommit,
			Date:    buildDate,
		})
		if err != nil {
			return fmt.Errorf("encoding version info: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return run(cmd, command.Version{})
	}
}
