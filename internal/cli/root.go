package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/outline-labs/opc/internal/branding"
	"github.com/outline-labs/opc/internal/command"
	"github.com/outline-labs/opc/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"

	// projectDir is the plugin project root, or the parent directory for
	// create and extract.
	projectDir string
	verbose    bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: branding.CLIName(),
		Level:  log.WarnLevel,
	})
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: TitleStyle.Render(branding.DisplayName()) + SubtitleStyle.Render(" - "+branding.Description()) + `

A plugin project is a directory holding plugin.json, icon.svg, one
directory per widget (<id>/<id>.html, .css, .js, .svg) and one script per
node (<id>.js). ` + branding.CLIName() + ` bundles a project into a single .opb file
and extracts bundles back into projects.

` + SubtitleStyle.Render("Examples:") + `
  ` + branding.CLIName() + ` create myPlugin          Scaffold ./myPlugin with a sample widget and node
  ` + branding.CLIName() + ` add widget lineChart     Add a widget to the project in the current directory
  ` + branding.CLIName() + ` bundle --watch           Re-bundle whenever a project file changes
  ` + branding.CLIName() + ` extract myPlugin.opb     Recreate ./myPlugin from a bundle`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "plugin project directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	)
}

// normalizeArgs accepts the single-dash "-blank" spelling of create's flag.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-blank" {
			a = "--blank"
		}
		out[i] = a
	}
	return out
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

func newExecutor(cmd *cobra.Command) *command.Executor {
	return &command.Executor{
		Root:   projectDir,
		Config: config.Defaults(),
		Build:  command.BuildInfo{Version: buildVersion, Commit: buildCommit, Date: buildDate},
		Logger: logger,
		Stdout: cmd.OutOrStdout(),
	}
}

// dispatch resolves argv with command.Parse and runs the result.
func dispatch(cmd *cobra.Command, argv []string) error {
	c, err := command.Parse(argv)
	if err != nil {
		return err
	}
	return run(cmd, c)
}
