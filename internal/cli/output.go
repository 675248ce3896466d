package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/outline-labs/opc/internal/branding"
	"github.com/outline-labs/opc/internal/command"
	"github.com/outline-labs/opc/internal/issue"
)

// printOutcome writes a command result. Version and help output is printed
// verbatim; everything else gets a status line followed by its files,
// details, and warnings.
func printOutcome(w io.Writer, c command.Command, out *command.Outcome) {
	if out == nil {
		return
	}
	switch c.(type) {
	case command.Version, command.Help:
		fmt.Fprintln(w, out.Message)
		return
	case command.List:
		printListing(w, out.Listing)
		return
	}

	if out.Message != "" {
		fmt.Fprintln(w, SuccessStyle.Render("✓")+" "+out.Message)
	}
	for _, f := range out.Files {
		fmt.Fprintln(w, "  "+PathStyle.Render(f))
	}
	for _, d := range out.Details {
		fmt.Fprintln(w, "  • "+d)
	}
	for _, msg := range out.Warnings {
		fmt.Fprintln(w, WarningStyle.Render("warning: ")+msg)
	}
}

// errorHandler renders errors returned by commands, adding the hint for
// classified failures.
func errorHandler(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, formatError(err))
}

func formatError(err error) string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Error: ") + err.Error())

	hint := ""
	var ie *issue.Error
	switch {
	case errors.As(err, &ie):
		hint = issue.Suggestion(ie.Kind)
	case errors.Is(err, command.ErrUsage):
		hint = "Run '" + branding.CLIName() + " help' for usage."
	}
	if hint != "" {
		b.WriteString("\n" + hintStyle.Render(hint))
	}
	return b.String()
}
