// Package cli defines the Cobra command tree for the opc CLI. Each file in
// this package registers one top-level command (create, add, bundle, etc.)
// with the root command. Commands build a command.Command, run it through
// command.Executor, and only handle flag parsing and output formatting.
package cli
