// Package command turns opc invocations into typed values and runs them.
//
// Parse resolves the positional grammar (create, add, remove, bundle,
// extract, validate, list, version, help) into one of the Command
// variants; Executor dispatches a Command to the bundle, element, and
// scaffold packages against an explicit project root.
package command
