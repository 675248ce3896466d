// Package element adds and removes widgets and nodes in a plugin project,
// keeping plugin.json and the conventional file layout in step.
//
// Adds write files before updating the manifest, so an interrupted add
// leaves an orphaned file or directory rather than a manifest entry that
// breaks bundling. Removes update the manifest first; files that cannot be
// deleted are reported as warnings, never as failures.
package element
