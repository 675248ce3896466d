// Package issue defines the error taxonomy shared by every opc operation.
// Each failure carries a Kind plus enough context (element identifier,
// offending path, reason) for the user to fix the condition and re-run.
// OrphanedFilesWarning is the only non-fatal kind; it is reported alongside
// a successful result rather than returned as the operation error.
package issue
