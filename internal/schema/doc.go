// Package schema compiles embedded JSON Schema documents and validates JSON
// instances against them, flattening the validator's error tree into a list
// of path/keyword/message issues suitable for terminal output.
package schema
