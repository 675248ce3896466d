// Package watch re-runs an action when files in a plugin project change.
//
// Events are filtered through doublestar ignore and match patterns and
// coalesced over a debounce window; the callback receives the sorted set of
// changed project-relative paths. Callbacks run on the event loop, so they
// never overlap.
package watch
