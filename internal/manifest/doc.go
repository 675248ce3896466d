// Package manifest models plugin.json, the reference structure of an OUTLINE
// plugin project: identity metadata plus ordered widget and node
// declarations. It loads and saves the manifest, enforces identifier rules
// and uniqueness, derives display names, and validates documents against an
// embedded JSON Schema. The package never touches element files; keeping
// the manifest and the filesystem in step is the job of package element.
package manifest
