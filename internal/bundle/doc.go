// Package bundle converts between a plugin project directory and its .opb
// bundle document, a self-contained JSON copy of plugin.json with every
// element's file contents and the project icon inlined.
//
// Bundle and Extract are inverses: extracting a bundle and bundling the
// result reproduces the original document, and bundling a project and
// extracting it reproduces the project's element files and its canonical
// manifest.
package bundle
