// Package platform provides the filesystem primitives opc builds on:
// atomic file replacement, existence checks, and permission management.
// On Windows, Unix permission bits are not applied.
package platform
