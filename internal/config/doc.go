// Package config manages user-level settings stored at ~/.opc/config.yaml:
// default manifest metadata for new projects, bundle worker and output
// settings, and the watch-mode debounce interval. Every key can also be
// set through an OPC_-prefixed environment variable.
package config
