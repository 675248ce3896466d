// Package scaffold generates plugin projects and element stubs from
// embedded templates. It powers "opc create" and supplies the script
// stubs written by "opc add".
package scaffold
