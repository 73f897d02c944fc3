// Package filesystem provides filesystem implementations for the
// cross-save tool.
//
// This package contains implementations of the types.FS interface.
// The link strategies in pkg/platform are deliberately not behind this
// interface: junction handling shells out to host utilities and is
// inherently bound to the real filesystem.
package filesystem
