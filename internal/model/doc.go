// Package model defines the domain types and value objects for the
// seriesgen CLI.
//
// This package contains pure data structures with no external dependencies.
// Series and Manifest are the JSON documents handed to the viewer; they are
// built once per invocation from a directory scan and never updated.
//
// The package also defines exit codes (ExitCode), the error taxonomy
// (ErrorKind), a custom error type (CLIError) that carries both, and the
// sentinel errors shared by the scanning and manifest packages.
package model
