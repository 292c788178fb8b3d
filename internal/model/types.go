// Package model defines the domain types for the seriesgen CLI.
//
// All entities in this package describe the viewer manifest format
// (series-manifest.json). These types are used throughout the application
// for passing data between the scanner, the manifest builder and the CLI.
package model

import (
	"errors"
	"fmt"
)

// OutputMode selects what the images command prints.
type OutputMode string

const (
	// ModeArray prints a bare JSON array of image filenames.
	ModeArray OutputMode = "array"

	// ModeSeries prints one complete series object.
	ModeSeries OutputMode = "series"
)

// String returns the string representation of OutputMode.
func (m OutputMode) String() string {
	return string(m)
}

// IsValid checks whether the OutputMode value is one of the
// predefined modes.
func (m OutputMode) IsValid() bool {
	switch m {
	case ModeArray, ModeSeries:
		return true
	default:
		return false
	}
}

// ParseOutputMode converts a string to an OutputMode. The match is exact:
// "Series" or "ARRAY" are rejected like any other unknown value.
func ParseOutputMode(s string) (OutputMode, error) {
	mode := OutputMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid mode: %q (valid: array, series)", s)
	}
	return mode, nil
}

// Series is one ordered stack of images plus the metadata the viewer shows
// for it. The viewer resolves each entry of Images against ImageBasePath.
//
// Field order matters: encoding/json emits keys in declaration order, and
// the manifest format lists description last.
type Series struct {
	// ID is the identifier the viewer uses to select the series.
	ID string `json:"id"`

	// Label is the human-readable name shown in the series picker.
	Label string `json:"label"`

	// ImageBasePath is the URL/path prefix joined with each image name.
	ImageBasePath string `json:"imageBasePath"`

	// Images holds filenames (not paths) in natural order. Duplicates are
	// kept as found; an emitted series never has an empty list.
	Images []string `json:"images"`

	// Description is optional free text and is omitted when empty.
	Description string `json:"description,omitempty"`
}

// Validate checks the invariants every emitted series must satisfy.
func (s *Series) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("series: id must not be empty")
	}
	if len(s.Images) == 0 {
		return fmt.Errorf("series %q: %w", s.ID, ErrNoImages)
	}
	for i, name := range s.Images {
		if name == "" {
			return fmt.Errorf("series %q: image at index %d is empty", s.ID, i)
		}
	}
	return nil
}

// Manifest is the top-level document the viewer loads.
type Manifest struct {
	// Series lists every series in the natural order of its study directory.
	Series []Series `json:"series"`
}

// Len returns the number of series in the manifest.
func (m *Manifest) Len() int {
	return len(m.Series)
}

// Sentinel errors shared by the scanning, manifest and CLI packages.
// Callers wrap them with context and test them with errors.Is.
var (
	ErrNotDirectory    = errors.New("not found or not a directory")
	ErrNoExtensions    = errors.New("no valid extensions provided")
	ErrNoImages        = errors.New("no matching images found")
	ErrNoStudies       = errors.New("no study directories matched")
	ErrNoSeries        = errors.New("no valid series found after scanning study directories")
	ErrMissingSeriesID = errors.New("--series-id is required in --mode series")
)

// ErrorKind classifies a fatal error for reporting. Every kind maps to the
// same exit status; the kind only tells the user which stage failed.
type ErrorKind string

const (
	// KindArgument covers missing or malformed options.
	KindArgument ErrorKind = "argument"

	// KindFilesystem covers missing paths, non-directories and I/O failures.
	KindFilesystem ErrorKind = "filesystem"

	// KindEmptyResult covers scans that found nothing to emit.
	KindEmptyResult ErrorKind = "empty-result"
)

// ClassifyError maps a wrapped sentinel error to its ErrorKind.
// Unknown errors are reported as filesystem errors, since everything else
// the tools do is a directory read or a file write.
func ClassifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNoExtensions), errors.Is(err, ErrMissingSeriesID):
		return KindArgument
	case errors.Is(err, ErrNoImages), errors.Is(err, ErrNoStudies), errors.Is(err, ErrNoSeries):
		return KindEmptyResult
	default:
		return KindFilesystem
	}
}

// ExitCode defines the process exit codes of the seriesgen commands.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates any fatal validation, filesystem or
	// empty-result error. Per-study skips never produce it.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Kind is the taxonomy bucket of the failure.
	Kind ErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, kind ErrorKind, message string) *CLIError {
	return &CLIError{Code: code, Kind: kind, Message: message}
}

// FromError wraps err as a general CLI failure whose message is err's own
// text. It returns nil for a nil err and passes an existing CLIError through.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}
	return &CLIError{Code: ExitGeneralError, Kind: ClassifyError(err), Err: err}
}
