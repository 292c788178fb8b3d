// Package manifest assembles viewer series and manifests from directory
// scans, encodes them as JSON, and checks existing manifests against the
// rules the viewer applies when it loads one.
//
// The multi-study build is single-pass: discover study directories, collect
// images per study, skip studies that have nothing to show, and keep the
// rest in natural order of their directory names.
package manifest
