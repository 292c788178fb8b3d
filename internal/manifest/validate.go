package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// ValidationError is one problem found in a manifest document.
type ValidationError struct {
	// Field is the JSON path of the offending value (e.g., "series[2].images[0]").
	Field string

	// Message describes what's wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// rawSeries mirrors the fields the viewer reads from a series entry. All
// fields are loosely typed because the viewer accepts hand-written
// manifests, not only the ones this tool generates.
type rawSeries struct {
	ID            any   `json:"id"`
	Label         any   `json:"label"`
	ImageBasePath any   `json:"imageBasePath"`
	Images        []any `json:"images"`
	ImagePattern  any   `json:"imagePattern"`
	Image         any   `json:"image"`
	Slices        any   `json:"slices"`
}

// Validate checks a manifest document against the rules the viewer applies
// when loading it and returns every problem found (empty = loadable).
//
// Checks performed:
//   - the document has a non-empty "series" array
//   - each entry has a non-empty id and label
//   - every entry of images is a non-empty string
//   - each entry has images, an imagePattern or a single image
//   - slices, when present with images, equals the number of images
//   - pattern-only entries carry a positive slices count
func Validate(data []byte) []ValidationError {
	var doc struct {
		Series json.RawMessage `json:"series"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []ValidationError{{Field: "(root)", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	var entries []json.RawMessage
	if len(doc.Series) == 0 || string(doc.Series) == "null" || json.Unmarshal(doc.Series, &entries) != nil {
		return []ValidationError{{Field: "series", Message: "manifest must contain a 'series' array"}}
	}
	if len(entries) == 0 {
		return []ValidationError{{Field: "series", Message: "manifest includes zero series"}}
	}

	var errs []ValidationError
	for i, raw := range entries {
		field := fmt.Sprintf("series[%d]", i)

		var entry rawSeries
		if err := json.Unmarshal(raw, &entry); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("invalid series entry: %v", err)})
			continue
		}
		errs = append(errs, validateEntry(field, &entry)...)
	}
	return errs
}

func validateEntry(field string, entry *rawSeries) []ValidationError {
	var errs []ValidationError

	if !nonEmptyString(entry.ID) {
		errs = append(errs, ValidationError{Field: field + ".id", Message: "id must be a non-empty string"})
	}
	if !nonEmptyString(entry.Label) {
		errs = append(errs, ValidationError{Field: field + ".label", Message: "label must be a non-empty string"})
	}

	for j, img := range entry.Images {
		if !nonEmptyString(img) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.images[%d]", field, j),
				Message: "image path must be a non-empty string",
			})
		}
	}

	hasImages := len(entry.Images) > 0
	hasPattern := nonEmptyString(entry.ImagePattern)
	hasImage := nonEmptyString(entry.Image)
	if !hasImages && !hasPattern && !hasImage {
		errs = append(errs, ValidationError{Field: field, Message: "series needs images, imagePattern or image"})
		return errs
	}

	slices, ok := positiveNumber(entry.Slices)
	switch {
	case hasImages && ok && slices != float64(len(entry.Images)):
		errs = append(errs, ValidationError{
			Field:   field + ".slices",
			Message: fmt.Sprintf("slices (%v) != images.length (%d)", slices, len(entry.Images)),
		})
	case !hasImages && !hasImage && !ok:
		errs = append(errs, ValidationError{Field: field + ".slices", Message: "pattern series needs a valid 'slices' value"})
	}
	return errs
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

// positiveNumber converts v the way the viewer's Number() call does and
// reports whether the result is a finite value above zero. Numeric strings
// count; surrounding whitespace is ignored.
func positiveNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case bool:
		if x {
			n = 1
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsInf(n, 0) || math.IsNaN(n) || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsExternalPath reports whether the viewer uses an image path as-is
// instead of joining it with imageBasePath.
func IsExternalPath(p string) bool {
	return strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		strings.HasPrefix(p, "/") ||
		strings.HasPrefix(p, "data:")
}

// ImagePath joins basePath and an image entry the way the viewer does.
func ImagePath(basePath, file string) string {
	if basePath == "" || IsExternalPath(file) {
		return file
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(file, "/")
}

// CheckFiles verifies that every image a manifest references exists on
// fsys, which must be rooted at the directory the viewer is served from.
// External paths (URLs, absolute paths, data URIs) are not checked.
// It returns one message per missing or unreadable file.
func CheckFiles(fsys billy.Filesystem, data []byte) ([]string, error) {
	var doc struct {
		Series []struct {
			ID            string   `json:"id"`
			ImageBasePath string   `json:"imageBasePath"`
			Images        []string `json:"images"`
		} `json:"series"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	var missing []string
	for _, s := range doc.Series {
		for _, img := range s.Images {
			p := ImagePath(s.ImageBasePath, img)
			if IsExternalPath(p) || strings.Contains(p, "://") {
				continue
			}
			info, err := fsys.Stat(path.Clean(p))
			switch {
			case err != nil:
				missing = append(missing, fmt.Sprintf("series %q: %s: %v", s.ID, p, err))
			case info.IsDir():
				missing = append(missing, fmt.Sprintf("series %q: %s: is a directory", s.ID, p))
			}
		}
	}
	return missing, nil
}
