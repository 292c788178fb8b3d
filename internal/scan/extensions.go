package scan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shinji-kodama/seriesgen/internal/model"
)

// DefaultExtensions is the extension list both commands use when
// --extensions is not given.
const DefaultExtensions = "png,webp,jpg,jpeg"

// ExtensionSet holds lower-cased extensions without the leading dot.
type ExtensionSet map[string]struct{}

// ParseExtensions normalizes a comma-separated extension list such as
// "PNG, .jpg,webp". Entries are trimmed, lower-cased and stripped of
// leading dots; entries that end up empty are dropped.
func ParseExtensions(csv string) (ExtensionSet, error) {
	set := make(ExtensionSet)
	for _, raw := range strings.Split(csv, ",") {
		ext := strings.TrimLeft(strings.ToLower(strings.TrimSpace(raw)), ".")
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w (got %q)", model.ErrNoExtensions, csv)
	}
	return set, nil
}

// MustParseExtensions is ParseExtensions for constant input.
func MustParseExtensions(csv string) ExtensionSet {
	set, err := ParseExtensions(csv)
	if err != nil {
		panic(err)
	}
	return set
}

// Contains reports whether ext (already lower-cased, no dot) is allowed.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[ext]
	return ok
}

// String returns the extensions sorted and comma-joined.
func (s ExtensionSet) String() string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ",")
}

// Extension returns the lower-cased suffix of a filename without its dot.
// A leading dot does not start a suffix (".png" has none) and neither does
// a trailing one ("scan." has none).
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
