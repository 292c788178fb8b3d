package manifest

import (
	"path/filepath"
	"strings"
)

// StripPrefix removes prefix from the start of value when prefix is
// non-empty and present.
func StripPrefix(value, prefix string) string {
	if prefix == "" {
		return value
	}
	return strings.TrimPrefix(value, prefix)
}

// JoinURLPath joins a URL path prefix and a relative part with exactly one
// slash. Trailing slashes are trimmed from prefix, leading and trailing
// slashes from suffix; when either side ends up empty the other is returned.
func JoinURLPath(prefix, suffix string) string {
	base := strings.TrimRight(prefix, "/")
	tail := strings.Trim(suffix, "/")
	switch {
	case base != "" && tail != "":
		return base + "/" + tail
	case base != "":
		return base
	default:
		return tail
	}
}

// DefaultImageBasePath derives imageBasePath for a directory when none is
// given. A directory inside viewerRoot becomes "./<relative path>"; any
// other directory is returned as given, in slash form.
func DefaultImageBasePath(imagesDir, viewerRoot string) string {
	dir, err := resolve(imagesDir)
	if err != nil {
		return filepath.ToSlash(imagesDir)
	}
	root, err := resolve(viewerRoot)
	if err != nil {
		return filepath.ToSlash(imagesDir)
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(imagesDir)
	}
	if rel == "." {
		return "."
	}
	return "./" + filepath.ToSlash(rel)
}

// resolve returns the absolute form of p with symlinks evaluated where the
// path exists.
func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
