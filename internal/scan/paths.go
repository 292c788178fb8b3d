package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths of the form "~user" are returned unchanged, as is every path when
// the home directory cannot be determined.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	return filepath.Join(home, p[1:])
}

// DirFS returns a filesystem rooted at dir on the local disk. Paths passed
// to it are relative to dir; "." is dir itself.
func DirFS(dir string) (billy.Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return osfs.New(abs), nil
}

// FileFS returns a filesystem rooted at the volume holding name, together
// with name's slash-separated path on it. Output files use it because their
// parent directories may not exist yet.
func FileFS(name string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, "", err
	}
	vol := filepath.VolumeName(abs)
	return osfs.New(vol + string(filepath.Separator)), filepath.ToSlash(abs[len(vol):]), nil
}
