package scan

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/natsort"
)

// CollectImages lists the regular files directly inside dir whose
// extension is in exts and returns their names in natural order.
//
// Symlinks are followed; a dangling link is ignored. An empty result is
// reported as model.ErrNoImages so callers can tell "nothing matched"
// apart from an I/O failure.
func CollectImages(fsys billy.Filesystem, dir string, exts ExtensionSet) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if !exts.Contains(Extension(entry.Name())) {
			continue
		}
		regular, err := isRegular(fsys, dir, entry)
		if err != nil {
			return nil, err
		}
		if regular {
			images = append(images, entry.Name())
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s", model.ErrNoImages, dir)
	}
	natsort.Sort(images)
	return images, nil
}

func isRegular(fsys billy.Filesystem, dir string, entry os.FileInfo) (bool, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode().IsRegular(), nil
	}
	info, err := fsys.Stat(path.Join(dir, entry.Name()))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path.Join(dir, entry.Name()), err)
	}
	return info.Mode().IsRegular(), nil
}

// RequireDir returns model.ErrNotDirectory when dir is missing or is not a
// directory. Other stat failures are returned as they are.
func RequireDir(fsys billy.Filesystem, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ErrNotDirectory
		}
		return err
	}
	if !info.IsDir() {
		return model.ErrNotDirectory
	}
	return nil
}

// IsDir reports whether dir exists and is a directory.
func IsDir(fsys billy.Filesystem, dir string) bool {
	return RequireDir(fsys, dir) == nil
}
