package scan

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/natsort"
)

// ErrBadPattern is returned for a study glob that path.Match rejects.
var ErrBadPattern = errors.New("invalid study glob")

// FindStudyDirs returns the names of the direct children of root that are
// directories and match the shell-style pattern, in natural order.
//
// Matching is done on child names only, so a pattern never reaches below
// root. As with shell globbing, names starting with "." only match when the
// pattern itself starts with ".". No match is reported as model.ErrNoStudies.
func FindStudyDirs(fsys billy.Filesystem, root, pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadPattern, pattern, err)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var studies []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(pattern, ".") {
			continue
		}
		if ok, _ := path.Match(pattern, name); !ok {
			continue
		}
		if entry.IsDir() || (entry.Mode()&os.ModeSymlink != 0 && IsDir(fsys, path.Join(root, name))) {
			studies = append(studies, name)
		}
	}

	if len(studies) == 0 {
		return nil, fmt.Errorf("%w '%s' in %s", model.ErrNoStudies, pattern, root)
	}
	natsort.Sort(studies)
	return studies, nil
}
