package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// Defaults for the manifest command.
const (
	DefaultAssetsDir      = "viewer/assets"
	DefaultStudyGlob      = "ID_*"
	DefaultIDPrefix       = "ID_"
	DefaultBasePathPrefix = "./assets"
)

// Options controls how study directories become series.
type Options struct {
	// StudyGlob selects study directories among the direct children of
	// the assets directory.
	StudyGlob string

	// ImagesSubdir, when set, is appended to each study directory to
	// locate its images.
	ImagesSubdir string

	// Extensions is the set of accepted image extensions.
	Extensions scan.ExtensionSet

	// IDPrefix is stripped from a study directory name to form the series id.
	IDPrefix string

	// BasePathPrefix is joined with "<study>/<subdir>" to form imageBasePath.
	BasePathPrefix string
}

// DefaultOptions returns the options the manifest command starts from.
func DefaultOptions() Options {
	return Options{
		StudyGlob:      DefaultStudyGlob,
		Extensions:     scan.MustParseExtensions(scan.DefaultExtensions),
		IDPrefix:       DefaultIDPrefix,
		BasePathPrefix: DefaultBasePathPrefix,
	}
}

// SkipReason says why a study produced no series.
type SkipReason string

const (
	// SkipMissingDir means the images directory does not exist.
	SkipMissingDir SkipReason = "missing images dir"

	// SkipNoImages means the images directory holds no matching files.
	SkipNoImages SkipReason = "no matching images in"
)

// Skip records a study that was left out of the manifest. Dir is the
// images directory as a path on the scanned filesystem.
type Skip struct {
	Study  string
	Dir    string
	Reason SkipReason
}

// String renders the skip the way the command prints it after "Warning: ".
func (s Skip) String() string {
	return s.Format(s.Dir)
}

// Format is String with dir shown in place of Dir, for callers that scan
// a filesystem rooted somewhere other than the path the user typed.
func (s Skip) Format(dir string) string {
	if s.Reason == SkipMissingDir {
		return fmt.Sprintf("skipping %s (%s: %s)", s.Study, s.Reason, dir)
	}
	return fmt.Sprintf("skipping %s (%s %s)", s.Study, s.Reason, dir)
}

// Result is the outcome of a Build.
type Result struct {
	Manifest model.Manifest
	Skipped  []Skip
}

// Build scans assetsDir on fsys and assembles one series per study
// directory that has images.
//
// Missing image directories and empty studies are recorded in
// Result.Skipped and do not stop the build. When no series survives,
// Build returns the result together with model.ErrNoSeries so the caller
// can still report the skips.
func Build(fsys billy.Filesystem, assetsDir string, opts Options) (*Result, error) {
	if len(opts.Extensions) == 0 {
		return nil, model.ErrNoExtensions
	}
	if err := scan.RequireDir(fsys, assetsDir); err != nil {
		return nil, fmt.Errorf("assets_dir %w: %s", err, assetsDir)
	}

	studies, err := scan.FindStudyDirs(fsys, assetsDir, opts.StudyGlob)
	if err != nil {
		return nil, err
	}

	result := &Result{Manifest: model.Manifest{Series: make([]model.Series, 0, len(studies))}}
	for _, study := range studies {
		imagesDir := path.Join(assetsDir, study)
		if opts.ImagesSubdir != "" {
			imagesDir = path.Join(imagesDir, opts.ImagesSubdir)
		}

		if !scan.IsDir(fsys, imagesDir) {
			result.Skipped = append(result.Skipped, Skip{Study: study, Dir: imagesDir, Reason: SkipMissingDir})
			continue
		}

		images, err := scan.CollectImages(fsys, imagesDir, opts.Extensions)
		if errors.Is(err, model.ErrNoImages) {
			result.Skipped = append(result.Skipped, Skip{Study: study, Dir: imagesDir, Reason: SkipNoImages})
			continue
		}
		if err != nil {
			return nil, err
		}

		relative := strings.Trim(study+"/"+opts.ImagesSubdir, "/")
		result.Manifest.Series = append(result.Manifest.Series, model.Series{
			ID:            StripPrefix(study, opts.IDPrefix),
			Label:         study,
			ImageBasePath: JoinURLPath(opts.BasePathPrefix, relative),
			Images:        images,
		})
	}

	if len(result.Manifest.Series) == 0 {
		return result, model.ErrNoSeries
	}
	return result, nil
}
