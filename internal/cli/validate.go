// validate.go implements the "seriesgen validate" command.
//
// The validate command checks an existing series-manifest.json against the
// rules the viewer applies when loading it, and optionally verifies that
// every referenced image exists on disk.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seriesgen/internal/manifest"
	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// validateFlags holds the flag values for the validate command.
type validateFlags struct {
	checkFiles bool   // --check-files
	viewerRoot string // --viewer-root (defaults to the manifest's directory)
}

// NewValidateCommand creates the "validate" cobra command.
func NewValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check a series manifest the way the viewer loads it",
		Long: `Check a series-manifest.json for the problems that would make the viewer
reject it: a missing series array, series without id or label, empty image
names, and slice counts that disagree with the image list.

With --check-files every image is also resolved against the viewer root
(the manifest's directory by default) and must exist. Absolute paths and
URLs are not checked.

Examples:
  seriesgen validate viewer/series-manifest.json
  seriesgen validate --check-files viewer/series-manifest.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.checkFiles, "check-files", false, "Also verify that every referenced image exists")
	cmd.Flags().StringVar(&flags.viewerRoot, "viewer-root", "",
		"Directory image paths are resolved against (default: the manifest's directory)")

	return cmd
}

// runValidate reads the manifest, reports every problem found, and fails
// when there was at least one.
func runValidate(cmd *cobra.Command, manifestArg string, flags *validateFlags) error {
	log := logger(cmd)
	stderr := cmd.ErrOrStderr()

	name := scan.ExpandHome(manifestArg)
	fsys, p, err := scan.FileFS(name)
	if err != nil {
		return model.FromError(fmt.Errorf("manifest %s: %w", name, err))
	}
	data, err := util.ReadFile(fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.FromError(fmt.Errorf("manifest not found: %s: %w", name, err))
		}
		return model.FromError(fmt.Errorf("read %s: %w", name, err))
	}

	problems := manifest.Validate(data)
	for _, problem := range problems {
		printError(stderr, &problem)
	}

	// The file check needs a parseable series array.
	if len(problems) == 0 && flags.checkFiles {
		root := flags.viewerRoot
		if root == "" {
			root = filepath.Dir(name)
		}
		root = scan.ExpandHome(root)
		log.Debug("checking image files", "viewerRoot", root)

		rootFS, err := scan.DirFS(root)
		if err != nil {
			return model.FromError(fmt.Errorf("viewer root %s: %w", root, err))
		}
		if err := scan.RequireDir(rootFS, "."); err != nil {
			return model.FromError(fmt.Errorf("viewer root %w: %s", err, root))
		}
		missing, err := manifest.CheckFiles(rootFS, data)
		if err != nil {
			return model.FromError(err)
		}
		for _, m := range missing {
			fmt.Fprintf(stderr, "Error: images: %s\n", m)
		}
		if len(missing) > 0 {
			return model.NewCLIError(model.ExitGeneralError, model.KindFilesystem,
				fmt.Sprintf("%s: %d missing image file(s)", name, len(missing)))
		}
	}

	if len(problems) > 0 {
		return model.NewCLIError(model.ExitGeneralError, model.KindArgument,
			fmt.Sprintf("%s: %d problem(s) found", name, len(problems)))
	}

	series, err := seriesCount(data)
	if err != nil {
		return model.FromError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %d series\n", series)
	return nil
}

// seriesCount returns the length of the series array of a manifest that
// already passed manifest.Validate.
func seriesCount(data []byte) (int, error) {
	var m model.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("parse manifest: %w", err)
	}
	return m.Len(), nil
}
