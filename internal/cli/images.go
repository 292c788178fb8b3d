// images.go implements the "seriesgen images" command.
//
// The images command scans one directory of slice images and prints either
// the ordered filename array (for pasting into a manifest by hand) or a
// complete series object.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seriesgen/internal/manifest"
	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// DefaultViewerRoot is the directory imageBasePath is made relative to
// when --image-base-path is not given.
const DefaultViewerRoot = "viewer"

// imagesFlags holds the flag values for the images command.
type imagesFlags struct {
	mode          string // --mode: array or series
	seriesID      string // --series-id
	label         string // --label (defaults to the series id)
	description   string // --description
	imageBasePath string // --image-base-path (computed when empty)
	extensions    string // --extensions
	viewerRoot    string // --viewer-root
}

// NewImagesCommand creates the "images" cobra command.
func NewImagesCommand() *cobra.Command {
	flags := &imagesFlags{}

	cmd := &cobra.Command{
		Use:   "images <images_dir>",
		Short: "Print the ordered image list or a series object for one directory",
		Long: `Scan one image folder and output a JSON array (or a full series object)
for viewer/series-manifest.json.

Only files directly inside images_dir are considered. Extensions match
case-insensitively and names are ordered naturally.

Examples:
  seriesgen images viewer/assets/ID_001
  seriesgen images --mode series --series-id 001 --label "Axial T2" viewer/assets/ID_001
  seriesgen images --extensions png,tif scans/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImages(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", string(model.ModeArray),
		"Output only the images array (array) or a full series object (series)")
	cmd.Flags().StringVar(&flags.seriesID, "series-id", "", "Series id (required when --mode series)")
	cmd.Flags().StringVar(&flags.label, "label", "", "Series label (defaults to the series id)")
	cmd.Flags().StringVar(&flags.description, "description", "", "Optional series description (series mode only)")
	cmd.Flags().StringVar(&flags.imageBasePath, "image-base-path", "",
		"Path prefix used for imageBasePath (default: images_dir relative to --viewer-root)")
	cmd.Flags().StringVar(&flags.extensions, "extensions", scan.DefaultExtensions,
		"Comma-separated file extensions to include")
	cmd.Flags().StringVar(&flags.viewerRoot, "viewer-root", DefaultViewerRoot,
		"Viewer directory used to compute the default imageBasePath")

	return cmd
}

// runImages validates the options, scans the directory and prints the
// requested JSON document.
func runImages(cmd *cobra.Command, imagesArg string, flags *imagesFlags) error {
	log := logger(cmd)

	// Step 1: Argument errors are reported before touching the disk.
	mode, err := model.ParseOutputMode(flags.mode)
	if err != nil {
		return argumentError(err)
	}
	if mode == model.ModeSeries && flags.seriesID == "" {
		return argumentError(model.ErrMissingSeriesID)
	}

	// Step 2: The images directory must exist.
	imagesDir := scan.ExpandHome(imagesArg)
	fsys, err := scan.DirFS(imagesDir)
	if err != nil {
		return model.FromError(fmt.Errorf("images_dir %s: %w", imagesDir, err))
	}
	if err := scan.RequireDir(fsys, "."); err != nil {
		return model.FromError(fmt.Errorf("images_dir %w: %s", err, imagesDir))
	}

	exts, err := scan.ParseExtensions(flags.extensions)
	if err != nil {
		return argumentError(err)
	}
	log.Debug("scanning images", "dir", imagesDir, "extensions", exts.String(), "mode", mode)

	// Step 3: Collect and print.
	if mode == model.ModeArray {
		images, err := scan.CollectImages(fsys, ".", exts)
		if err != nil {
			return collectError(imagesDir, err)
		}
		log.Debug("collected images", "count", len(images))
		return writeJSON(cmd.OutOrStdout(), images)
	}

	basePath := flags.imageBasePath
	if basePath == "" {
		basePath = manifest.DefaultImageBasePath(imagesDir, scan.ExpandHome(flags.viewerRoot))
		log.Debug("computed imageBasePath", "viewerRoot", flags.viewerRoot, "imageBasePath", basePath)
	}

	series, err := manifest.CollectSeries(fsys, ".", exts, manifest.SeriesInput{
		ID:            flags.seriesID,
		Label:         flags.label,
		Description:   flags.description,
		ImageBasePath: basePath,
	})
	if err != nil {
		return collectError(imagesDir, err)
	}
	log.Debug("collected images", "count", len(series.Images))
	return writeJSON(cmd.OutOrStdout(), series)
}

// collectError rewrites scanner errors, which name paths on the rooted
// filesystem, in terms of the directory the user gave.
func collectError(dir string, err error) error {
	if errors.Is(err, model.ErrNoImages) {
		return model.FromError(fmt.Errorf("%w in %s", model.ErrNoImages, dir))
	}
	return model.FromError(fmt.Errorf("failed to scan %s: %w", dir, err))
}

// writeJSON encodes v and writes it in one call, so a failed encode
// leaves stdout empty.
func writeJSON(w io.Writer, v any) error {
	data, err := manifest.Encode(v)
	if err != nil {
		return model.FromError(err)
	}
	if _, err := w.Write(data); err != nil {
		return model.FromError(fmt.Errorf("write output: %w", err))
	}
	return nil
}
