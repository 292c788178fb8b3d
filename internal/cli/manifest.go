// manifest.go implements the "seriesgen manifest" command.
//
// The manifest command walks an assets directory, turns every matching
// study directory into a series, and prints or writes the combined
// series-manifest.json.

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seriesgen/internal/config"
	"github.com/shinji-kodama/seriesgen/internal/manifest"
	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// manifestFlags holds the flag values for the manifest command.
type manifestFlags struct {
	studyGlob      string // --study-glob
	imagesSubdir   string // --images-subdir
	extensions     string // --extensions
	idPrefix       string // --id-prefix
	basePathPrefix string // --base-path-prefix
	output         string // --output (stdout when empty)
	configFile     string // --config
}

// NewManifestCommand creates the "manifest" cobra command.
func NewManifestCommand() *cobra.Command {
	flags := &manifestFlags{}

	cmd := &cobra.Command{
		Use:   "manifest [assets_dir]",
		Short: "Generate series-manifest.json from the study folders under an assets directory",
		Long: `Generate viewer/series-manifest.json from per-ID image folders.

Every direct child of assets_dir matching --study-glob becomes one series.
Studies whose images directory is missing or holds no matching images are
skipped with a warning. Exactly one of stdout or --output receives the
manifest.

Settings can also be read from a JSON/JSONC or YAML file with --config;
flags given on the command line take precedence over the file.

Examples:
  seriesgen manifest
  seriesgen manifest viewer/assets --output viewer/series-manifest.json
  seriesgen manifest --images-subdir slices --study-glob 'CASE_*' --id-prefix CASE_`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(cmd, args, flags)
		},
	}

	defaults := manifest.DefaultOptions()
	cmd.Flags().StringVar(&flags.studyGlob, "study-glob", defaults.StudyGlob,
		"Glob pattern for study directories")
	cmd.Flags().StringVar(&flags.imagesSubdir, "images-subdir", defaults.ImagesSubdir,
		"Optional subdirectory within each study that contains images")
	cmd.Flags().StringVar(&flags.extensions, "extensions", scan.DefaultExtensions,
		"Comma-separated file extensions to include")
	cmd.Flags().StringVar(&flags.idPrefix, "id-prefix", defaults.IDPrefix,
		"Prefix stripped from the study directory name to build the series id")
	cmd.Flags().StringVar(&flags.basePathPrefix, "base-path-prefix", defaults.BasePathPrefix,
		"Prefix used for imageBasePath")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output manifest path (default: stdout)")
	cmd.Flags().StringVar(&flags.configFile, "config", "",
		"Settings file (.json, .jsonc, .yaml, .yml)")

	return cmd
}

// runManifest resolves the effective options, builds the manifest and
// emits it.
func runManifest(cmd *cobra.Command, args []string, flags *manifestFlags) error {
	log := logger(cmd)

	// Step 1: Resolve options. Built-in defaults, then the settings file,
	// then flags the user actually set.
	opts := manifest.DefaultOptions()
	assetsDir := manifest.DefaultAssetsDir
	output := ""

	if flags.configFile != "" {
		settings, err := loadSettings(flags.configFile)
		if err != nil {
			return argumentError(err)
		}
		dir, out, err := settings.Apply(&opts)
		if err != nil {
			return argumentError(fmt.Errorf("%s: %w", flags.configFile, err))
		}
		if dir != "" {
			assetsDir = dir
		}
		output = out
		log.Debug("loaded settings", "file", flags.configFile)
	}

	changed := cmd.Flags().Changed
	if len(args) == 1 {
		assetsDir = args[0]
	}
	if changed("study-glob") {
		opts.StudyGlob = flags.studyGlob
	}
	if changed("images-subdir") {
		opts.ImagesSubdir = flags.imagesSubdir
	}
	if changed("id-prefix") {
		opts.IDPrefix = flags.idPrefix
	}
	if changed("base-path-prefix") {
		opts.BasePathPrefix = flags.basePathPrefix
	}
	if changed("output") {
		output = flags.output
	}
	if changed("extensions") {
		exts, err := scan.ParseExtensions(flags.extensions)
		if err != nil {
			return argumentError(err)
		}
		opts.Extensions = exts
	}

	// Step 2: Scan.
	assetsDir = scan.ExpandHome(assetsDir)
	fsys, err := scan.DirFS(assetsDir)
	if err != nil {
		return model.FromError(fmt.Errorf("assets_dir %s: %w", assetsDir, err))
	}
	if err := scan.RequireDir(fsys, "."); err != nil {
		return model.FromError(fmt.Errorf("assets_dir %w: %s", err, assetsDir))
	}
	log.Debug("scanning studies",
		"assetsDir", assetsDir,
		"studyGlob", opts.StudyGlob,
		"imagesSubdir", opts.ImagesSubdir,
		"extensions", opts.Extensions.String(),
	)

	result, err := manifest.Build(fsys, ".", opts)
	if result != nil {
		for _, skip := range result.Skipped {
			warnf(cmd.ErrOrStderr(), "%s", skip.Format(filepath.Join(assetsDir, filepath.FromSlash(skip.Dir))))
		}
	}
	if err != nil {
		return buildError(assetsDir, opts.StudyGlob, err)
	}
	log.Debug("built manifest", "series", result.Manifest.Len(), "skipped", len(result.Skipped))

	// Step 3: Emit.
	data, err := manifest.Encode(result.Manifest)
	if err != nil {
		return model.FromError(err)
	}
	if output == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return model.FromError(fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	output = scan.ExpandHome(output)
	outFS, outPath, err := scan.FileFS(output)
	if err != nil {
		return model.FromError(fmt.Errorf("output %s: %w", output, err))
	}
	if err := manifest.WriteFile(outFS, outPath, data); err != nil {
		return model.FromError(fmt.Errorf("write %s: %w", output, err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d series to %s\n", result.Manifest.Len(), output)
	return nil
}

// loadSettings reads the settings file named on the command line.
func loadSettings(name string) (*config.Settings, error) {
	name = scan.ExpandHome(name)
	fsys, p, err := scan.FileFS(name)
	if err != nil {
		return nil, err
	}
	return config.Load(fsys, p)
}

// buildError restates builder errors in terms of the assets directory the
// user gave.
func buildError(assetsDir, pattern string, err error) error {
	switch {
	case errors.Is(err, scan.ErrBadPattern), errors.Is(err, model.ErrNoExtensions):
		return argumentError(err)
	case errors.Is(err, model.ErrNoStudies):
		return model.FromError(fmt.Errorf("%w '%s' in %s", model.ErrNoStudies, pattern, assetsDir))
	case errors.Is(err, model.ErrNoSeries):
		return model.FromError(err)
	}
	return model.FromError(fmt.Errorf("failed to scan %s: %w", assetsDir, err))
}
