package manifest

import (
	"github.com/go-git/go-billy/v5"

	"github.com/shinji-kodama/seriesgen/internal/model"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// SeriesInput carries the options of the images command in series mode.
type SeriesInput struct {
	ID            string
	Label         string
	Description   string
	ImageBasePath string
	Images        []string
}

// NewSeries builds a single series. Label falls back to ID; an empty
// description is left out of the encoded output.
func NewSeries(in SeriesInput) (model.Series, error) {
	if in.ID == "" {
		return model.Series{}, model.ErrMissingSeriesID
	}
	s := model.Series{
		ID:            in.ID,
		Label:         in.Label,
		ImageBasePath: in.ImageBasePath,
		Images:        in.Images,
		Description:   in.Description,
	}
	if s.Label == "" {
		s.Label = s.ID
	}
	if err := s.Validate(); err != nil {
		return model.Series{}, err
	}
	return s, nil
}

// CollectSeries scans dir on fsys and builds a series from the result.
// It is the series-mode counterpart of scan.CollectImages.
func CollectSeries(fsys billy.Filesystem, dir string, exts scan.ExtensionSet, in SeriesInput) (model.Series, error) {
	images, err := scan.CollectImages(fsys, dir, exts)
	if err != nil {
		return model.Series{}, err
	}
	in.Images = images
	return NewSeries(in)
}
