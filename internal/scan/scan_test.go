package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/seriesgen/internal/model"
)

// newTestFS builds an in-memory tree from a list of paths. Paths ending in
// "/" become directories, everything else becomes a small file.
func newTestFS(t *testing.T, paths ...string) billy.Filesystem {
	t.Helper()

	fsys := memfs.New()
	for _, p := range paths {
		if p[len(p)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, util.WriteFile(fsys, p, []byte("x"), 0o644))
	}
	return fsys
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"png,webp,jpg,jpeg", "jpeg,jpg,png,webp", false},
		{" PNG , .Jpg,,..webp", "jpg,png,webp", false},
		{"png,png", "png", false},
		{"", "", true},
		{" , ,", "", true},
		{".,..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			set, err := ParseExtensions(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrNoExtensions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.String())
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"slice1.png", "png"},
		{"slice2.PNG", "png"},
		{"archive.tar.GZ", "gz"},
		{"notes", ""},
		{".png", ""},
		{"..png", "png"},
		{"scan.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.name))
		})
	}
}

// TestCollectImages_Ordering covers the documented example: case-insensitive
// extension match, original case preserved, numeric ordering.
func TestCollectImages_Ordering(t *testing.T) {
	fsys := newTestFS(t,
		"series/slice1.png",
		"series/slice10.png",
		"series/slice2.PNG",
		"series/notes.txt",
	)

	images, err := CollectImages(fsys, "series", MustParseExtensions("png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"slice1.png", "slice2.PNG", "slice10.png"}, images)
}

func TestCollectImages_SkipsDirectoriesAndNested(t *testing.T) {
	fsys := newTestFS(t,
		"series/a2.png",
		"series/a1.png",
		"series/fake.png/",
		"series/nested/a0.png",
	)

	images, err := CollectImages(fsys, "series", MustParseExtensions("png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a1.png", "a2.png"}, images)
}

func TestCollectImages_Empty(t *testing.T) {
	fsys := newTestFS(t, "series/readme.md", "empty/")

	_, err := CollectImages(fsys, "series", MustParseExtensions(DefaultExtensions))
	assert.ErrorIs(t, err, model.ErrNoImages)

	_, err = CollectImages(fsys, "empty", MustParseExtensions(DefaultExtensions))
	assert.ErrorIs(t, err, model.ErrNoImages)
}

func TestCollectImages_MissingDir(t *testing.T) {
	fsys := newTestFS(t, "other/")

	_, err := CollectImages(fsys, "missing", MustParseExtensions("png"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNoImages)
}

func TestFindStudyDirs(t *testing.T) {
	fsys := newTestFS(t,
		"assets/ID_10/",
		"assets/ID_2/",
		"assets/ID_1/",
		"assets/ID_3.png",
		"assets/other/",
		"assets/.ID_hidden/",
	)

	studies, err := FindStudyDirs(fsys, "assets", "ID_*")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID_1", "ID_2", "ID_10"}, studies)

	hidden, err := FindStudyDirs(fsys, "assets", ".ID_*")
	require.NoError(t, err)
	assert.Equal(t, []string{".ID_hidden"}, hidden)
}

func TestFindStudyDirs_Errors(t *testing.T) {
	fsys := newTestFS(t, "assets/other/")

	_, err := FindStudyDirs(fsys, "assets", "ID_*")
	assert.ErrorIs(t, err, model.ErrNoStudies)

	_, err = FindStudyDirs(fsys, "assets", "ID_[")
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestRequireDir(t *testing.T) {
	fsys := newTestFS(t, "dir/", "file.png")

	assert.NoError(t, RequireDir(fsys, "dir"))
	assert.ErrorIs(t, RequireDir(fsys, "file.png"), model.ErrNotDirectory)
	assert.ErrorIs(t, RequireDir(fsys, "missing"), model.ErrNotDirectory)
	assert.True(t, IsDir(fsys, "dir"))
	assert.False(t, IsDir(fsys, "file.png"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "scans"), ExpandHome("~/scans"))
	assert.Equal(t, "~other/scans", ExpandHome("~other/scans"))
	assert.Equal(t, "viewer/assets", ExpandHome("viewer/assets"))
}
