package config

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/seriesgen/internal/manifest"
	"github.com/shinji-kodama/seriesgen/internal/model"
)

const jsoncSettings = `{
  // where the viewer keeps its studies
  "assetsDir": "public/assets",
  "studyGlob": "case-*",
  "imagesSubdir": "images",
  "extensions": ["PNG", ".webp"],
  "idPrefix": "",
  /* trailing comma below is fine */
  "output": "public/series-manifest.json",
}`

const yamlSettings = `
studyGlob: "ID_*"
extensions: png,jpg
basePathPrefix: ./static/assets
`

// TestLoad_JSONC verifies comment stripping, list-form extensions and that
// an explicit empty idPrefix is kept rather than treated as absent.
func TestLoad_JSONC(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "seriesgen.jsonc", []byte(jsoncSettings), 0o644))

	s, err := Load(fsys, "seriesgen.jsonc")
	require.NoError(t, err)

	opts := manifest.DefaultOptions()
	assets, output, err := s.Apply(&opts)
	require.NoError(t, err)

	assert.Equal(t, "public/assets", assets)
	assert.Equal(t, "public/series-manifest.json", output)
	assert.Equal(t, "case-*", opts.StudyGlob)
	assert.Equal(t, "images", opts.ImagesSubdir)
	assert.Equal(t, "", opts.IDPrefix)
	assert.Equal(t, manifest.DefaultBasePathPrefix, opts.BasePathPrefix)
	assert.Equal(t, "png,webp", opts.Extensions.String())
}

func TestLoad_YAML(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "conf/seriesgen.yaml", []byte(yamlSettings), 0o644))

	s, err := Load(fsys, "conf/seriesgen.yaml")
	require.NoError(t, err)

	opts := manifest.DefaultOptions()
	assets, output, err := s.Apply(&opts)
	require.NoError(t, err)

	assert.Empty(t, assets)
	assert.Empty(t, output)
	assert.Equal(t, "jpg,png", opts.Extensions.String())
	assert.Equal(t, "./static/assets", opts.BasePathPrefix)
	assert.Equal(t, manifest.DefaultIDPrefix, opts.IDPrefix)
}

func TestLoad_Errors(t *testing.T) {
	fsys := memfs.New()

	_, err := Load(fsys, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, util.WriteFile(fsys, "bad.json", []byte(`{"studyGlob": 3}`), 0o644))
	_, err = Load(fsys, "bad.json")
	assert.Error(t, err)

	require.NoError(t, util.WriteFile(fsys, "unknown.json", []byte(`{"studyGlobb": "x"}`), 0o644))
	_, err = Load(fsys, "unknown.json")
	assert.Error(t, err)

	require.NoError(t, util.WriteFile(fsys, "bad.yml", []byte("extensions: {a: b}\n"), 0o644))
	_, err = Load(fsys, "bad.yml")
	assert.Error(t, err)
}

func TestApply_EmptyExtensions(t *testing.T) {
	s, err := Parse([]byte(`{"extensions": " , "}`), ".json")
	require.NoError(t, err)

	opts := manifest.DefaultOptions()
	_, _, err = s.Apply(&opts)
	assert.ErrorIs(t, err, model.ErrNoExtensions)
}

func TestParse_EmptyYAML(t *testing.T) {
	s, err := Parse(nil, ".yml")
	require.NoError(t, err)
	assert.Nil(t, s.StudyGlob)

	_, err = Parse([]byte("studyGlobb: x\n"), ".yaml")
	assert.Error(t, err)
}
