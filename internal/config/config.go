// Package config loads the optional settings file of the manifest command.
//
// Settings files are JSONC (JSON with comments and trailing commas, via
// github.com/tidwall/jsonc) or YAML (via gopkg.in/yaml.v3), chosen by file
// extension. Every key is optional; a key that is present overrides the
// built-in default, and an explicit command-line flag overrides both.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/seriesgen/internal/manifest"
	"github.com/shinji-kodama/seriesgen/internal/scan"
)

// ErrNotFound is returned when the settings file does not exist.
var ErrNotFound = errors.New("settings file not found")

// Settings mirrors the manifest command's options. Pointer fields
// distinguish "absent" from an explicit empty string, which matters for
// idPrefix and basePathPrefix.
type Settings struct {
	AssetsDir      *string    `json:"assetsDir,omitempty" yaml:"assetsDir,omitempty"`
	StudyGlob      *string    `json:"studyGlob,omitempty" yaml:"studyGlob,omitempty"`
	ImagesSubdir   *string    `json:"imagesSubdir,omitempty" yaml:"imagesSubdir,omitempty"`
	Extensions     Extensions `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	IDPrefix       *string    `json:"idPrefix,omitempty" yaml:"idPrefix,omitempty"`
	BasePathPrefix *string    `json:"basePathPrefix,omitempty" yaml:"basePathPrefix,omitempty"`
	Output         *string    `json:"output,omitempty" yaml:"output,omitempty"`
}

// Extensions accepts either a comma-separated string or a list of strings.
// It is kept in the comma-separated form the --extensions flag uses.
type Extensions string

// UnmarshalJSON implements json.Unmarshaler.
func (e *Extensions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Extensions(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("extensions must be a string or a list of strings")
	}
	*e = Extensions(strings.Join(list, ","))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Extensions) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Extensions(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*e = Extensions(strings.Join(list, ","))
		return nil
	default:
		return fmt.Errorf("line %d: extensions must be a string or a list of strings", node.Line)
	}
}

// Load reads and parses a settings file. Files ending in .yaml or .yml are
// parsed as YAML; everything else as JSONC.
func Load(fsys billy.Filesystem, name string) (*Settings, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data, path.Ext(name))
}

// Parse decodes settings data. ext selects the format (".yaml"/".yml" for
// YAML, anything else for JSONC).
func Parse(data []byte, ext string) (*Settings, error) {
	var s Settings
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	default:
		// Strip comments and trailing commas; encoding/json does the rest.
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	}
	return &s, nil
}

// Apply copies every present setting into opts and returns the assets
// directory and output path the file names (empty when absent).
func (s *Settings) Apply(opts *manifest.Options) (assetsDir, output string, err error) {
	if s.StudyGlob != nil {
		opts.StudyGlob = *s.StudyGlob
	}
	if s.ImagesSubdir != nil {
		opts.ImagesSubdir = *s.ImagesSubdir
	}
	if s.IDPrefix != nil {
		opts.IDPrefix = *s.IDPrefix
	}
	if s.BasePathPrefix != nil {
		opts.BasePathPrefix = *s.BasePathPrefix
	}
	if s.Extensions != "" {
		exts, err := scan.ParseExtensions(string(s.Extensions))
		if err != nil {
			return "", "", err
		}
		opts.Extensions = exts
	}
	if s.AssetsDir != nil {
		assetsDir = *s.AssetsDir
	}
	if s.Output != nil {
		output = *s.Output
	}
	return assetsDir, output, nil
}
