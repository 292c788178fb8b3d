package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Encode renders v as JSON indented by two spaces, followed by exactly one
// newline. HTML characters are written as-is since the output is a data
// file, not markup.
//
// Non-ASCII names are written as raw UTF-8 rather than \uXXXX escapes.
// Both forms decode to the same strings.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to name on fsys, creating parent directories first.
func WriteFile(fsys billy.Filesystem, name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
