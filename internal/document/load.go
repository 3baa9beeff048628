package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

// Format is the serialization of a game definition file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FileNames lists the game definition file names looked up in a game directory, in order of
// preference.
var FileNames = []string{"game.toml", "game.yaml", "game.yml", "game.json", "game.jsonc"}

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unrecognized game file extension: %s", path)
	}
}

// FindGameFile returns the game definition file inside dir.
func FindGameFile(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no game file (%s) found in %s", strings.Join(FileNames, ", "), dir)
}

// Load reads a game definition from path. If path is a directory, the game file inside it is
// used. The returned document has passed structural validation.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("game file not found: %w", err)
	}
	if info.IsDir() {
		if path, err = FindGameFile(path); err != nil {
			return nil, err
		}
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, apperrors.Locate(err, filepath.Base(path))
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	doc.Dir = abs
	return doc, nil
}

// Parse decodes a game definition from data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSchemaViolation, "error parsing TOML: "+err.Error(), err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, unknownKeys(keys)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSchemaViolation, "error parsing YAML: "+err.Error(), err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSchemaViolation, "error parsing JSON: "+err.Error(), err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func unknownKeys(keys []string) error {
	sort.Strings(keys)
	return apperrors.Newf(apperrors.CodeSchemaViolation, "unknown key(s): %s", strings.Join(keys, ", "))
}
