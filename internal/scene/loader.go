package scene

import (
	"bytes"
	"fmt"
	"os"

	"github.com/samdwyer/isogrid/data"
)

// DefaultScene is the embedded scene used when no file is configured.
const DefaultScene = "courtyard.yaml"

// Load reads and builds a scene file from disk. The format follows the extension.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}
	return parse(content, format, path)
}

// LoadEmbedded reads and builds one of the scenes embedded in the binary.
func LoadEmbedded(name string) (*Scene, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}

	content, err := data.FS().ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene %s: %w", name, err)
	}
	return parse(content, format, name)
}

// MustLoadEmbedded loads an embedded scene, panicking on error.
func MustLoadEmbedded(name string) *Scene {
	s, err := LoadEmbedded(name)
	if err != nil {
		panic(err)
	}
	return s
}

func parse(content []byte, format Format, source string) (*Scene, error) {
	file, err := Decode(bytes.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	s, err := Build(file)
	if err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", source, err)
	}
	return s, nil
}
