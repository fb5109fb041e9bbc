package seeddata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// ErrMissingSection is returned when a seed document lacks the project or
// proposal list. An empty list is fine; an absent one is not.
var ErrMissingSection = errors.New("seed document is missing a section")

// Load reads a YAML or JSON seed document from path. An empty path selects
// the seed set compiled into the binary.
func Load(path string) (Data, error) {
	if path == "" {
		return Parse(defaultSeed)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}

	data, err := Parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a seed document.
func Parse(raw []byte) (Data, error) {
	var doc struct {
		Project  *[]Project  `yaml:"project"`
		Proposal *[]Proposal `yaml:"proposal"`
	}

	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Data{}, err
	}

	if doc.Project == nil {
		return Data{}, fmt.Errorf("%w: project", ErrMissingSection)
	}
	if doc.Proposal == nil {
		return Data{}, fmt.Errorf("%w: proposal", ErrMissingSection)
	}

	return Data{Projects: *doc.Project, Proposals: *doc.Proposal}, nil
}
