package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Anchora/internal/calc/anchors"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFile = errors.New("invalid project file")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Settings are viewer preferences carried with the project. The engine does
// not read them.
type Settings struct {
	Units            string `json:"units" yaml:"units"`
	AutoSave         bool   `json:"autoSave" yaml:"autoSave"`
	AutosaveInterval int    `json:"autosaveInterval" yaml:"autosaveInterval"` // ms
	ShowDimensions   bool   `json:"showDimensions" yaml:"showDimensions"`
	ShowGrid         bool   `json:"showGrid" yaml:"showGrid"`
	ShowAxes         bool   `json:"showAxes" yaml:"showAxes"`
	ModelQuality     string `json:"modelQuality" yaml:"modelQuality"`
}

func DefaultSettings() Settings {
	return Settings{
		Units:            "mm",
		AutoSave:         true,
		AutosaveInterval: 5 * 60 * 1000,
		ShowDimensions:   true,
		ShowGrid:         true,
		ShowAxes:         true,
		ModelQuality:     "medium",
	}
}

// File is the saved/exchanged project document: the engine input plus
// settings and a timestamp.
type File struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	anchors.Input `yaml:",inline"`
	Settings      Settings  `json:"settings" yaml:"settings"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

func NewID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return "PRJ-" + id, nil
}

func New(name string, in anchors.Input, settings Settings, now time.Time) (File, error) {
	id, err := NewID()
	if err != nil {
		return File{}, fmt.Errorf("project id: %w", err)
	}
	return File{
		ID:        id,
		Name:      name,
		Input:     in,
		Settings:  settings,
		Timestamp: now.UTC(),
	}, nil
}

// Decode reads a project document. Sections missing from the document keep
// their defaults and unknown keys are ignored.
func Decode(r io.Reader, format Format) (File, error) {
	f := File{Input: anchors.DefaultInput(), Settings: DefaultSettings()}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&f)
	default:
		err = json.NewDecoder(r).Decode(&f)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return f, nil
}

func Encode(w io.Writer, f File, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode project: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode project: %w", err)
		}
		return nil
	}
}

func Marshal(f File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (File, error) {
	return Decode(bytes.NewReader(data), FormatJSON)
}

func Load(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Decode(fh, FormatFromPath(path))
}

func Save(path string, f File) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fh, f, FormatFromPath(path)); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// ExportName is the download name for a project exported on the given day.
func ExportName(now time.Time, format Format) string {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("construction-model-%s.%s", now.Format(time.DateOnly), ext)
}
