package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up by LoadProject.
const FileName = "pit.yaml"

// Values pre-filled in the input form.
const (
	DefaultLength             = 21.48
	DefaultWidth              = 29.2
	DefaultDepth              = 2.25
	DefaultGroundwaterDepth   = 1.10
	DefaultFiltration         = 2.0
	DefaultReserve            = 1.0
	DefaultAquicludeElevation = -5.0
	DefaultSoil               = "Sand"
)

// Default returns the form defaults for an imperfect pit.
func Default() Input {
	return Input{
		Geometry: PitGeometry{
			Length: DefaultLength,
			Width:  DefaultWidth,
			Depth:  DefaultDepth,
		},
		Hydro: HydroInputs{
			GroundwaterDepth: DefaultGroundwaterDepth,
			Filtration:       DefaultFiltration,
			Reserve:          DefaultReserve,
		},
		Pit:  ImperfectPit(),
		Soil: DefaultSoil,
	}
}

// Parse decodes a project document. An omitted pit type means imperfect.
func Parse(data []byte) (*Input, error) {
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	in.Normalize()
	return &in, nil
}

// Normalize treats an omitted pit type as imperfect and lower-cases a
// recognised one. Unknown types are left for validation to report.
func (in *Input) Normalize() {
	if in.Pit.Kind == "" {
		in.Pit.Kind = Imperfect
	} else if kind, ok := ParsePitKind(string(in.Pit.Kind)); ok {
		in.Pit.Kind = kind
	}
}

// Load reads a pit project from a YAML file.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// LoadProject loads a pit project from a project directory.
// It looks for pit.yaml in the given directory.
func LoadProject(projectDir string) (*Input, error) {
	return Load(filepath.Join(projectDir, FileName))
}

// Save writes the input as pit.yaml into dir, creating dir if needed.
func Save(dir string, in Input) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating project dir: %w", err)
	}
	data, err := yaml.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding project YAML: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing project file: %w", err)
	}
	return path, nil
}
