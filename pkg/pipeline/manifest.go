package pipeline

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yml
var defaultManifest []byte

// Dependency is a vendored jar. Its presence on disk is the only state that is tracked.
type Dependency struct {
	Name string
	URL  string
	// File is the file name inside the vendor directory
	File string
}

type toolNames struct {
	Cargo string
	Curl  string
}

type bindgenSpec struct {
	Bin      string
	Features string
}

// Manifest lists the fixed names and paths the pipeline works with
type Manifest struct {
	Package  string
	Library  string
	Language string

	TargetDir string `yaml:"targetDir"`
	OutDir    string `yaml:"outDir"`
	TestsDir  string `yaml:"testsDir"`
	VendorDir string `yaml:"vendorDir"`
	Jar       string

	Tools   toolNames
	Bindgen bindgenSpec

	Dependencies []Dependency
	Tests        []string
}

// DefaultManifest returns the manifest compiled into the binary
func DefaultManifest() (*Manifest, error) {
	return LoadManifest(defaultManifest)
}

// LoadManifest decodes a YAML manifest and checks that all required fields are set
func LoadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "Failed to parse manifest")
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	required := map[string]string{
		"package":     m.Package,
		"library":     m.Library,
		"language":    m.Language,
		"targetDir":   m.TargetDir,
		"outDir":      m.OutDir,
		"testsDir":    m.TestsDir,
		"vendorDir":   m.VendorDir,
		"jar":         m.Jar,
		"tools.cargo": m.Tools.Cargo,
		"bindgen.bin": m.Bindgen.Bin,
	}
	for key, value := range required {
		if value == "" {
			return eris.Errorf("Manifest field %s is empty", key)
		}
	}

	for idx, dep := range m.Dependencies {
		if dep.Name == "" || dep.URL == "" || dep.File == "" {
			return eris.Errorf("Dependency #%d in the manifest is incomplete", idx+1)
		}
	}
	return nil
}
