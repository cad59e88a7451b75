package pipeline

import (
	"path/filepath"

	"github.com/ngld/ktbind/pkg/platform"
)

// Layout holds every path a run touches. It is computed once before the first step and
// never modified afterwards.
type Layout struct {
	Root     string
	Platform platform.Platform
	Manifest *Manifest

	TargetDir string
	OutDir    string
	// GeneratedDir is where uniffi-bindgen writes the Kotlin package tree
	GeneratedDir string
	// LegacyDir is the per-library directory older generator versions wrote to
	LegacyDir     string
	BindingSource string
	BuiltLib      string
	CopiedLib     string
	VendorDir     string
	Jar           string
	TestsDir      string
	// Classpath is the compile classpath, either from the environment or the vendored jars
	Classpath string
}

// NewLayout resolves all paths below root. An empty classpath selects the vendored jars.
func NewLayout(root string, p platform.Platform, m *Manifest, classpath string) *Layout {
	outDir := filepath.Join(root, filepath.FromSlash(m.OutDir))
	targetDir := filepath.Join(root, filepath.FromSlash(m.TargetDir))
	libFile := p.LibFileName(m.Library)

	l := &Layout{
		Root:          root,
		Platform:      p,
		Manifest:      m,
		TargetDir:     targetDir,
		OutDir:        outDir,
		GeneratedDir:  filepath.Join(outDir, "uniffi"),
		LegacyDir:     filepath.Join(outDir, m.Library),
		BindingSource: filepath.Join(outDir, "uniffi", m.Library, m.Library+".kt"),
		BuiltLib:      filepath.Join(targetDir, libFile),
		CopiedLib:     filepath.Join(outDir, libFile),
		VendorDir:     filepath.Join(outDir, filepath.FromSlash(m.VendorDir)),
		Jar:           filepath.Join(outDir, m.Jar),
		TestsDir:      filepath.Join(root, filepath.FromSlash(m.TestsDir)),
		Classpath:     classpath,
	}

	if l.Classpath == "" {
		jars := make([]string, len(m.Dependencies))
		for idx, dep := range m.Dependencies {
			jars[idx] = l.VendorPath(dep)
		}
		l.Classpath = p.JoinList(jars...)
	}

	return l
}

// VendorPath returns the location of a vendored dependency
func (l *Layout) VendorPath(dep Dependency) string {
	return filepath.Join(l.VendorDir, dep.File)
}

// TestScript returns the path of the script for the named test
func (l *Layout) TestScript(name string) string {
	return filepath.Join(l.TestsDir, name+"_test.kts")
}

// TestClasspath extends the compile classpath with the built jar and the output directory,
// which holds the native library.
func (l *Layout) TestClasspath() string {
	return l.Platform.JoinList(l.Classpath, l.Jar, l.OutDir)
}
