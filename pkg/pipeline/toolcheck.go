package pipeline

import (
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ngld/ktbind/pkg/platform"
)

// ErrMissingTools is returned by CheckTools if a required executable is not on the PATH.
var ErrMissingTools = eris.New("Required tools are missing")

// ToolRequirement describes an external executable the pipeline invokes
type ToolRequirement struct {
	Name     string
	Optional bool
	Purpose  string
}

// ToolStatus is the result of looking up one requirement
type ToolStatus struct {
	ToolRequirement
	// Path is the resolved executable; empty if nothing was found
	Path string
}

// Found reports whether an executable was located
func (s ToolStatus) Found() bool {
	return s.Path != ""
}

// LookPathFunc resolves an executable name; exec.LookPath in production
type LookPathFunc func(name string) (string, error)

// RequiredTools lists the executables a full run needs on the given platform. curl is only
// required if downloads go through it.
func RequiredTools(p platform.Platform, m *Manifest, withCurl bool) []ToolRequirement {
	tools := []ToolRequirement{
		{Name: m.Tools.Cargo, Purpose: "builds the native library and runs " + m.Bindgen.Bin},
		{Name: p.Kotlinc, Purpose: "compiles the jar and runs the test scripts"},
	}

	curl := m.Tools.Curl
	if curl == "" {
		curl = "curl"
	}
	tools = append(tools, ToolRequirement{
		Name:     curl,
		Optional: !withCurl,
		Purpose:  "downloads the vendored jars",
	})
	return tools
}

// CheckTools looks up every requirement. The returned slice has one entry per requirement,
// in order; the error lists all required tools that were not found.
func CheckTools(reqs []ToolRequirement, lookPath LookPathFunc) ([]ToolStatus, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	result := make([]ToolStatus, len(reqs))
	missing := []string{}
	for idx, req := range reqs {
		result[idx].ToolRequirement = req

		path, err := lookPath(req.Name)
		if err == nil {
			result[idx].Path = path
		}

		if !result[idx].Found() && !req.Optional {
			missing = append(missing, req.Name)
		}
	}

	if len(missing) > 0 {
		return result, eris.Wrapf(ErrMissingTools, "not found in PATH: %s", strings.Join(missing, ", "))
	}
	return result, nil
}
