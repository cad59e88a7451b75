// Package platform maps the host operating system to the file naming conventions of
// native libraries and the JVM tool chain.
package platform

import (
	"runtime"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnsupportedOS is returned for every OS other than darwin, linux and windows.
var ErrUnsupportedOS = eris.New("Unknown OS. Supported OS: mac, linux, windows.")

const (
	OSDarwin  = "darwin"
	OSLinux   = "linux"
	OSWindows = "windows"
)

// Platform describes how artifacts are named on one operating system
type Platform struct {
	OS string
	// LibExt is the dynamic library suffix without the leading dot (dylib, so or dll)
	LibExt string
	// LibPrefix is prepended to the library name by cargo ("lib" everywhere except Windows)
	LibPrefix string
	// Kotlinc is the name of the Kotlin compiler executable
	Kotlinc string
	// ListSeparator separates classpath entries
	ListSeparator string
}

var platforms = map[string]Platform{
	OSDarwin: {
		OS:            OSDarwin,
		LibExt:        "dylib",
		LibPrefix:     "lib",
		Kotlinc:       "kotlinc",
		ListSeparator: ":",
	},
	OSLinux: {
		OS:            OSLinux,
		LibExt:        "so",
		LibPrefix:     "lib",
		Kotlinc:       "kotlinc",
		ListSeparator: ":",
	},
	OSWindows: {
		OS:            OSWindows,
		LibExt:        "dll",
		LibPrefix:     "",
		Kotlinc:       "kotlinc.bat",
		ListSeparator: ";",
	},
}

// LibExtension returns the dynamic library suffix for the given OS identifier.
func LibExtension(goos string) (string, error) {
	p, err := Resolve(goos)
	if err != nil {
		return "", err
	}
	return p.LibExt, nil
}

// Resolve looks up the platform for the given OS identifier. The lookup is case-insensitive.
func Resolve(goos string) (Platform, error) {
	p, ok := platforms[strings.ToLower(goos)]
	if !ok {
		return Platform{}, eris.Wrapf(ErrUnsupportedOS, "unsupported platform %q", goos)
	}
	return p, nil
}

// Current resolves the platform this binary runs on.
func Current() (Platform, error) {
	return Resolve(runtime.GOOS)
}

// LibFileName returns the file name cargo produces for a cdylib called name.
func (p Platform) LibFileName(name string) string {
	return p.LibPrefix + name + "." + p.LibExt
}

// JoinList joins classpath entries with the platform's list separator.
func (p Platform) JoinList(items ...string) string {
	nonEmpty := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			nonEmpty = append(nonEmpty, item)
		}
	}
	return strings.Join(nonEmpty, p.ListSeparator)
}
