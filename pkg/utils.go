package pkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
)

// GetProjectRoot returns the nearest ancestor of the working directory that contains a .git
// entry. If there is none, the working directory itself is the project root.
func GetProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", eris.Wrap(err, "Failed to retrieve the current working directory")
	}

	return FindProjectRoot(wd)
}

// FindProjectRoot searches start and its parents for a .git entry and falls back to start.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", start)
	}

	mypath := abs
	for {
		gitPath := filepath.Join(mypath, ".git")
		_, err := os.Stat(gitPath)
		if err == nil {
			return mypath, nil
		}

		if !eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrap(err, "Error ocurred while searching for project root")
		}

		nextPath := filepath.Dir(mypath)
		if mypath == nextPath {
			break
		}
		mypath = nextPath
	}

	return abs, nil
}

// CopyFile copies the contents and permission bits of src to dest, replacing dest if it exists.
func CopyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return eris.Wrapf(err, "Failed to open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return eris.Wrapf(err, "Failed to stat %s", src)
	}
	if info.IsDir() {
		return eris.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return eris.Wrapf(err, "Failed to create %s", dest)
	}

	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()
		return eris.Wrapf(err, "Failed to copy %s to %s", src, dest)
	}

	err = out.Close()
	if err != nil {
		return eris.Wrapf(err, "Failed to write %s", dest)
	}
	return nil
}

// RemovePath deletes path and everything below it. A missing path is not an error.
func RemovePath(path string) error {
	err := os.RemoveAll(path)
	if err != nil && !eris.Is(err, os.ErrNotExist) {
		return eris.Wrapf(err, "Could not delete %s", path)
	}
	return nil
}

// FileExists reports whether path exists. Errors other than "not found" are returned.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if eris.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, eris.Wrapf(err, "Failed to check %s", path)
}

// output receives the task headers
var output io.Writer = os.Stdout

// NewColorize returns the color settings shared by all console output. Setting NO_COLOR
// strips the color codes.
func NewColorize() *colorstring.Colorize {
	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: os.Getenv("NO_COLOR") != "",
		Reset:   true,
	}
}

func printColored(format, msg string) {
	fmt.Fprintf(output, NewColorize().Color(format), msg)
}

func PrintTask(msg string) {
	printColored("[blue][bold]==>[default] %s\n", msg)
}

func PrintSubtask(msg string) {
	printColored("[green][bold]  ->[reset] %s\n", msg)
}

func PrintError(msg string) {
	printColored("[red][bold]  ->[reset] %s\n", msg)
}
