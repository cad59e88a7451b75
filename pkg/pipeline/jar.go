package pipeline

import (
	"archive/zip"
	"strings"

	"github.com/rotisserie/eris"
)

// VerifyJar opens the jar at path and checks that it contains at least one compiled class.
func VerifyJar(path string) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return eris.Wrapf(err, "Failed to open %s", path)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if strings.HasSuffix(f.Name, ".class") {
			return nil
		}
	}

	return eris.Wrapf(ErrMissingOutput, "%s contains no classes", path)
}
