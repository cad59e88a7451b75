// Package fetch downloads single files to a local path.
package fetch

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ngld/ktbind/pkg/runner"
)

// Downloader fetches url and stores the response body at dest.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// CurlDownloader shells out to curl through a runner.
type CurlDownloader struct {
	Runner runner.Runner
	// Curl is the executable name; defaults to "curl"
	Curl string
}

// Download runs `curl -L <url> -o <dest>`
func (d *CurlDownloader) Download(ctx context.Context, url, dest string) error {
	curl := d.Curl
	if curl == "" {
		curl = "curl"
	}

	status, err := d.Runner.Run(ctx, runner.Command{
		Name: curl,
		Args: []string{"-L", url, "-o", dest},
	})
	if err != nil {
		return eris.Wrapf(err, "Failed to start download for %s", url)
	}
	if status != nil && !status.Success() {
		return eris.Errorf("curl exited with code %d while downloading %s", status.ExitCode, url)
	}
	return nil
}
