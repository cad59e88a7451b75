package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"

	"github.com/ngld/ktbind/pkg/runner"
)

// HTTPDownloader downloads with net/http and renders a progress bar on Progress.
// The body is written to a temporary file next to dest which is renamed once the
// transfer is complete.
type HTTPDownloader struct {
	Client *http.Client
	// Progress receives the progress bar; nil hides it
	Progress io.Writer
	// DryRun only logs the request
	DryRun bool
}

func (d *HTTPDownloader) getProgressBar(length int64, desc string) *progressbar.ProgressBar {
	if d.Progress == nil || os.Getenv("CI") == "true" {
		return progressbar.NewOptions64(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions64(length,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(d.Progress),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// Download implements Downloader
func (d *HTTPDownloader) Download(ctx context.Context, url, dest string) error {
	runner.Log(ctx).Info().Str("url", url).Str("path", dest).Msgf("GET %s", url)
	if d.DryRun {
		return nil
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrapf(err, "Invalid download URL %s", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "Failed to start download for %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eris.Errorf("Download of %s failed with status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "Failed to create temporary file for %s", dest)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	bar := d.getProgressBar(resp.ContentLength, "     download")
	_, err = io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	if err != nil {
		return eris.Wrapf(err, "Failed during download of %s", url)
	}
	bar.Finish()

	if err = tmp.Close(); err != nil {
		return eris.Wrapf(err, "Failed to write download to %s", tmp.Name())
	}

	if err = os.Rename(tmp.Name(), dest); err != nil {
		return eris.Wrapf(err, "Failed to move download to %s", dest)
	}
	return nil
}
