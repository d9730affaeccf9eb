package downloader

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Downloader persists remote files to disk.
type Downloader interface {
	Download(url, dest string) error
}

// ImageDownloader writes image bytes to a destination path. Downloads
// are idempotent: an existing destination file short-circuits before
// any network call, so repeated crawl runs never re-fetch images.
type ImageDownloader struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

func NewImageDownloader(userAgent string, timeout time.Duration, logger *slog.Logger) *ImageDownloader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ImageDownloader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger.With("component", "downloader"),
	}
}

// Download fetches url into dest. The body lands in a temp file first
// and is renamed into place, so a failed transfer never leaves a
// partial file that a later run would mistake for a finished download.
func (d *ImageDownloader) Download(url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		d.logger.Info("image already exists", "file", filepath.Base(dest))
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("finalize image: %w", err)
	}

	d.logger.Info("downloaded image", "file", filepath.Base(dest))
	return nil
}
