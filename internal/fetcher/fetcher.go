package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrFetchFailed is returned once every attempt for a URL has been
// exhausted.
var ErrFetchFailed = errors.New("fetch failed")

// Fetcher retrieves a page body as decoded text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Options struct {
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// HTTPFetcher fetches pages over plain HTTP GET with a fixed retry
// budget and a fixed delay between attempts.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

func NewHTTPFetcher(opts Options, logger *slog.Logger) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	return &HTTPFetcher{
		client:      &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
		logger:      logger.With("component", "fetcher"),
	}
}

// Fetch GETs url, retrying transport-level failures. The body is
// decoded as UTF-8 with invalid sequences replaced, so a mildly
// malformed encoding never fails the fetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		f.logger.Warn("fetch attempt failed", "url", url, "attempt", attempt, "error", err)

		if attempt < f.maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.retryDelay):
			}
		}
	}

	return "", fmt.Errorf("%w: %s after %d attempts: %v", ErrFetchFailed, url, f.maxAttempts, lastErr)
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return strings.ToValidUTF8(string(raw), "�"), nil
}
