// Package fetch downloads the public Census urban-areas archives over HTTP
// with rate limiting and retry, and extracts them for ingestion.
package fetch

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options configures the download client.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	MaxRetries  int
	RetryWait   time.Duration // base backoff unit, doubled per attempt
	RatePerSec  rate.Limit
	Burst       int
	Concurrency int
}

// Client downloads files politely: one shared limiter across all requests,
// exponential backoff with jitter on transient failures.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	opts    Options
}

// NewClient creates a Client with defaults suitable for www2.census.gov.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "urban-atlas/1.0"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Minute
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryWait == 0 {
		opts.RetryWait = time.Second
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 2
	}
	if opts.Burst == 0 {
		opts.Burst = 2
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = 3
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(opts.RatePerSec, opts.Burst),
		opts:    opts,
	}
}

// Download fetches url into dest, writing through a temp file so a partial
// download never masquerades as a finished one. Retries transient failures
// (network errors, 429, 5xx) with exponential backoff plus jitter.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	log := zap.L().With(
		zap.String("component", "fetch"),
		zap.String("url", url),
	)

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.opts.RetryWait
			backoff += time.Duration(rand.Int64N(int64(c.opts.RetryWait)))
			log.Warn("fetch: retrying download",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return eris.Wrap(ctx.Err(), "fetch: cancelled during backoff")
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "fetch: rate limiter")
		}

		retryable, err := c.downloadOnce(ctx, url, dest)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}
	return eris.Wrapf(lastErr, "fetch: giving up after %d retries", c.opts.MaxRetries)
}

// downloadOnce performs a single attempt. The bool reports whether the
// failure is worth retrying.
func (c *Client) downloadOnce(ctx context.Context, url, dest string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, eris.Wrap(err, "fetch: build request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return true, eris.Wrap(err, "fetch: request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to the body copy
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, eris.Errorf("fetch: status %d for %s", resp.StatusCode, url)
	default:
		return false, eris.Errorf("fetch: status %d for %s", resp.StatusCode, url)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return false, eris.Wrap(err, "fetch: create temp file")
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return true, eris.Wrap(err, "fetch: write body")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, eris.Wrap(err, "fetch: close temp file")
	}
	if err := os.Rename(tmp, dest); err != nil {
		return false, eris.Wrap(err, "fetch: finalize download")
	}
	return false, nil
}

// DownloadAll fetches every URL into destDir concurrently, skipping files
// that already exist with content. Returns the local paths in input order.
func (c *Client) DownloadAll(ctx context.Context, urls []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "fetch: create dest dir")
	}

	paths := make([]string, len(urls))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for i, url := range urls {
		name := path.Base(strings.TrimSuffix(url, "/"))
		if name == "" || name == "." || name == "/" {
			return nil, eris.Errorf("fetch: cannot derive filename from %q", url)
		}
		dest := filepath.Join(destDir, name)

		g.Go(func() error {
			if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
				zap.L().Debug("fetch: archive already present, skipping",
					zap.String("path", dest),
				)
			} else if err := c.Download(gCtx, url, dest); err != nil {
				return err
			}
			mu.Lock()
			paths[i] = dest
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
