// Package scrape downloads the source page once, caches it on disk, and
// parses its mountain table into a types.Table snapshot.
// See docs/ARCHITECTURE.md § Loader.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// defaultCacheName is used when the URL path has no final segment.
const defaultCacheName = "index.html"

// ErrUnexpectedStatus is returned when the upstream answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// Loader fetches and parses the source page. The page is cached in DataDir
// under the URL's final path segment and only fetched when the cached file
// does not exist.
type Loader struct {
	DataDir string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewLoader creates a Loader with an HTTP client bounded by timeout.
func NewLoader(dataDir string, timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		DataDir: dataDir,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// CachePath returns the local file path used to cache rawURL.
func CachePath(dataDir, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = defaultCacheName
	}
	return filepath.Join(dataDir, name), nil
}

// Download returns the cached file for rawURL, fetching it first if it is
// missing or force is set.
func (l *Loader) Download(ctx context.Context, rawURL string, force bool) (string, error) {
	if err := os.MkdirAll(l.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	file, err := CachePath(l.DataDir, rawURL)
	if err != nil {
		return "", err
	}

	if !force {
		_, err := os.Stat(file)
		if err == nil {
			l.Logger.Debug("using cached page", "url", rawURL, "path", file)
			return file, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat cache file: %w", err)
		}
	}

	l.Logger.Info("fetching page", "url", rawURL, "path", file)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, rawURL, resp.StatusCode)
	}

	n, err := writeFileAtomic(file, resp.Body)
	if err != nil {
		return "", err
	}
	l.Logger.Info("page cached", "path", file, "bytes", n, "elapsed", time.Since(start))
	return file, nil
}

// Load downloads the page if needed and parses it into a table.
func (l *Loader) Load(ctx context.Context, rawURL string) (*types.Table, error) {
	file, err := l.Download(ctx, rawURL, false)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(file)
}

// LoadFile parses a previously cached page.
func (l *Loader) LoadFile(file string) (*types.Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	l.Logger.Info("table loaded", "path", file, "rows", t.Len(), "columns", t.Columns())
	return t, nil
}

// writeFileAtomic streams r into path using the temp-file, fsync, rename
// pattern so a partially written page is never mistaken for a cached one.
func writeFileAtomic(path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing page: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}
