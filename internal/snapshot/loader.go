package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheFileName is the name of the cached copy of a remote document.
const CacheFileName = "kpi_data.json"

// Config holds the settings for loading the KPI document.
type Config struct {
	// Source is a file path or an http(s) URL.
	Source string
	// CacheDir receives a copy of every successfully fetched remote document.
	CacheDir string
	// Timeout bounds a remote fetch.
	Timeout time.Duration
}

// Loader reads the KPI document from disk or over HTTP.
type Loader struct {
	cfg        Config
	httpClient *http.Client
}

// NewLoader creates a Loader.
func NewLoader(cfg Config) *Loader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Loader{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Source returns the configured source.
func (l *Loader) Source() string {
	return l.cfg.Source
}

// IsRemote reports whether the source is an http(s) URL.
func (l *Loader) IsRemote() bool {
	s := strings.ToLower(l.cfg.Source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load produces a document. A failed remote fetch falls back to the cached copy when one exists.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	if l.cfg.Source == "" {
		return nil, fmt.Errorf("no KPI data source configured")
	}

	if !l.IsRemote() {
		return l.loadFile(l.cfg.Source)
	}

	doc, err := l.fetch(ctx)
	if err == nil {
		return doc, nil
	}

	if l.cfg.CacheDir == "" {
		return nil, err
	}
	cachePath := filepath.Join(l.cfg.CacheDir, CacheFileName)
	cached, cacheErr := l.loadFile(cachePath)
	if cacheErr != nil {
		return nil, err
	}
	log.Warn().Err(err).Str("cache", cachePath).Msg("Fetch failed, using cached KPI document")
	return cached, nil
}

func (l *Loader) loadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open KPI document: %w", err)
	}
	defer file.Close()

	doc, err := Decode(file)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("actions", len(doc.SafetyActions)).Int("incidents", len(doc.Incidents)).Msg("Loaded KPI document from file")
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch KPI document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch KPI document: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read KPI document: %w", err)
	}

	doc, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("url", l.cfg.Source).
		Dur("elapsed", time.Since(start)).
		Int("actions", len(doc.SafetyActions)).
		Int("incidents", len(doc.Incidents)).
		Msg("Fetched KPI document")

	if l.cfg.CacheDir != "" {
		if err := saveCache(l.cfg.CacheDir, body); err != nil {
			log.Warn().Err(err).Str("dir", l.cfg.CacheDir).Msg("Failed to cache KPI document")
		}
	}
	return doc, nil
}

// saveCache writes the raw document next to its final name and renames it into place.
func saveCache(cacheDir string, body []byte) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(cacheDir, CacheFileName)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, body, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}
