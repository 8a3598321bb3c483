package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/shelf/internal/utils"
)

const (
	// DefaultMaxBytes caps the size of the asset list.
	DefaultMaxBytes = 16 << 20
	// DefaultTimeout bounds a remote fetch.
	DefaultTimeout = 10 * time.Second
)

// LoaderOptions tunes how the asset list is fetched.
type LoaderOptions struct {
	Timeout  time.Duration // remote fetch timeout
	MaxBytes int64         // reject documents larger than this
	Client   *http.Client  // optional, defaults to a client with Timeout
}

// Loader reads the asset list from a file path or an http(s) URL.
type Loader struct {
	source string
	opts   LoaderOptions
	client *http.Client
}

// NewLoader creates a loader for source.
func NewLoader(source string, opts LoaderOptions) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Loader{
		source: source,
		opts:   opts,
		client: client,
	}
}

// Source returns the configured path or URL.
func (l *Loader) Source() string {
	return l.source
}

// Load fetches and decodes the asset list. Every failure is a *LoadError.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	records, err := decode(data, isYAML(l.source))
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return records, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if isRemote(l.source) {
		return l.fetch(ctx)
	}

	f, err := os.Open(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset file: %w", err)
	}
	defer utils.Close(f)

	return readCapped(f, l.opts.MaxBytes)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset list: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	return readCapped(resp.Body, l.opts.MaxBytes)
}

func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset list: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("asset list exceeds %d bytes", limit)
	}
	return data, nil
}

// decode parses a top-level array of objects.
func decode(data []byte, asYAML bool) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("asset list is empty")
	}

	var records []Record
	if asYAML {
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse assets yaml: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse assets json: %w", err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse assets json: trailing data after array")
		}
	}

	if records == nil {
		return nil, fmt.Errorf("asset list is not an array")
	}
	return records, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isYAML(source string) bool {
	switch strings.ToLower(path.Ext(SourceFile(source))) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
