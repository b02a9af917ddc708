package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrTooLarge = errors.New("asset: image exceeds size limit")

const defaultMaxBytes = 2 << 20

// HTTPFetcher loads http(s) URLs, and file:// URLs below Root when set.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
	Root     string
}

func NewHTTPFetcher(root string) *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: 10 * time.Second},
		MaxBytes: defaultMaxBytes,
		Root:     root,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if path, ok := strings.CutPrefix(url, "file://"); ok {
		return f.readFile(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset: unexpected status %d", resp.StatusCode)
	}
	return f.limit(resp.Body)
}

func (f *HTTPFetcher) readFile(path string) ([]byte, error) {
	if f.Root == "" {
		return nil, fmt.Errorf("asset: file urls are disabled")
	}
	full := filepath.Join(f.Root, filepath.Clean("/"+path))
	file, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.limit(file)
}

func (f *HTTPFetcher) limit(r io.Reader) ([]byte, error) {
	max := f.MaxBytes
	if max <= 0 {
		max = defaultMaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > max {
		return nil, ErrTooLarge
	}
	return raw, nil
}
