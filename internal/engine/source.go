package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Source is where the dataset comes from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{URL: location, Client: client}
	}
	return FileSource(location)
}

// FileSource reads a local CSV file.
type FileSource string

func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileSource) String() string { return string(f) }

// HTTPSource fetches the CSV with a single GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (h *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", h.URL, resp.Status)
	}
	return resp.Body, nil
}

func (h *HTTPSource) String() string { return h.URL }
