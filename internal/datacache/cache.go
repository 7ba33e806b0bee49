package datacache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashportal/hashportal/internal/content"
)

// maxDocumentBytes caps a single document body.
const maxDocumentBytes = 8 << 20

// ErrTooLarge is wrapped by a LoadError whose body exceeds maxDocumentBytes.
var ErrTooLarge = errors.New("document too large")

// LoadError is returned when a document cannot be fetched or parsed.
// Failed loads are never cached.
type LoadError struct {
	Path   string
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s の読み込みに失敗しました。", e.Path)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Detail describes the underlying cause for logs.
func (e *LoadError) Detail() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Cache memoizes parsed documents by request path for the lifetime of one
// page session. Entries are never evicted. It is safe for concurrent use
// because fetches run off the event loop.
type Cache struct {
	client *http.Client
	base   *url.URL

	mu      sync.Mutex
	entries map[string]any
	fetches int
}

// Options configures a Cache.
type Options struct {
	// BaseURL is resolved against each document path. An http(s) URL uses
	// the network; empty means Dir is served through a file transport.
	BaseURL string
	// Dir is the local content root used when BaseURL is empty.
	Dir string
	// Timeout bounds a single fetch. Zero means no timeout.
	Timeout time.Duration
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// New creates an empty cache.
func New(opts Options) (*Cache, error) {
	transport := opts.Transport
	base := opts.BaseURL
	if base == "" {
		if transport == nil {
			transport = NewDirTransport(opts.Dir)
		}
		base = "file:///"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Cache{
		client:  &http.Client{Transport: transport, Timeout: opts.Timeout},
		base:    u,
		entries: make(map[string]any),
	}, nil
}

// NewDirTransport serves requests from a local directory. Missing files
// produce a 404 response rather than a transport error.
func NewDirTransport(dir string) http.RoundTripper {
	if dir == "" {
		dir = "."
	}
	return http.NewFileTransport(http.Dir(dir))
}

// Fetches returns the number of requests issued so far.
func (c *Cache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Cached reports whether path already holds a parsed document.
func (c *Cache) Cached(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[path]
	return ok
}

// Load returns the document at path decoded as a list of T. The first
// successful call fetches and parses it; later calls return the same value
// without a request.
func Load[T any](ctx context.Context, c *Cache, path string) (content.Document[T], error) {
	c.mu.Lock()
	if v, ok := c.entries[path]; ok {
		c.mu.Unlock()
		doc, ok := v.(content.Document[T])
		if !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("cached document has type %T", v)}
		}
		return doc, nil
	}
	c.mu.Unlock()

	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := content.Decode[T](body)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("parsing document: %w", err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent load may have won; keep the first stored value so every
	// caller shares one instance.
	if v, ok := c.entries[path]; ok {
		if existing, ok := v.(content.Document[T]); ok {
			return existing, nil
		}
	}
	c.entries[path] = doc
	return doc, nil
}

func (c *Cache) fetch(ctx context.Context, path string) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("parsing path: %w", err)}
	}
	target := c.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	c.mu.Lock()
	c.fetches++
	c.mu.Unlock()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Path: path, Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(body) > maxDocumentBytes {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, maxDocumentBytes)}
	}
	return body, nil
}
