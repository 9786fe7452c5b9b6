package handler

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/philipp01105/wryte/core"
)

// HTTPConfig holds configuration for the HTTP handler
type HTTPConfig struct {
	// URL receives one POST per record
	URL string
	// ContentType of the request body (default: application/json)
	ContentType string
	// Headers are added to every request
	Headers map[string]string
	// Timeout bounds each request (default: 5s)
	Timeout time.Duration
}

// HTTPHandler POSTs each record to an HTTP endpoint
type HTTPHandler struct {
	url         string
	contentType string
	headers     map[string]string
	timeout     time.Duration
	client      *fasthttp.Client

	mu     sync.RWMutex
	closed bool
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(cfg HTTPConfig) (*HTTPHandler, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, core.NewConfigurationError("new http handler",
			fmt.Errorf("%w: invalid url %q", core.ErrInvalidSettings, cfg.URL))
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &HTTPHandler{
		url:         cfg.URL,
		contentType: cfg.ContentType,
		headers:     cfg.Headers,
		timeout:     cfg.Timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			MaxIdleConnDuration: 10 * time.Second,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
		},
	}, nil
}

// NewLogzioHandler creates a handler for the logz.io bulk listener.
// logType becomes the type of the shipped documents.
func NewLogzioHandler(listenerURL, token, logType string) (*HTTPHandler, error) {
	if token == "" {
		return nil, core.NewConfigurationError("new logzio handler",
			fmt.Errorf("%w: token is required", core.ErrInvalidSettings))
	}
	q := url.Values{}
	q.Set("token", token)
	q.Set("type", logType)
	return NewHTTPHandler(HTTPConfig{
		URL:         strings.TrimRight(listenerURL, "/") + "/?" + q.Encode(),
		ContentType: "text/plain",
	})
}

// NewElasticsearchHandler creates a handler that indexes each record as a
// document of index. host may omit the scheme.
func NewElasticsearchHandler(host, index string) (*HTTPHandler, error) {
	if host == "" || index == "" {
		return nil, core.NewConfigurationError("new elasticsearch handler",
			fmt.Errorf("%w: host and index are required", core.ErrInvalidSettings))
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return NewHTTPHandler(HTTPConfig{
		URL: strings.TrimRight(host, "/") + "/" + url.PathEscape(index) + "/_doc",
	})
}

// URL returns the endpoint records are sent to.
func (h *HTTPHandler) URL() string {
	return h.url
}

// Handle sends p as the request body. A non-2xx status is an error.
func (h *HTTPHandler) Handle(_ core.Level, p []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(h.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(h.contentType)
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}
	req.SetBody(p)

	if err := h.client.DoTimeout(req, resp, h.timeout); err != nil {
		return fmt.Errorf("post %s: %w", h.url, err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return fmt.Errorf("post %s: server returned status %d: %s", h.url, status, resp.Body())
	}
	return nil
}

// Close closes idle connections
func (h *HTTPHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.client.CloseIdleConnections()
	return nil
}
