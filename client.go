package libclient

import (
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// DefaultAPIBasePath is prepended to every resolved resource path.
const DefaultAPIBasePath = "/api"

// Config carries the immutable client configuration. A client is signed
// when both TokenKey and TokenSecret are present; otherwise requests go
// out unauthenticated.
type Config struct {
	ServerURL   string
	APIBasePath string // defaults to DefaultAPIBasePath

	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string

	// HTTPClient overrides the built-in transport. When the client is
	// signed, it is used as the base for the signing round tripper.
	HTTPClient *http.Client

	// Timeout for the whole exchange; zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds a full request/response exchange.
const DefaultTimeout = 30 * time.Second

// Client issues HTTP verbs against resolved resource URLs and translates
// transport failures into the package's error taxonomy. It holds no mutable
// state after construction and is safe for concurrent use when its
// underlying transport is.
type Client struct {
	serverURL string
	basePath  string
	http      *http.Client
	signed    bool
}

// New builds a client from cfg. OAuth1 signing (single consumer/token pair)
// is delegated to the oauth1 transport when a full token pair is supplied.
func New(cfg Config) *Client {
	basePath := cfg.APIBasePath
	if basePath == "" {
		basePath = DefaultAPIBasePath
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		base = newHTTPClient(timeout)
	}

	c := &Client{
		serverURL: strings.TrimSuffix(cfg.ServerURL, "/"),
		basePath:  basePath,
		http:      base,
	}

	if cfg.TokenKey != "" && cfg.TokenSecret != "" {
		oc := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
		token := oauth1.NewToken(cfg.TokenKey, cfg.TokenSecret)
		ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
		c.http = oc.Client(ctx, token)
		c.http.Timeout = timeout
		c.signed = true
	}

	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// Signed reports whether requests carry an OAuth signature.
func (c *Client) Signed() bool { return c.signed }

// SetTransport installs a pre-built signing round tripper and marks the
// client authenticated. This is the escape hatch for hosts that manage
// their own signing filter instead of passing a token pair.
func (c *Client) SetTransport(rt http.RoundTripper) {
	timeout := c.http.Timeout
	c.http = &http.Client{Transport: rt, Timeout: timeout}
	c.signed = true
}

// Routes maps logical resource keys to URL path templates. Each façade owns
// one fixed table; tables are never mutated after configuration load.
type Routes map[string]string

// Resource targets one resolved resource path. key takes precedence over
// path when it exists in routes.
func (c *Client) Resource(routes Routes, key, path string) *Resource {
	if key != "" {
		if p, ok := routes[key]; ok {
			path = p
		}
	}
	return &Resource{client: c, base: path}
}

// Resource issues verbs against a single resolved base path, with optional
// per-call subpaths appended to it.
type Resource struct {
	client *Client
	base   string
}

// URL returns the absolute URL for a subpath of the resource.
func (r *Resource) URL(sub string) string {
	return r.client.serverURL + r.client.basePath + r.base + sub
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get issues a GET with optional query parameters. Non-2xx statuses are
// translated into the error taxonomy.
func (r *Resource) Get(ctx context.Context, sub string, query url.Values) (*Response, error) {
	res, err := r.do(ctx, http.MethodGet, sub, query, nil)
	if err != nil {
		return nil, err
	}
	if err := ErrorFromStatus("libclient.get", res.StatusCode); err != nil {
		return nil, err
	}
	return res, nil
}

// Post submits a URL-encoded form. Non-2xx statuses are translated.
func (r *Resource) Post(ctx context.Context, sub string, form url.Values) (*Response, error) {
	res, err := r.do(ctx, http.MethodPost, sub, nil, form)
	if err != nil {
		return nil, err
	}
	if err := ErrorFromStatus("libclient.post", res.StatusCode); err != nil {
		return nil, err
	}
	return res, nil
}

// Put submits a URL-encoded form. 404/410/401 are translated; any other
// status is returned to the caller, which branches on it before decoding
// (edit operations turn non-200 bodies into EditFormError).
func (r *Resource) Put(ctx context.Context, sub string, form url.Values) (*Response, error) {
	return r.do(ctx, http.MethodPut, sub, nil, form)
}

// Delete issues a DELETE. Non-2xx statuses are translated.
func (r *Resource) Delete(ctx context.Context, sub string) (*Response, error) {
	res, err := r.do(ctx, http.MethodDelete, sub, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := ErrorFromStatus("libclient.delete", res.StatusCode); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resource) do(ctx context.Context, method, sub string, query, form url.Values) (*Response, error) {
	op := "libclient." + strings.ToLower(method)

	target := r.URL(sub)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &APIError{Op: op, Kind: KindTransport, Err: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, Kind: KindTransport, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return nil, &APIError{Op: op, Kind: KindNotFound, Status: resp.StatusCode, Err: ErrResourceDoesNotExist}
	case http.StatusUnauthorized:
		return nil, &APIError{Op: op, Kind: KindForbidden, Status: resp.StatusCode, Err: ErrAccessForbidden}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       raw,
	}, nil
}

// PaginationParams derives the wire query for a 1-indexed page:
// start = page*count - count, count = count. Both inputs are accepted as
// integers or numeric strings.
func PaginationParams(page, count any) (url.Values, error) {
	p, err := toInt(page)
	if err != nil {
		return nil, &APIError{Op: "libclient.pagination", Kind: KindInvalidArgument, Err: fmt.Errorf("%w: page: %v", ErrInvalidArgument, err)}
	}
	c, err := toInt(count)
	if err != nil {
		return nil, &APIError{Op: "libclient.pagination", Kind: KindInvalidArgument, Err: fmt.Errorf("%w: count: %v", ErrInvalidArgument, err)}
	}

	v := url.Values{}
	v.Set("start", strconv.Itoa(p*c-c))
	v.Set("count", strconv.Itoa(c))
	return v, nil
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("non-integral value %v", t)
		}
		return int(t), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("unsupported numeric value %v (%T)", v, v)
	}
}
