package ncbi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/ncbi-mcp/internal/ratelimit"
	"github.com/dshills/ncbi-mcp/pkg/types"
)

// Client issues requests against NCBI E-utilities and BLAST endpoints.
// Every outbound call passes through the shared rate limiter before the
// request is made. The client carries no per-request state and is safe for
// concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	log        *zap.Logger
}

// NewClient creates a client using the shared limiter. The limiter must be
// the single process-wide instance; constructing a second one defeats the
// cross-tool rate invariant.
func NewClient(cfg Config, limiter *ratelimit.Limiter, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		limiter: limiter,
		log:     log,
	}
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// baseParams returns the identification parameters NCBI requires on every
// E-utilities request.
func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("tool", c.cfg.Tool)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

// eutils performs one GET against an E-utilities endpoint (esearch, efetch,
// esummary, elink, einfo) with identification parameters merged in.
func (c *Client) eutils(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	merged := c.baseParams()
	for key, vals := range params {
		for _, v := range vals {
			merged.Add(key, v)
		}
	}
	return c.get(ctx, c.cfg.BaseURL+"/"+endpoint+".fcgi", merged)
}

// get acquires the rate limiter, issues a single GET, and returns the body.
// Failures map onto the error taxonomy: ErrTransport when the request never
// completed, ErrRemote on a non-success status. There is no retry; failures
// surface immediately with endpoint and status detail.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrTransport, err)
	}

	full := rawURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", types.ErrTransport, rawURL, err)
	}

	c.log.Debug("outbound request", zap.String("url", rawURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrTransport, rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body from %s: %v", types.ErrTransport, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d: %s",
			types.ErrRemote, rawURL, resp.StatusCode, bodySnippet(body))
	}

	return body, nil
}

// bodySnippet trims a response body for inclusion in error messages
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
