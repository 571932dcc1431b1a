package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"pitwall/internal/config"
	"pitwall/internal/logging"
)

const userAgent = "pitwall/1.0"

// ErrAbsent reports that a document does not exist on either host. Absence is
// an expected outcome for many session documents, not an error condition.
var ErrAbsent = errors.New("document absent")

// ErrCorrupt reports a 2xx response whose body could not be parsed. This is
// the only fetch failure that propagates as a hard error.
var ErrCorrupt = errors.New("corrupt document")

// errDenied marks a 403 from the primary host; it skips the retry loop and
// falls straight through to the mirror.
var errDenied = errors.New("access denied")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}

// Client fetches archive documents with throttling, retries, and mirror
// fallback.
type Client struct {
	baseURL    string
	mirrorURL  string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
	retryBase  time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter overrides the shared request rate limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithRetryPolicy overrides the per-host retry count and initial backoff.
func WithRetryPolicy(maxRetries int, base time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = uint64(maxRetries)
		}
		if base > 0 {
			c.retryBase = base
		}
	}
}

// WithLogger attaches a logger for retry and fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.WithComponent(logger, "archive")
		}
	}
}

// New creates an archive client. mirrorURL may be empty to disable fallback.
func New(baseURL, mirrorURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("archive base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		mirrorURL:  strings.TrimRight(strings.TrimSpace(mirrorURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		maxRetries: 3,
		retryBase:  time.Second,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig creates an archive client from application configuration.
func NewFromConfig(cfg config.Archive, logger *slog.Logger) (*Client, error) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestDelayMS > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(cfg.RequestDelayMS)*time.Millisecond), 1)
	}
	return New(cfg.BaseURL, cfg.MirrorURL,
		WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}),
		WithLimiter(limiter),
		WithRetryPolicy(cfg.MaxRetries, time.Duration(cfg.RetryBaseMS)*time.Millisecond),
		WithLogger(logger),
	)
}

// fetchOnce performs one throttled GET against host+path and classifies the
// response status.
func (c *Client) fetchOnce(ctx context.Context, host, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/"+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return payload, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrAbsent
	case resp.StatusCode == http.StatusForbidden:
		return nil, errDenied
	default:
		return nil, &statusError{code: resp.StatusCode}
	}
}

// fetchHost wraps fetchOnce with exponential-backoff retries for transient
// failures (5xx, 429, transport errors). Absence, denial, and other statuses
// are permanent for the host.
func (c *Client) fetchHost(ctx context.Context, host, path string) ([]byte, error) {
	var payload []byte
	operation := func() error {
		data, err := c.fetchOnce(ctx, host, path)
		if err != nil {
			if errors.Is(err, ErrAbsent) || errors.Is(err, errDenied) {
				return backoff.Permanent(err)
			}
			var status *statusError
			if errors.As(err, &status) && !retryableStatus(status.code) {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		payload = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("retrying fetch",
			slog.String("host", host),
			slog.String("path", path),
			slog.Duration("wait", wait),
			slog.Any("error", err))
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx),
		notify)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Fetch retrieves one document by relative path, falling back to the mirror
// when the primary denies or exhausts the request. It returns ErrAbsent for
// any soft failure; 404 on the primary is authoritative and skips the mirror.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	payload, err := c.fetchHost(ctx, c.baseURL, path)
	if err == nil {
		return payload, nil
	}
	if errors.Is(err, ErrAbsent) {
		return nil, ErrAbsent
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if c.mirrorURL != "" {
		payload, merr := c.fetchHost(ctx, c.mirrorURL, path)
		if merr == nil {
			c.logger.Info("fetched from mirror", slog.String("path", path))
			return payload, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		err = merr
	}

	c.logger.Warn("fetch failed on all hosts", slog.String("path", path), slog.Any("error", err))
	return nil, ErrAbsent
}

// Document fetches path and decodes its JSON body into target, stripping the
// byte-order mark the upstream occasionally emits. A body that fails to
// decode is reported as ErrCorrupt.
func (c *Client) Document(ctx context.Context, path string, target any) error {
	payload, err := c.Fetch(ctx, path)
	if err != nil {
		return err
	}
	payload = bytes.TrimPrefix(payload, []byte("\xef\xbb\xbf"))
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w %q: %v", ErrCorrupt, path, err)
	}
	return nil
}

// SeasonIndex fetches the meeting/session index for a season.
func (c *Client) SeasonIndex(ctx context.Context, year int) (*RawSeasonIndex, error) {
	var index RawSeasonIndex
	if err := c.Document(ctx, fmt.Sprintf("%d/Index.json", year), &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// SessionDocument fetches one named document under a session's archive path.
func (c *Client) SessionDocument(ctx context.Context, sessionPath, name string, target any) error {
	if !strings.HasSuffix(sessionPath, "/") {
		sessionPath += "/"
	}
	return c.Document(ctx, sessionPath+name, target)
}
