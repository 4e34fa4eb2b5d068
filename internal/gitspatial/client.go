package gitspatial

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

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Elpulgo/gitspatial-tui/internal/metrics"
)

// DefaultTimeout bounds every HTTP call, including poll ticks.
const DefaultTimeout = 30 * time.Second

// DefaultRateLimit is the number of requests per second the CLI allows
// itself, shared by every controller.
const DefaultRateLimit = 10

const breakerPrefix = "sync-status:"

// Client represents a GitSpatial API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger

	// Status polls run through one breaker per resource. Start and stop
	// requests never do: each is exactly one call to the server.
	mu       sync.Mutex
	breakers map[Ref]*gobreaker.CircuitBreaker[[]byte]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRateLimit caps outgoing requests at n per window, allowing bursts of n.
// Callers block until a request slot is free.
func WithRateLimit(n int, window time.Duration) Option {
	return func(c *Client) {
		if n <= 0 || window <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(window/time.Duration(n)), n)
	}
}

// NewClient creates a new GitSpatial API client
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", baseURL)
	}

	if token == "" {
		return nil, fmt.Errorf("API token cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log:      zerolog.Nop(),
		breakers: make(map[Ref]*gobreaker.CircuitBreaker[[]byte]),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Host returns the server host for display.
func (c *Client) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL
	}
	return u.Host
}

// BreakerState returns the state of the status-poll breaker for ref. A
// resource that has never been polled is closed.
func (c *Client) BreakerState(ref Ref) gobreaker.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.breakers[ref]; ok {
		return b.State()
	}
	return gobreaker.StateClosed
}

func (c *Client) breakerFor(ref Ref) *gobreaker.CircuitBreaker[[]byte] {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breakers[ref]
	if !ok {
		b = newBreaker(breakerPrefix+ref.String(), c.log)
		c.breakers[ref] = b
	}
	return b
}

// newBreaker trips after five consecutive transport or server failures and
// half-opens after thirty seconds.
func newBreaker(name string, log zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// The server answered; a 4xx says nothing about its health.
			var rejected *RequestRejected
			return errors.As(err, &rejected) && rejected.StatusCode < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// poll fetches the status of ref through its breaker. A short-circuited
// poll is a transport failure, so the poller retries it on the next tick.
func (c *Client) poll(ref Ref) ([]byte, error) {
	path := ref.StatusPath()
	body, err := c.breakerFor(ref).Execute(func() ([]byte, error) {
		return c.send(http.MethodGet, path)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &TransportError{Op: http.MethodGet + " " + path, Err: err}
	}
	return body, err
}

// send performs one HTTP request against the GitSpatial server
func (c *Client) send(method, path string) ([]byte, error) {
	op := method + " " + path
	requestID := uuid.NewString()

	if c.limiter != nil {
		if err := c.limiter.Wait(context.Background()); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("op", op).Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestRejected{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(body),
		}
	}

	return body, nil
}

// decodeErrorMessage extracts {"message": ...} from an error body, if present.
func decodeErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return strings.TrimSpace(er.Message)
}
