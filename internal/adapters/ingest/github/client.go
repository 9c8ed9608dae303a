// Package github is the contribution collector backed by the GitHub GraphQL and REST v3 APIs
package github

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	perr "streaks/internal/platform/errors"
	"streaks/internal/platform/logger"
	pnet "streaks/internal/platform/net"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"
)

const (
	baseURLDefault    = "https://api.github.com"
	graphQLURLDefault = "https://api.github.com/graphql"
	defaultTimeout    = 10 * time.Second
	defaultUA         = "streaks-collector"
	defaultMaxRetry   = 3
	defaultRetryBase  = 500 * time.Millisecond
	maxBackoff        = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL    string
	GraphQLURL string
	UserAgent  string
	Timeout    time.Duration

	// Comma separated tokens rotated round robin
	// empty means tokenless which limits the collector to public REST data
	TokensCSV string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// Metrics receives the collector instruments, nil keeps them unregistered
	Metrics prometheus.Registerer
}

// Client is a minimal GitHub client with token rotation, retries and rate limit handling
type Client struct {
	http     *http.Client
	opts     Options
	restBase *url.URL
	tokens   []string
	cur      atomic.Int32
	log      logger.Logger
	metrics  *metrics
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.GraphQLURL == "" {
		o.GraphQLURL = strings.TrimRight(o.BaseURL, "/") + "/graphql"
		if o.BaseURL == baseURLDefault {
			o.GraphQLURL = graphQLURLDefault
		}
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	var toks []string
	for t := range strings.SplitSeq(o.TokensCSV, ",") {
		if t = strings.TrimSpace(t); t != "" {
			toks = append(toks, t)
		}
	}
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/") + "/")
	if err != nil {
		logger.Named("github").Panic().Err(err).Str("base_url", o.BaseURL).Msg("invalid github base url")
	}
	return &Client{
		http:     &http.Client{Timeout: o.Timeout},
		opts:     o,
		restBase: base,
		tokens:   toks,
		log:      *logger.Named("github"),
		metrics:  newMetrics(o.Metrics),
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// HasToken reports whether a call made with ctx will be authenticated
func (c *Client) HasToken(ctx context.Context) bool {
	return pnet.Credential(ctx) != "" || len(c.tokens) > 0
}

// token returns the request credential when present, else the next configured token
func (c *Client) token(ctx context.Context) string {
	if tok := pnet.Credential(ctx); tok != "" {
		return tok
	}
	if len(c.tokens) == 0 {
		return ""
	}
	n := int(c.cur.Add(1))
	return c.tokens[n%len(c.tokens)]
}

// Do issues a request with auth headers, retries, and rate limit handling
// body is replayed on every attempt; kind labels logs and metrics
func (c *Client) Do(ctx context.Context, kind, method, rawURL string, body []byte) (*http.Response, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/vnd.github+json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.token(ctx); tok != "" {
			(&oauth2.Token{AccessToken: tok}).SetAuthHeader(req)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)
		c.metrics.latency.WithLabelValues(kind).Observe(lat.Seconds())

		if err != nil {
			c.metrics.requests.WithLabelValues(kind, "error").Inc()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github %s failed", kind)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Str("kind", kind).Dur("retry_in", back).Int("attempt", attempts).Msg("github transport error retrying")
			if err := c.retryWait(ctx, kind, "transport", back); err != nil {
				return nil, err
			}
			attempts++
			continue
		}

		c.metrics.requests.WithLabelValues(kind, strconv.Itoa(resp.StatusCode)).Inc()
		rw := readRateWindow(resp.Header)
		c.log.Debug().
			Str("kind", kind).
			Str("method", method).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Int("rate_remaining", rw.remaining).
			Time("rate_reset", rw.reset).
			Dur("retry_after", rw.retryAfter).
			Msg("github http response")

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			return resp, nil
		case http.StatusNotFound:
			_ = discard(resp.Body)
			return nil, perr.NotFoundf("github %s not found", kind)
		case http.StatusUnauthorized:
			// a bad server credential is our problem, not the caller's
			_ = discard(resp.Body)
			return nil, perr.Unavailablef("github rejected credentials")
		case http.StatusTooManyRequests, http.StatusForbidden:
			wait := rw.wait(c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = discard(resp.Body)
			if !c.shouldRetry(attempts) || wait > maxBackoff {
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "github rate limited")
			}
			c.log.Warn().Str("kind", kind).Dur("sleep", wait).Msg("github rate limited backing off")
			if err := c.retryWait(ctx, kind, "rate_limit", wait); err != nil {
				return nil, err
			}
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = discard(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "github transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Str("kind", kind).Dur("retry_in", back).Int("attempt", attempts).Msg("github transient error retrying")
			if err := c.retryWait(ctx, kind, "transient", back); err != nil {
				return nil, err
			}
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Wrap(
				&UnexpectedStatus{Code: resp.StatusCode, Tail: string(tail)},
				perr.ErrorCodeUpstream,
				"github unexpected status",
			)
		}
	}
}

// Ping checks reachability and credentials against the rate limit endpoint
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, "rate_limit", http.MethodGet, c.restBase.String()+"rate_limit", nil)
	if err != nil {
		return err
	}
	return discard(resp.Body)
}

func (c *Client) retryWait(ctx context.Context, kind, reason string, d time.Duration) error {
	c.metrics.retries.WithLabelValues(kind, reason).Inc()
	return c.sleep(ctx, d)
}

func (c *Client) backoff(attempt int) time.Duration {
	// simple exponential with cap
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
