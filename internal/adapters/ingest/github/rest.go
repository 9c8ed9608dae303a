package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	perr "streaks/internal/platform/errors"

	gh "github.com/google/go-github/v62/github"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
)

const (
	eventsPerPage = 100
	maxEventPages = 3
)

// rest returns a go-github client bound to the request credential
// it shares the collector metrics through an instrumented transport
func (c *Client) rest(ctx context.Context, kind string) *gh.Client {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	labels := prometheus.Labels{"kind": kind}
	rt := promhttp.InstrumentRoundTripperCounter(
		c.metrics.requests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(c.metrics.latency.MustCurryWith(labels), base),
	)
	hc := &http.Client{Timeout: c.http.Timeout, Transport: rt}
	if tok := c.token(ctx); tok != "" {
		hc = oauth2.NewClient(
			context.WithValue(ctx, oauth2.HTTPClient, hc),
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok}),
		)
		hc.Timeout = c.http.Timeout
	}
	cl := gh.NewClient(hc)
	cl.BaseURL = c.restBase
	cl.UserAgent = c.opts.UserAgent
	return cl
}

// User fetches the public profile of login
func (c *Client) User(ctx context.Context, login string) (*gh.User, error) {
	u, resp, err := c.rest(ctx, "user").Users.Get(ctx, login)
	if err != nil {
		return nil, restErr("user", login, resp, err)
	}
	return u, nil
}

// PublicEvents returns the creation instants of the most recent public events of login
// GitHub serves at most 300 events from the last 90 days
func (c *Client) PublicEvents(ctx context.Context, login string) ([]time.Time, error) {
	cl := c.rest(ctx, "events")
	opt := &gh.ListOptions{PerPage: eventsPerPage}
	var out []time.Time
	for page := 0; page < maxEventPages; page++ {
		evs, resp, err := cl.Activity.ListEventsPerformedByUser(ctx, login, true, opt)
		if err != nil {
			return nil, restErr("events", login, resp, err)
		}
		for _, ev := range evs {
			if at := ev.GetCreatedAt(); !at.IsZero() {
				out = append(out, at.Time)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

// restErr maps go-github failures onto project errors
func restErr(kind, login string, resp *gh.Response, err error) error {
	var rle *gh.RateLimitError
	var abuse *gh.AbuseRateLimitError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &rle), errors.As(err, &abuse):
		return perr.Wrapf(err, perr.ErrorCodeTooManyRequests, "github rate limited")
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		return perr.NotFoundf("github user %q not found", login)
	case resp != nil && resp.StatusCode == http.StatusUnauthorized:
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "github rejected credentials")
	default:
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "github %s failed", kind)
	}
}
