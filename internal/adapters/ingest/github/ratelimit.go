package github

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// UnexpectedStatus is the cause wrapped under ErrorCodeUpstream when GitHub answers outside the handled set
type UnexpectedStatus struct {
	Code int
	Tail string // first bytes of the body
}

func (u *UnexpectedStatus) Error() string {
	return fmt.Sprintf("github answered %d: %s", u.Code, u.Tail)
}

// rateWindow is what GitHub tells us about our remaining budget on each response
type rateWindow struct {
	remaining  int
	reset      time.Time
	retryAfter time.Duration
}

func readRateWindow(h http.Header) rateWindow {
	w := rateWindow{
		remaining:  headerInt(h, "X-RateLimit-Remaining"),
		retryAfter: time.Duration(headerInt(h, "Retry-After")) * time.Second,
	}
	if sec := headerInt(h, "X-RateLimit-Reset"); sec > 0 {
		w.reset = time.Unix(int64(sec), 0).UTC()
	}
	return w
}

// wait is the pause GitHub asked for, zero when it expressed no opinion
// Retry-After wins over an exhausted window
func (w rateWindow) wait(now time.Time) time.Duration {
	switch {
	case w.retryAfter > 0:
		return w.retryAfter
	case w.remaining <= 0 && w.reset.After(now):
		return w.reset.Sub(now)
	}
	return 0
}

// headerInt is 0 for missing or malformed values
func headerInt(h http.Header, key string) int {
	n, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return n
}

// discard lets the transport reuse the connection
func discard(body io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 512))
	return body.Close()
}
