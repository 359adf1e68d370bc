// Package check probes URLs over HTTP and classifies the outcome.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/dmaher/bmorganize/internal/domain"
)

type Checker struct {
	Client      *http.Client
	HeadFirst   bool
	UserAgent   string
	MaxBodyRead int64
}

func New(timeout time.Duration, headFirst bool, userAgent string) *Checker {
	return &Checker{
		Client: &http.Client{
			Timeout: timeout,
		},
		HeadFirst:   headFirst,
		UserAgent:   userAgent,
		MaxBodyRead: 1 << 20, // 1MB safety cap
	}
}

// Check probes a single URL once. One attempt is final for the run;
// there are no retries beyond the HEAD-to-GET fallback.
func (c *Checker) Check(ctx context.Context, link string) domain.Result {
	if c.HeadFirst {
		res := c.do(ctx, http.MethodHead, link)
		// Some servers reject HEAD; fall back to GET.
		if res.Err == nil && (res.StatusCode == http.StatusMethodNotAllowed || res.StatusCode == http.StatusBadRequest) {
			res = c.do(ctx, http.MethodGet, link)
		}
		if res.Err != nil {
			var he *http.ProtocolError
			if errors.As(res.Err, &he) {
				return c.do(ctx, http.MethodGet, link)
			}
		}
		return res
	}

	return c.do(ctx, http.MethodGet, link)
}

func (c *Checker) do(ctx context.Context, method, link string) domain.Result {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return classify(link, 0, fmt.Errorf("new request: %w", err), 0)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	start := time.Now()
	resp, err := c.Client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		return classify(link, 0, fmt.Errorf("%s request: %w", method, err), elapsed)
	}
	defer resp.Body.Close()

	// Drain a little body on GET to avoid keepalive issues with some servers.
	if method == http.MethodGet {
		_, _ = io.CopyN(io.Discard, resp.Body, c.MaxBodyRead)
	}

	return classify(link, resp.StatusCode, nil, elapsed)
}

// classify maps a probe to an outcome: 2xx/3xx working, any status
// >= 400 or a refused connection dead, every other transport failure
// (timeout, DNS, TLS) error.
func classify(link string, status int, err error, elapsed time.Duration) domain.Result {
	res := domain.Result{
		URL:        link,
		StatusCode: status,
		Domain:     hostOf(link),
		Err:        err,
		Elapsed:    elapsed,
		ElapsedMS:  elapsed.Milliseconds(),
	}

	switch {
	case err != nil && errors.Is(err, syscall.ECONNREFUSED):
		res.Outcome = domain.OutcomeDead
		res.ErrText = err.Error()
	case err != nil:
		res.Outcome = domain.OutcomeError
		res.ErrText = err.Error()
	case status >= 200 && status < 400:
		res.Outcome = domain.OutcomeWorking
	case status >= 400:
		res.Outcome = domain.OutcomeDead
	default:
		res.Outcome = domain.OutcomeError
	}

	return res
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
