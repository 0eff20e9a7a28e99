// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the search client.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with exponential backoff starting at RetryBaseDelay and doubling
// each attempt.
//
// When maxRetries is 0 or negative the request is sent exactly once. On each
// 429 the response body is drained and closed before sleeping. If the context
// is cancelled during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last 429 response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(cloneRequest(ctx, req))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		logrus.WithFields(logrus.Fields{
			"url":     req.URL.String(),
			"backoff": backoff,
			"attempt": attempt + 1,
			"max":     maxRetries,
		}).Warn("rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// cloneRequest copies req for another attempt. A request body is rewound
// through GetBody so POST requests can be resent.
func cloneRequest(ctx context.Context, req *http.Request) *http.Request {
	r := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			r.Body = body
		}
	}
	return r
}
