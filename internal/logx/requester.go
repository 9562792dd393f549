// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logx

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// trimBodyAt caps the response body excerpt kept in the log record.
const trimBodyAt = 512

// LoggingRoundTripper logs every outgoing request and its response at level.
// The response body is peeked, not consumed: the caller still reads it whole.
func LoggingRoundTripper(lg *slog.Logger, level slog.Level) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			lg.LogAttrs(req.Context(), level, "request sent",
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
			)

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				lg.LogAttrs(req.Context(), level, "request failed",
					slog.Duration("elapsed", elapsed),
					slog.Any("err", err),
				)
				return resp, err
			}

			var excerpt string
			resp.Body, excerpt = peek(resp.Body, trimBodyAt)
			lg.LogAttrs(req.Context(), level, "response received",
				slog.Int("status", resp.StatusCode),
				slog.Duration("elapsed", elapsed),
				slog.String("body", excerpt),
			)
			return resp, nil
		})
	}
}

// peek reads up to limit bytes from r and returns a reader replaying them
// before the rest of r, plus a single-line excerpt of what was read.
func peek(r io.ReadCloser, limit int64) (io.ReadCloser, string) {
	if r == nil {
		return nil, ""
	}

	buf := &bytes.Buffer{}
	n, err := io.CopyN(buf, r, limit)

	excerpt := buf.String()
	if n == limit {
		excerpt += "..."
	}
	excerpt = strings.Join(strings.Fields(excerpt), " ")

	if err != nil {
		// r is exhausted (or broken); the buffer holds everything there is.
		_ = r.Close()
		return io.NopCloser(bytes.NewReader(buf.Bytes())), excerpt
	}
	return &closer{rd: io.MultiReader(buf, r), closeFn: r.Close}, excerpt
}

type closer struct {
	rd      io.Reader
	closeFn func() error
}

func (c *closer) Read(p []byte) (n int, err error) { return c.rd.Read(p) }
func (c *closer) Close() error                     { return c.closeFn() }
