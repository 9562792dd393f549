// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"

	"github.com/pdiddy/arxiv-digest/internal/logx"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// NewClient returns an HTTP client with the configured timeout that sets the
// User-Agent header on every request and logs traffic at debug level.
func NewClient(cfg types.APIConfig, lg *slog.Logger) *http.Client {
	rq := requester.New(
		http.Client{Timeout: cfg.Timeout},
		middleware.Header("User-Agent", cfg.UserAgent),
		logx.LoggingRoundTripper(lg, slog.LevelDebug),
	)
	return rq.Client()
}
