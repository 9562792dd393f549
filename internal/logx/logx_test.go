// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logx

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, slog.LevelWarn, false)
	lg.Info("hidden")
	lg.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, true).Info("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestLoggingRoundTripperKeepsBody(t *testing.T) {
	body := strings.Repeat("x", trimBodyAt*2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	lg := New(&buf, slog.LevelDebug, false)
	client := &http.Client{Transport: LoggingRoundTripper(lg, slog.LevelDebug)(http.DefaultTransport)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, body, string(got))
	assert.Contains(t, buf.String(), "request sent")
	assert.Contains(t, buf.String(), "response received")
	assert.Contains(t, buf.String(), "status=200")
	assert.Contains(t, buf.String(), "...")
}

func TestPeekShortBody(t *testing.T) {
	rc, excerpt := peek(io.NopCloser(strings.NewReader("a  b\nc")), 64)
	assert.Equal(t, "a b c", excerpt)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a  b\nc", string(got))
}
