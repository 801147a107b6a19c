package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/feedback/pkg/apierror"
	"github.com/vango-dev/feedback/pkg/metrics"
	"github.com/vango-dev/feedback/pkg/notify"
	"github.com/vango-dev/feedback/pkg/toast"
)

type harness struct {
	srv     *Server
	toasts  []toast.Toast
	records []string
}

func newHarness(t *testing.T, mutate func(*Options)) *harness {
	t.Helper()
	h := &harness{}
	n := notify.New(toast.ToasterFunc(func(tt toast.Toast) { h.toasts = append(h.toasts, tt) }))
	sink := apierror.SinkFunc(func(label string, _ any) { h.records = append(h.records, label) })
	opts := Options{
		Notifier: n,
		Reporter: apierror.New(sink, n),
	}
	if mutate != nil {
		mutate(&opts)
	}
	h.srv = New(opts)
	return h
}

func (h *harness) request(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	return rec
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	return h.serve(h.request(method, path, body))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestToastLevels(t *testing.T) {
	tests := []struct {
		level       string
		wantVariant toast.Variant
	}{
		{"success", toast.VariantDefault},
		{"error", toast.VariantDestructive},
		{"info", toast.VariantDefault},
		{"warning", toast.VariantDefault},
		{"ERROR", toast.VariantDestructive},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			h := newHarness(t, nil)

			rec := h.do(http.MethodPost, "/toast", `{"level":"`+tt.level+`","title":"Saved","description":"All good"}`)

			require.Equal(t, http.StatusAccepted, rec.Code)
			require.Len(t, h.toasts, 1)
			assert.Equal(t, toast.Toast{Variant: tt.wantVariant, Title: "Saved", Description: "All good"}, h.toasts[0])
		})
	}
}

func TestToastRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed", `{"level":`, "F120"},
		{"missing title", `{"level":"success"}`, "F121"},
		{"blank title", `{"level":"success","title":"  "}`, "F121"},
		{"unknown level", `{"level":"fatal","title":"x"}`, "F122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)

			rec := h.do(http.MethodPost, "/toast", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Empty(t, h.toasts)
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantDesc  string
	}{
		{"message object", `{"error":{"message":"Network timeout"}}`, "Something went wrong", "Network timeout"},
		{"null with title", `{"title":"Save failed","error":null}`, "Save failed", "Unexpected error occurred"},
		{"string error", `{"error":"boom"}`, "Something went wrong", "Unexpected error occurred"},
		{"number error", `{"title":"Load failed","error":500}`, "Load failed", "Unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)

			rec := h.do(http.MethodPost, "/report", tt.body)

			require.Equal(t, http.StatusAccepted, rec.Code)
			require.Len(t, h.toasts, 1)
			assert.Equal(t, toast.Toast{
				Variant:     toast.VariantDestructive,
				Title:       tt.wantTitle,
				Description: tt.wantDesc,
			}, h.toasts[0])
			assert.Equal(t, []string{tt.wantTitle}, h.records)
		})
	}
}

func TestReportMalformed(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/report", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, h.toasts)
}

func TestCustomPaths(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Paths.Toast = "/api/toast"
	})

	assert.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/api/toast", `{"level":"info","title":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/toast", `{"level":"info","title":"x"}`).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := &harness{}
	counted := metrics.Toaster(toast.ToasterFunc(func(tt toast.Toast) { h.toasts = append(h.toasts, tt) }), metrics.WithRegistry(reg))
	h.srv = New(Options{
		Notifier: notify.New(counted),
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/toast", `{"level":"error","title":"x"}`).Code)

	rec := h.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vango_feedback_toasts_total{variant="destructive"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/metrics", "").Code)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.srv.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
