package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

func TestNewHTTPMux_Endpoints(t *testing.T) {
	healthHandler := healthcheck.NewHandler(version.Current().Version)
	mux := newHTTPMux(healthHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cases := []struct {
		path       string
		wantStatus int
	}{
		{path: "/metrics", wantStatus: http.StatusOK},
		{path: "/healthz", wantStatus: http.StatusOK},
		{path: "/readyz", wantStatus: http.StatusOK},
		{path: "/livez", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("get %s: %v", tc.path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Errorf("expected status %d for %s, got %d", tc.wantStatus, tc.path, resp.StatusCode)
			}
		})
	}
}

func TestNewHTTPMux_ReadyzReportsFailingCheck(t *testing.T) {
	healthHandler := healthcheck.NewHandler("test")
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	mux := newHTTPMux(healthHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("get /readyz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", resp.StatusCode)
	}
}
