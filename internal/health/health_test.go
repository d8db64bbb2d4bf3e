package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandler_Healthz(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register("storage", func(ctx context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.State != StateUp {
		t.Errorf("expected state up, got %s", report.State)
	}
	if report.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", report.Version)
	}
	if len(report.Checks) != 1 || report.Checks[0].Name != "storage" {
		t.Errorf("unexpected checks: %+v", report.Checks)
	}
}

func TestHandler_HealthzDown(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register("storage", func(ctx context.Context) error { return nil })
	handler.Register("broker", func(ctx context.Context) error {
		return errors.New("broker unavailable")
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.State != StateDown {
		t.Errorf("expected state down, got %s", report.State)
	}
	// Проверки отсортированы по имени.
	if len(report.Checks) != 2 || report.Checks[0].Name != "broker" {
		t.Errorf("unexpected checks order: %+v", report.Checks)
	}
	if report.Checks[0].State != StateDown || report.Checks[0].Error == "" {
		t.Errorf("unexpected broker check: %+v", report.Checks[0])
	}
}

func TestHandler_Readiness(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register("storage", func(ctx context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ready" {
		t.Errorf("expected body 'ready', got %s", w.Body.String())
	}
}

func TestHandler_ReadinessNotReady(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register("storage", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if w.Body.String() != "not ready" {
		t.Errorf("expected body 'not ready', got %s", w.Body.String())
	}
}

func TestHandler_RegisterReplaces(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register("storage", func(ctx context.Context) error {
		return errors.New("old check")
	})
	handler.Register("storage", func(ctx context.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected replaced check to pass, got %d", w.Code)
	}
}

func TestLiveness(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()

	Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %s", w.Body.String())
	}
}
