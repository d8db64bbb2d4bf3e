package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// State — итоговое состояние компонента или сервиса в целом.
type State string

const (
	StateUp   State = "up"
	StateDown State = "down"
)

const defaultCheckTimeout = 3 * time.Second

// CheckFunc проверяет доступность одного компонента (база, брокер и т.д.).
type CheckFunc func(ctx context.Context) error

// CheckResult — результат одной проверки в ответе /healthz.
type CheckResult struct {
	Name      string `json:"name"`
	State     State  `json:"state"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Report — тело ответа /healthz.
type Report struct {
	State         State         `json:"state"`
	Version       string        `json:"version,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Checks        []CheckResult `json:"checks,omitempty"`
}

// Handler отдаёт /healthz, /livez и /readyz.
// Проверки регистрируются при старте приложения и выполняются
// на каждый запрос с таймаутом.
type Handler struct {
	mu           sync.RWMutex
	checks       map[string]CheckFunc
	version      string
	startedAt    time.Time
	checkTimeout time.Duration
}

// NewHandler создаёт handler с версией сборки в ответах.
func NewHandler(version string) *Handler {
	return &Handler{
		checks:       make(map[string]CheckFunc),
		version:      version,
		startedAt:    time.Now(),
		checkTimeout: defaultCheckTimeout,
	}
}

// Register добавляет проверку компонента. Повторная регистрация
// с тем же именем заменяет предыдущую.
func (h *Handler) Register(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *Handler) runChecks(ctx context.Context) ([]CheckResult, State) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	checks := make(map[string]CheckFunc, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check
	}
	h.mu.RUnlock()

	sort.Strings(names)

	overall := StateUp
	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
		start := time.Now()
		err := checks[name](checkCtx)
		cancel()

		result := CheckResult{
			Name:      name,
			State:     StateUp,
			ElapsedMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			result.State = StateDown
			result.Error = err.Error()
			overall = StateDown
		}
		results = append(results, result)
	}

	return results, overall
}

// ServeHTTP обрабатывает /healthz: выполняет все проверки и отдаёт JSON-отчёт.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	results, overall := h.runChecks(r.Context())

	report := Report{
		State:         overall,
		Version:       h.version,
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Checks:        results,
	}

	code := http.StatusOK
	if overall == StateDown {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}

// Readiness обрабатывает /readyz: 200 только когда все компоненты доступны.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	_, overall := h.runChecks(r.Context())
	if overall == StateDown {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Liveness обрабатывает /livez: процесс жив, пока отвечает.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
