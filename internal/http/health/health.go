package health

import (
	"net/http"
	"sync/atomic"
)

// Liveness and readiness probe paths.
const (
	LivenessPath  = "/healthz"
	ReadinessPath = "/readyz"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	ready atomic.Bool
}

// New returns a health handler that is not ready yet.
func New() *Handler {
	return &Handler{}
}

// Mount registers both probes on mux.
func (h *Handler) Mount(mux *http.ServeMux) {
	mux.HandleFunc(LivenessPath, h.Healthz)
	mux.HandleFunc(ReadinessPath, h.Readyz)
}

// SetReady marks the handler as ready.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// SetNotReady marks the handler as not ready.
func (h *Handler) SetNotReady() {
	h.ready.Store(false)
}

// Healthz handles liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz handles readiness probes.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
