package httpapi

import (
	"io"
	"net/http"

	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

const maxBodyBytes = 1 << 20

// ServeHTTP adapts a plain HTTP request to Invoke for local runs.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.WarnContext(ctx, "read request body failed", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := Request{
		Method:  r.Method,
		Query:   firstValues(r.URL.Query()),
		Body:    string(body),
		Headers: firstValues(r.Header),
	}

	resp, err := h.Invoke(ctx, req)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}

func firstValues[M ~map[string][]string](in M) map[string]string {
	out := make(map[string]string, len(in))
	for k, vs := range in {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// NewRouter mounts the system routes and sends every other path to the handler.
func NewRouter(handler *Handler, logger *logging.Logger, metricsHandler http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	mux.Handle("/", handler)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
