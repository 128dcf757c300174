package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// internalErrorBody matches the handler package's internal_error envelope.
const internalErrorBody = `{"error":{"code":"internal_error","message":"internal server error"}}` + "\n"

// NewRecoverer returns a middleware that turns a handler panic into a 500 with
// the JSON error envelope, logging the panic value and stack at ERROR.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
//
// It replaces chimiddleware.Recoverer, whose 500 has no body and no
// Content-Type. Wire it inside NewSlogLogger so the 500 is logged too.
func NewRecoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.ErrorContext(r.Context(), "panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
					"request_id", chimiddleware.GetReqID(r.Context()),
				)

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(internalErrorBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
