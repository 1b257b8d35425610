package middleware

import (
	"context"
	"errors"
	"net/http"

	"fleet-dispatch/pkg/idempotency"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

// Keys is the part of idempotency.Store the middleware needs.
type Keys interface {
	Acquire(ctx context.Context, scope, key string) error
	Release(ctx context.Context, scope, key string) error
}

// Idempotency rejects a repeated mutation carrying the same Idempotency-Key
// with 409. Requests without the header pass through. A request that does not
// complete (4xx, 5xx or a panic) releases its key so the client can retry.
func Idempotency(keys Keys, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			scope := r.Method + " " + r.URL.Path
			if err := keys.Acquire(r.Context(), scope, key); err != nil {
				if errors.Is(err, idempotency.ErrConflict) {
					logger.Warn("Duplicate request", zap.String("scope", scope), zap.String("key", key))
					utils.ResponseConflict(w, "duplicate request")
					return
				}
				// redis down: serve the request rather than fail it
				logger.Error("Idempotency store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			rw := wrap(w)
			defer func() {
				rec := recover()
				if rec != nil || retryable(rw.statusCode) {
					if err := keys.Release(context.WithoutCancel(r.Context()), scope, key); err != nil {
						logger.Warn("Failed to release idempotency key", zap.Error(err), zap.String("key", key))
					}
				}
				if rec != nil {
					panic(rec)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// retryable reports whether a client may resend the same key after status.
// Rejected input (4xx other than 409) and server failures did not complete
// the mutation.
func retryable(status int) bool {
	if status >= http.StatusInternalServerError {
		return true
	}
	return status >= http.StatusBadRequest && status != http.StatusConflict
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
