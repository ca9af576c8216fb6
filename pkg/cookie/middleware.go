package cookie

import "net/http"

// Middleware bridges every request through Bridge and stores the per-request
// Store in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, rw := Bridge(w, r, opts...)
			next.ServeHTTP(rw, r.WithContext(WithStore(r.Context(), store)))
		})
	}
}
