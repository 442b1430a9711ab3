package environment

import "net/http"

// Middleware stores env in every request context so handlers and the logger
// can read it back with FromContext.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		}
		return http.HandlerFunc(fn)
	}
}
