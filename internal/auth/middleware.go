package auth

import (
	"net/http"
)

// RequireIdentity rejects requests without a resolvable bearer token and
// stashes the caller identity in the request context.
func RequireIdentity(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.FromBearerHeader(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if err == ErrMissingToken {
					w.Write([]byte(`{"success":false,"error":"Authorization required"}`))
				} else {
					w.Write([]byte(`{"success":false,"error":"Invalid token"}`))
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
