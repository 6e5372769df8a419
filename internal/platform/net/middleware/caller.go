package middleware

import (
	"net"
	"net/http"

	pnet "gatehouse/internal/platform/net"
)

// CallerIdentity derives an opaque caller identity from the transport layer
// and stashes it on the request context. Run RealIP before this so the
// identity reflects the upstream address rather than a proxy.
//
// The identity is the rate-limit subject and the audit key for the
// request.
func CallerIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil || host == "" {
				host = r.RemoteAddr
			}
			if host == "" {
				host = "unknown"
			}
			ctx := pnet.WithCaller(r.Context(), host)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
