package chi

import (
	"net/http"
	"strings"
)

// Probe routes stay reachable without credentials.
var openPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware validates Bearer tokens against a static key list.
// An empty list disables authentication entirely.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := openPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			auth := r.Header.Get("Authorization")
			switch {
			case auth == "":
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing authorization header")
			case !strings.HasPrefix(auth, prefix):
				writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header must use Bearer scheme")
			default:
				if _, ok := keys[strings.TrimPrefix(auth, prefix)]; !ok {
					writeError(w, http.StatusUnauthorized, "unauthorized", "invalid api key")
					return
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}
