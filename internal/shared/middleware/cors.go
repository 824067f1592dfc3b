package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS applies Cross-Origin Resource Sharing headers and preflight handling.
//
// When allowedHosts is empty every origin is accepted and Access-Control-Allow-Origin
// is set to "*". Otherwise the request Origin must match one of the allowed hosts
// (port ignored when the allowed entry carries none); matching origins are echoed
// back with Access-Control-Allow-Credentials, non-matching origins get 403.
//
// The OAuth callback is exempt: the browser arrives there via a Google redirect,
// so the Origin header is not under our control.
func CORS(allowedHosts []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case strings.HasSuffix(r.URL.Path, "/oauth/callback"):
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case len(allowedHosts) == 0 || origin == "":
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case isOriginAllowed(origin, allowedHosts):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Vary", "Origin")
			default:
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed reports whether the Origin header value matches one of the
// configured hosts. An allowed host without a port matches any port.
func isOriginAllowed(origin string, allowedHosts []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}

		if strings.Contains(allowed, ":") {
			if host == allowed {
				return true
			}
			continue
		}

		if hostname == allowed {
			return true
		}
	}

	return false
}
