package middleware

import (
	"net/http"
	"path"
	"strings"
)

// AddSlash redirects directory-like paths to their slash-terminated form.
// Paths whose last segment has an extension are treated as files and pass.
func AddSlash() func(http.Handler) http.Handler {
	return canonical(func(p string) (string, bool) {
		if strings.HasSuffix(p, "/") || path.Ext(p) != "" {
			return "", false
		}
		return p + "/", true
	})
}

// TrimSlash redirects paths ending in "/" to the form without it. The root
// is left alone.
func TrimSlash() func(http.Handler) http.Handler {
	return canonical(func(p string) (string, bool) {
		if p == "/" || !strings.HasSuffix(p, "/") {
			return "", false
		}
		return strings.TrimSuffix(p, "/"), true
	})
}

// canonical issues a 308 to the path rewrite returns, keeping the query.
// 308 preserves the method and body of PUT and POST requests.
func canonical(rewrite func(string) (string, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target, ok := rewrite(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}
