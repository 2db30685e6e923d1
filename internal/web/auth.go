package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash stored in admin.password_hash.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// requireAdmin guards the CMS with HTTP basic auth. Without a configured
// hash every request is refused.
func requireAdmin(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if ok && passwordHash != "" &&
				subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1 &&
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) == nil {
				next.ServeHTTP(w, r)
				return
			}
			if ok {
				slog.Warn("web: admin login failed", "user", user, "remote", r.RemoteAddr)
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="admin", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
