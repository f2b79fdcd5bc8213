package middleware

import (
	"log/slog"
	"net/http"

	"github.com/forgo/statline/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader carries the seeding key on admin requests
const AdminKeyHeader = "X-Admin-Key"

// AdminKey returns a middleware that admits requests whose X-Admin-Key
// matches the bcrypt hash. An empty hash rejects every request.
func AdminKey(hash string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				model.NewUnauthorizedError("missing " + AdminKeyHeader + " header").WriteJSON(w)
				return
			}
			if hash == "" {
				model.NewUnauthorizedError("admin access is disabled").WriteJSON(w)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
				slog.Warn("admin key rejected",
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("remote_addr", r.RemoteAddr),
				)
				model.NewUnauthorizedError("invalid admin key").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HashAdminKey returns the bcrypt hash to configure as ADMIN_KEY_HASH
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
