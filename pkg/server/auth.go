package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/log"
)

// adminMiddleware gates the handler behind Google ID token verification
// against the configured admin email list. With no audience and no admin
// emails configured (local development), auth is bypassed.
func (s *Server) adminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.bypassAuth {
			next(w, r)
			return
		}

		ctx := r.Context()
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("reqPath", r.URL.Path)))
		r = r.WithContext(ctx)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSONError(w, "missing auth header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Ctx(ctx).ErrorContext(ctx, "invalid auth header")
			writeJSONError(w, "invalid auth header", http.StatusBadRequest)
			return
		}
		if s.oidcVerifier == nil {
			writeJSONError(w, "admin auth not configured", http.StatusForbidden)
			return
		}

		token, err := s.oidcVerifier(ctx, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "token validation failed", slog.Any("error", err))
			writeJSONError(w, "invalid token", http.StatusUnauthorized)
			return
		}

		var claims struct {
			Email         string `json:"email"`
			EmailVerified bool   `json:"email_verified"`
		}
		if err := token.Claims(&claims); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "failed to parse token claims", slog.Any("error", err))
			writeJSONError(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if !claims.EmailVerified || !s.isAdmin(claims.Email) {
			log.Ctx(ctx).WarnContext(ctx, "email not allowed", slog.String("email", claims.Email))
			writeJSONError(w, "forbidden", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

func (s *Server) isAdmin(email string) bool {
	for _, adminEmail := range s.adminEmails {
		if email == adminEmail {
			return true
		}
	}
	return false
}
