package middlewareinternal

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/types"
	"github.com/gildecio/ezion/internal/util/logger"
)

var errNoToken = errors.New("no token in request")

func JWTAuthMiddleware(authService core.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractToken(r)
			if err != nil {
				logger.Log.Debug("Failed to extract token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				unauthorized(w)
				return
			}

			session, err := authService.ValidateToken(r.Context(), tokenString)
			if err != nil {
				logger.Log.Warn("Invalid token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), types.SessionKey, session)
			ctx = context.WithValue(ctx, types.UserIDKey, session.UserID)
			ctx = context.WithValue(ctx, types.EmpresaIDKey, session.EmpresaID)

			logger.Log.Debug("User authenticated",
				zap.Int64("user_id", session.UserID),
				zap.Int64("empresa_id", session.EmpresaID),
				zap.String("path", r.URL.Path))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="ezion"`)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"erro":"não autorizado"}` + "\n"))
}

// extractToken prefers the Authorization header and falls back to the jwt cookie.
func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errNoToken
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie("jwt")
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", errNoToken
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(types.UserIDKey).(int64)
	return userID, ok
}

func GetEmpresaIDFromContext(ctx context.Context) (int64, bool) {
	empresaID, ok := ctx.Value(types.EmpresaIDKey).(int64)
	return empresaID, ok
}

func GetSessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(types.SessionKey).(*model.Session)
	return session, ok && session != nil
}
