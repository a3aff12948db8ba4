package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/ShopCart/internal/auth"
	"github.com/google/uuid"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext достает идентификатор авторизованного пользователя,
// положенный в контекст AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// AuthMiddleware — шлюз авторизации для маршрутов корзины.
// Проверяет заголовок Authorization: Bearer <token>, валидирует токен
// и кладет user id в контекст запроса. Сам User из БД не перечитывается:
// токен самодостаточен, отзыв не поддерживается.
func AuthMiddleware(jwtSecret []byte, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				respondWithError(w, http.StatusUnauthorized, "No token, authorization denied", logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := auth.GetUserIDFromToken(token, jwtSecret)
			if err != nil {
				logger.Warn("token verification failed", "error", err)
				respondWithError(w, http.StatusUnauthorized, "Token is not valid", logger)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
