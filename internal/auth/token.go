package auth

import (
	"fmt"
	"time"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims — структура утверждений токена: стандартные утверждения
// плюс идентификатор пользователя. Токен самодостаточен, серверного
// хранилища сессий нет — единственный механизм завершения это истечение срока.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken выпускает подписанный HS256 токен для пользователя
// со сроком жизни validityDuration.
func GenerateToken(userID uuid.UUID, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID.String(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// GetUserIDFromToken проверяет подпись и срок жизни токена и возвращает
// идентификатор пользователя. Любая проблема (битый формат, неверная подпись,
// истекший срок) схлопывается в domain.ErrUnauthorized — наружу детали не текут.
func GetUserIDFromToken(tokenString string, secretKey []byte) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return userID, nil
}
