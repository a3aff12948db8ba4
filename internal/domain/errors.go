package domain

import "errors"

// Сентинельные ошибки доменного уровня. Слои выше (handler) мапят их
// в HTTP-статусы, слои ниже (storage) никогда не отдают наружу сырые ошибки БД.
var (
	ErrNotFound            = errors.New("not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrValidation          = errors.New("validation error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
