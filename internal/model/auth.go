package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User игрок; Password при регистрации открытый, из базы приходит bcrypt хэш.
// Balance в минимальных единицах валюты
type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  int64
}

// Session хранит только хэш refresh токена
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthData выдается клиенту после входа
type AuthData struct {
	SessionID    string
	AccessToken  string
	RefreshToken string
}

type UserClaims struct {
	jwt.RegisteredClaims
}
