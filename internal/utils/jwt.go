package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	CaptainName string `json:"captainName"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(captainNo string, captainName string, secret string, minutes int) (string, error) {
	expiration := time.Now().Add(time.Duration(minutes) * time.Minute)
	claims := AccessClaims{
		CaptainName: captainName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   captainNo,
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
