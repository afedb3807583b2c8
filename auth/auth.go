package auth

import (
	"os"

	"quizserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtKey はトークン署名用のシークレットキーです。
// ！！！本番環境では必ず環境変数JWT_KEYで設定
var JwtKey = loadJwtKey()

func loadJwtKey() []byte {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("quizserver-dev-key")
}

func IsValidToken(tokenString string) (bool, error) {
	claims := &models.MyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})

	if err != nil {
		return false, err
	}

	return token.Valid, nil
}
