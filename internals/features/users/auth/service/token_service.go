package service

import (
	"time"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/users/auth/model"

	"github.com/golang-jwt/jwt/v4"
)

const AccessTokenTTL = 12 * time.Hour

// CreateAccessToken membuat JWT berisi identitas yang dibaca auth middleware.
func CreateAccessToken(u *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    u.UserID.String(),
		"company_id": u.UserCompanyID.String(),
		"role":       u.UserRole,
		"exp":        time.Now().Add(AccessTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
