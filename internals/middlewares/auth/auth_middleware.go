package auth

import (
	"errors"
	"log"
	"time"

	"absensiku_backend/internals/configs"
	userModel "absensiku_backend/internals/features/users/auth/model"
	helper "absensiku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthMiddleware memverifikasi JWT lalu mengisi Locals:
// user_id, company_id, role. Juga memastikan user masih aktif.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing token")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := claimUUID(claims, "user_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		companyID, err := claimUUID(claims, "company_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing company ID")
		}

		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocCompanyID, companyID.String())
		if role, ok := claims["role"].(string); ok {
			c.Locals(helper.LocRole, role)
		}

		if err := ensureUserActive(db, c, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		return c.Next()
	}
}

func validateTokenExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("exp claim hilang")
	}
	if time.Now().After(time.Unix(int64(exp), 0)) {
		return errors.New("token kedaluwarsa")
	}
	return nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New(key + " hilang")
	}
	return uuid.Parse(raw)
}

func ensureUserActive(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID) error {
	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).
		Select("user_is_active").
		Where("user_id = ?", userID).
		Take(&user).Error; err != nil {
		return err
	}
	if !user.UserIsActive {
		return errors.New("user nonaktif")
	}
	return nil
}
