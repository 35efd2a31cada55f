package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/users/auth/dto"
	"absensiku_backend/internals/features/users/auth/model"
	authService "absensiku_backend/internals/features/users/auth/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 REGISTER: buat akun baru di bawah company yang sudah ada
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	companyID, err := uuid.Parse(body.UserCompanyID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_company_id tidak valid")
	}

	hash, err := authService.HashPassword(body.UserPassword)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	row := model.UserModel{
		UserCompanyID: companyID,
		UserName:      body.UserName,
		UserEmail:     body.UserEmail,
		UserPassword:  hash,
		UserRole:      "employee",
		UserIsActive:  true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Akun berhasil dibuat", fiber.Map{
		"user_id":    row.UserID,
		"user_email": row.UserEmail,
	})
}

// 🟢 LOGIN: email + password → access token
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_email = ? AND user_is_active = ?", body.UserEmail, true).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !authService.CheckPassword(user.UserPassword, body.UserPassword)) {
		// pesan sama untuk email tidak ada / password salah
		return helper.Error(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	token, err := authService.CreateAccessToken(&user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(authService.AccessTokenTTL.Seconds()),
	})
}

// 🟢 ME: identitas user dari token
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user model.UserModel
	dbErr := ctrl.DB.WithContext(c.UserContext()).Where("user_id = ?", userID).Take(&user).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if dbErr != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat user")
	}
	return helper.Success(c, "OK", user)
}
