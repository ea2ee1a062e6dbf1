package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"akademiku_backend/internals/features/enrollment/settings/dto"
	"akademiku_backend/internals/features/enrollment/settings/model"
	helper "akademiku_backend/internals/helpers"
)

type WebsiteSettingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewWebsiteSettingController(db *gorm.DB) *WebsiteSettingController {
	return &WebsiteSettingController{DB: db, Validate: validator.New()}
}

// loadOrDefault baca baris settings; kalau belum ada pakai default model.
func (ctrl *WebsiteSettingController) loadOrDefault(c *fiber.Ctx) (*model.WebsiteSettingModel, error) {
	var setting model.WebsiteSettingModel
	err := ctrl.DB.WithContext(c.UserContext()).
		First(&setting, "website_setting_key = ?", model.WebsiteSettingKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.WebsiteSettingModel{
			WebsiteSettingKey:          model.WebsiteSettingKey,
			WebsiteSettingSiteName:     "Akademiku",
			WebsiteSettingPaymentPrice: 150,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GET /api/public/settings
func (ctrl *WebsiteSettingController) GetPublicSettings(c *fiber.Ctx) error {
	setting, err := ctrl.loadOrDefault(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.Success(c, "OK", dto.ToPublicSettingResponse(setting))
}

// GET /api/a/settings
func (ctrl *WebsiteSettingController) GetSettings(c *fiber.Ctx) error {
	setting, err := ctrl.loadOrDefault(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.Success(c, "OK", setting)
}

// PUT /api/a/settings
// Upsert satu baris settings (partial update).
func (ctrl *WebsiteSettingController) UpdateSettings(c *fiber.Ctx) error {
	var body dto.UpdateWebsiteSettingRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	setting, err := ctrl.loadOrDefault(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	body.ApplyTo(setting)

	if err := ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "website_setting_key"}},
			UpdateAll: true,
		}).
		Create(setting).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan pengaturan:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan pengaturan")
	}

	return helper.Success(c, "Pengaturan tersimpan", setting)
}
