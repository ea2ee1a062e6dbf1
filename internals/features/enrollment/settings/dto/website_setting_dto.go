package dto

import (
	"gorm.io/datatypes"

	"akademiku_backend/internals/features/enrollment/settings/model"
)

/* ===================== Request DTO ===================== */

type UpdateWebsiteSettingRequest struct {
	WebsiteSettingSiteName     *string `json:"website_setting_site_name" validate:"omitempty,max=120"`
	WebsiteSettingContactEmail *string `json:"website_setting_contact_email" validate:"omitempty,email"`
	WebsiteSettingPaymentPrice *int    `json:"website_setting_payment_price" validate:"omitempty,gte=0"`
	WebsiteSettingPaymentQRURL *string `json:"website_setting_payment_qr_url" validate:"omitempty,url"`
	WebsiteSettingLogoURL      *string `json:"website_setting_logo_url" validate:"omitempty,url"`

	WebsiteSettingExtra datatypes.JSON `json:"website_setting_extra" validate:"omitempty"`
}

// ApplyTo partial update: hanya field yang dikirim yang berubah.
func (r *UpdateWebsiteSettingRequest) ApplyTo(m *model.WebsiteSettingModel) {
	if r.WebsiteSettingSiteName != nil {
		m.WebsiteSettingSiteName = *r.WebsiteSettingSiteName
	}
	if r.WebsiteSettingContactEmail != nil {
		m.WebsiteSettingContactEmail = *r.WebsiteSettingContactEmail
	}
	if r.WebsiteSettingPaymentPrice != nil {
		m.WebsiteSettingPaymentPrice = *r.WebsiteSettingPaymentPrice
	}
	if r.WebsiteSettingPaymentQRURL != nil {
		m.WebsiteSettingPaymentQRURL = *r.WebsiteSettingPaymentQRURL
	}
	if r.WebsiteSettingLogoURL != nil {
		m.WebsiteSettingLogoURL = *r.WebsiteSettingLogoURL
	}
	if len(r.WebsiteSettingExtra) > 0 {
		m.WebsiteSettingExtra = r.WebsiteSettingExtra
	}
}

/* ===================== Response DTO ===================== */

// PublicSettingResponse subset yang boleh dilihat tanpa login
// (dipakai form pendaftaran & halaman pembayaran).
type PublicSettingResponse struct {
	SiteName     string `json:"site_name"`
	PaymentPrice int    `json:"payment_price"`
	PaymentQRURL string `json:"payment_qr_url"`
	LogoURL      string `json:"logo_url"`
}

func ToPublicSettingResponse(m *model.WebsiteSettingModel) PublicSettingResponse {
	return PublicSettingResponse{
		SiteName:     m.WebsiteSettingSiteName,
		PaymentPrice: m.WebsiteSettingPaymentPrice,
		PaymentQRURL: m.WebsiteSettingPaymentQRURL,
		LogoURL:      m.WebsiteSettingLogoURL,
	}
}
