package model

import (
	"time"

	"gorm.io/datatypes"
)

const WebsiteSettingKey = "website"

/* ===================== Model ===================== */

// WebsiteSettingModel satu baris konfigurasi situs (key tetap "website"),
// dibaca form publik (harga + QR) dan diedit dari dashboard admin.
type WebsiteSettingModel struct {
	WebsiteSettingKey string `gorm:"column:website_setting_key;type:varchar(30);primaryKey" json:"website_setting_key"`

	WebsiteSettingSiteName     string `gorm:"column:website_setting_site_name;type:varchar(120);not null;default:'Akademiku'" json:"website_setting_site_name"`
	WebsiteSettingContactEmail string `gorm:"column:website_setting_contact_email;type:varchar(120)" json:"website_setting_contact_email"`

	// Biaya pendaftaran & QR pembayaran manual
	WebsiteSettingPaymentPrice int    `gorm:"column:website_setting_payment_price;not null;default:150" json:"website_setting_payment_price"`
	WebsiteSettingPaymentQRURL string `gorm:"column:website_setting_payment_qr_url;type:text" json:"website_setting_payment_qr_url"`
	WebsiteSettingLogoURL      string `gorm:"column:website_setting_logo_url;type:text" json:"website_setting_logo_url"`

	// Field bebas tambahan dari admin (banner, pengumuman, dsb.)
	WebsiteSettingExtra datatypes.JSON `gorm:"column:website_setting_extra;type:jsonb" json:"website_setting_extra,omitempty"`

	WebsiteSettingUpdatedAt time.Time `gorm:"column:website_setting_updated_at;autoUpdateTime" json:"website_setting_updated_at"`
}

func (WebsiteSettingModel) TableName() string { return "website_settings" }
