package models

import "time"

// CompanySetting represents company_settings table (single row)
type CompanySetting struct {
	SettingID   uint      `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	CompanyName string    `gorm:"type:varchar(200);not null" json:"company_name"`
	Address     *string   `gorm:"type:text" json:"address,omitempty"`
	Phone       *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email       *string   `gorm:"type:varchar(100)" json:"email,omitempty"`
	Currency    string    `gorm:"type:varchar(10);not null;default:GHS" json:"currency"`
	LogoPath    *string   `gorm:"type:varchar(255)" json:"logo_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for CompanySetting
func (CompanySetting) TableName() string {
	return "company_settings"
}
