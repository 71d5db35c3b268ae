package models

import "time"

// Setting value types
const (
	SettingTypeString  = "string"
	SettingTypeNumber  = "number"
	SettingTypeBoolean = "boolean"
)

// Setting is an admin editable key/value pair.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null;default:''" json:"value"`
	Type      string    `gorm:"not null;default:'string'" json:"type"`
	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}
