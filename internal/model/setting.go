package model

import "time"

// SettingMCQPassingPercentage is the settings key holding the dynamic
// MCQ passing threshold. Default 90 when absent.
const SettingMCQPassingPercentage = "mcq_passing_percentage"

// DefaultPassingPercentage applies when the threshold setting is missing
// or unparseable.
const DefaultPassingPercentage = 90

// AppSetting represents a key-value pair for global application configuration.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for bulk updating settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
