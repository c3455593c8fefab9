package model

// AppSetting is a single key/value application setting.
type AppSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Setting keys currently in use.
const (
	SettingAllocationOpen = "allocation_open"
	SettingSupportEmail   = "support_email"
)

// UpdateSettingRequest is the payload for writing one setting.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
