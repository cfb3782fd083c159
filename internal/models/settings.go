// ABOUTME: AppSettings model for process-wide preferences.
// ABOUTME: A single instance persists at a time, replaced wholesale on update.

package models

type AppSettings struct {
	Theme             string `json:"theme"`
	FontSize          int    `json:"fontSize"`
	FontFamily        string `json:"fontFamily"`
	AIEnabled         bool   `json:"aiEnabled"`
	EncryptionEnabled bool   `json:"encryptionEnabled"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:             "light",
		FontSize:          16,
		FontFamily:        "Inter",
		AIEnabled:         true,
		EncryptionEnabled: true,
	}
}
