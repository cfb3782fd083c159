// ABOUTME: Configuration for the inference gateway.
// ABOUTME: Handles API key resolution and XDG config paths.

package ai

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileConfig is the on-disk gateway configuration.
type FileConfig struct {
	// APIKey authenticates against the inference service. The GEMINI_API_KEY
	// environment variable overrides it.
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the service endpoint, mainly for self-hosted proxies.
	BaseURL string `json:"base_url,omitempty"`

	// Model selects the generation model.
	Model string `json:"model,omitempty"`
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quill")
}

// ConfigPath returns the path to the gateway config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "ai.json")
}

// LoadFileConfig reads the on-disk configuration. A missing file yields a
// zero FileConfig.
func LoadFileConfig() (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, err
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// LoadConfig builds a gateway Config from the config file and environment.
// A missing file is not an error; the gateway simply reports unavailable
// until a key is configured.
func LoadConfig() (Config, error) {
	fc, err := LoadFileConfig()
	if err != nil {
		return Config{}, err
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		fc.APIKey = key
	}

	return Config{
		APIKey:  fc.APIKey,
		BaseURL: fc.BaseURL,
		Model:   fc.Model,
	}, nil
}

// SaveConfig writes the gateway configuration to disk.
func SaveConfig(fc FileConfig) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
