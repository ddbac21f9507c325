package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avencia/chatframe/chat"
)

type Profile struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

// ChatOptions controls the host-side presentation defaults: what hidden
// content to suppress, how the typing indicator behaves, and the voice and
// speech toggles.
type ChatOptions struct {
	HideAllHidden  bool     `json:"hide_all_hidden"`
	HiddenSubtypes []string `json:"hidden_subtypes,omitempty"`
	Indicator      string   `json:"indicator,omitempty"`
	TriggerPhrase  string   `json:"trigger_phrase,omitempty"`
	Muted          bool     `json:"muted"`
	Markdown       bool     `json:"markdown"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	Chat           ChatOptions        `json:"chat"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil {
		return "gpt-4o-mini"
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// Policy translates the configured hidden-content settings into a
// visibility policy for the view and the PDF exporter.
func (c *Config) Policy() chat.VisibilityPolicy {
	if c.Chat.HideAllHidden {
		return chat.HideAllHidden()
	}
	if len(c.Chat.HiddenSubtypes) > 0 {
		subtypes := make([]chat.HiddenType, 0, len(c.Chat.HiddenSubtypes))
		for _, s := range c.Chat.HiddenSubtypes {
			subtypes = append(subtypes, chat.HiddenType(s))
		}
		return chat.HideSubtypes(subtypes...)
	}
	return chat.VisibilityPolicy{}
}

// Indicator translates the configured indicator mode. Unknown values fall
// back to automatic, which is also the default for an absent field.
func (c *Config) Indicator() chat.Indicator {
	switch c.Chat.Indicator {
	case "none":
		return chat.Indicator{Mode: chat.IndicatorNone}
	case "manual":
		return chat.Indicator{Mode: chat.IndicatorManual}
	default:
		return chat.Indicator{Mode: chat.IndicatorAutomatic}
	}
}

// TriggerPhrase returns the voice submission phrase, defaulting to "send it".
func (c *Config) TriggerPhrase() string {
	if c.Chat.TriggerPhrase == "" {
		return "send it"
	}
	return c.Chat.TriggerPhrase
}

func getConfigPath() (string, error) {
	var configDir string

	// Use CHATFRAME_HOME if set, otherwise use user's home directory
	if frameHome := os.Getenv("CHATFRAME_HOME"); frameHome != "" {
		configDir = frameHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".chatframe", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	// Read existing config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				APIKey:  "",
				BaseURL: "",
				Model:   "gpt-4o-mini",
			},
		},
		ActiveProfile: "default",
		Chat: ChatOptions{
			HideAllHidden: true,
			Markdown:      true,
		},
	}

	// Save default config to file
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
