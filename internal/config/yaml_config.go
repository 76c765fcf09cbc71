package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Routing tables and localized text are easier to manage in YAML than env vars.
type YAMLConfig struct {
	UserTypes []UserTypeConfig  `yaml:"user_types"`
	Messages  map[string]string `yaml:"messages"`
	FAQ       []FAQTopicConfig  `yaml:"faq"`
}

// UserTypeConfig maps a caller classification label to a matching policy.
type UserTypeConfig struct {
	Label  string `yaml:"label"`  // Localized role label, matched as a substring
	Policy string `yaml:"policy"` // Registered policy name, e.g. "umrah"
}

// FAQTopicConfig defines a canned chatbot topic.
type FAQTopicConfig struct {
	Topic        string   `yaml:"topic"`
	Keywords     []string `yaml:"keywords"`
	Response     string   `yaml:"response"`
	QuickReplies []string `yaml:"quick_replies"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFrom(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFrom loads the YAML configuration from path.
func LoadYAMLConfigFrom(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Drop incomplete routes
	routes := cfg.UserTypes[:0]
	for _, r := range cfg.UserTypes {
		if r.Label != "" && r.Policy != "" {
			routes = append(routes, r)
		}
	}
	cfg.UserTypes = routes

	return &cfg, nil
}

// GetUserTypes returns the configured user-type routes, or nil.
func (c *YAMLConfig) GetUserTypes() []UserTypeConfig {
	if c == nil {
		return nil
	}
	return c.UserTypes
}

// GetMessages returns the status message overrides, or nil.
func (c *YAMLConfig) GetMessages() map[string]string {
	if c == nil {
		return nil
	}
	return c.Messages
}

// GetFAQ returns the configured FAQ topics, or nil.
func (c *YAMLConfig) GetFAQ() []FAQTopicConfig {
	if c == nil {
		return nil
	}
	return c.FAQ
}
