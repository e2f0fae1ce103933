package addflow

import "strings"

// CommandConfiguration captures persistent settings for the add command.
type CommandConfiguration struct {
	CatalogPath string `mapstructure:"catalog_path"`
	TrustOnAdd  bool   `mapstructure:"trust_on_add"`
}

// DefaultCommandConfiguration returns baseline configuration values for the add command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// Sanitize trims whitespace from configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.CatalogPath = strings.TrimSpace(configuration.CatalogPath)
	return sanitized
}

const (
	catalogPathConfigurationKeySuffixConstant = ".catalog_path"
	trustOnAddConfigurationKeySuffixConstant  = ".trust_on_add"
)

// DefaultConfigurationValues exposes baseline configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + catalogPathConfigurationKeySuffixConstant: defaults.CatalogPath,
		configurationKeyPrefix + trustOnAddConfigurationKeySuffixConstant:  defaults.TrustOnAdd,
	}
}
