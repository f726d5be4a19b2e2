package handlers

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// pluginConfigFile is the on-disk TOML shape for user-defined plugin
// extraction configs: one [[plugin]] table per plugin, one [[plugin.field]]
// table per extracted field.
//
//	[[plugin]]
//	name = "MyNotifyPlugin"
//	description = "Custom notification plugin"
//
//	  [[plugin.field]]
//	  pattern = "message"
//	  description = "Notification text"
type pluginConfigFile struct {
	Plugin []struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
		Enabled     *bool  `toml:"enabled"`
		Field       []struct {
			Pattern     string `toml:"pattern"`
			Description string `toml:"description"`
		} `toml:"field"`
	} `toml:"plugin"`
}

// LoadPluginConfigs reads a TOML file of user-defined plugin extraction
// configs, for handing to PluginCommandHandler.AddUserConfig.
func LoadPluginConfigs(path string) ([]PluginExtractionConfig, error) {
	var file pluginConfigFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading plugin config %s: %w", path, err)
	}

	configs := make([]PluginExtractionConfig, 0, len(file.Plugin))
	for _, p := range file.Plugin {
		if p.Name == "" {
			continue
		}
		config := NewPluginExtractionConfig(p.Name)
		config.Description = p.Description
		if p.Enabled != nil {
			config.Enabled = *p.Enabled
		}
		for _, f := range p.Field {
			config = config.AddPath(f.Pattern, f.Description)
		}
		configs = append(configs, config)
	}
	return configs, nil
}
