package cli

import (
	"fmt"

	"devicehub-go/pkg/config"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Printf("Error marshaling config: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// SetConfig sets a configuration value and saves the file. Environment
// overrides in effect for this process are not written back.
// Format: section.key=value (e.g., "import.cooldown_seconds=30")
func (a *App) SetConfig(setStr string) error {
	if err := a.cfg.Set(setStr); err != nil {
		return err
	}
	return config.Update(func(cfg *config.Config) error {
		return cfg.Set(setStr)
	})
}
