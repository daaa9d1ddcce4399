package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nandanugg/hrms-integrity/module/location/service"
)

// LoadThresholds returns the default scoring thresholds overlaid with the
// keys present in the TOML file at path. An empty path yields the defaults.
func LoadThresholds(path string) (service.Thresholds, error) {
	t := service.DefaultThresholds()
	if path == "" {
		return t, nil
	}

	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return service.Thresholds{}, fmt.Errorf("decode thresholds %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return service.Thresholds{}, fmt.Errorf("thresholds %s: unknown keys %v", path, undecoded)
	}
	if err := t.Validate(); err != nil {
		return service.Thresholds{}, fmt.Errorf("thresholds %s: %w", path, err)
	}
	return t, nil
}
