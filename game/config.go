package game

import (
	"github.com/pelletier/go-toml/v2"
)

type SoundConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float32 `toml:"volume"`
}

type Config struct {
	Sound SoundConfig `toml:"sound"`
}

// NewConfig returns the default configuration: sound enabled at full volume.
func NewConfig() *Config {
	return &Config{
		Sound: SoundConfig{
			Enabled: true,
			Volume:  1.0,
		},
	}
}

// ConfigFromTOML parses a TOML config document. Missing fields keep their
// defaults, and the sound volume is clamped to [0, 1].
func ConfigFromTOML(content string) (*Config, error) {
	config := NewConfig()
	if err := toml.Unmarshal([]byte(content), config); err != nil {
		return nil, err
	}
	if config.Sound.Volume < 0.0 {
		config.Sound.Volume = 0.0
	} else if config.Sound.Volume > 1.0 {
		config.Sound.Volume = 1.0
	}
	return config, nil
}
