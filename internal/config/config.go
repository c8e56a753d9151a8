package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env string `mapstructure:"env"`
}

type APIConf struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SearchConf struct {
	// RadiusMeters is the nearby-provider search radius. Zero means the
	// radius query parameter is omitted and the backend default applies.
	RadiusMeters float64 `mapstructure:"radius_meters"`
}

// DeviceConf stands in for the phone's location services: a fixed
// coordinate pair and a simulated permission grant.
type DeviceConf struct {
	Latitude          float64 `mapstructure:"latitude"`
	Longitude         float64 `mapstructure:"longitude"`
	PermissionGranted bool    `mapstructure:"permission_granted"`
}

type WhatsAppConf struct {
	CountryCode   string `mapstructure:"country_code"`
	LaunchCommand string `mapstructure:"launch_command"`
}

type StubConf struct {
	Port int `mapstructure:"port"`
}

type Config struct {
	App      AppConf      `mapstructure:"app"`
	API      APIConf      `mapstructure:"api"`
	Search   SearchConf   `mapstructure:"search"`
	Device   DeviceConf   `mapstructure:"device"`
	WhatsApp WhatsAppConf `mapstructure:"whatsapp"`
	Stub     StubConf     `mapstructure:"stub"`

	// derived
	RequestTimeout time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://sinanju.uk"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 10
	}
	cfg.RequestTimeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if cfg.WhatsApp.CountryCode == "" {
		cfg.WhatsApp.CountryCode = "55"
	}
	if cfg.WhatsApp.LaunchCommand == "" {
		cfg.WhatsApp.LaunchCommand = "xdg-open"
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = 8085
	}
	return &cfg, nil
}
