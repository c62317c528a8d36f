package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort        uint16   `envconfig:"CARDIOINSIGHT_HTTP_SERVER_PORT" default:"8080" required:"true"`
	LogLevel        string   `envconfig:"CARDIOINSIGHT_LOG_LEVEL" default:"info"`
	ModelPath       string   `envconfig:"CARDIOINSIGHT_MODEL_PATH" default:"models/cardio_rf.json" required:"true"`
	ReportRenderer  string   `envconfig:"CARDIOINSIGHT_REPORT_RENDERER" default:"raster"`
	RiskPolicy      string   `envconfig:"CARDIOINSIGHT_RISK_POLICY" default:"standard"`
	ReportCacheSize int      `envconfig:"CARDIOINSIGHT_REPORT_CACHE_SIZE" default:"128"`
	LayoutPreset    string   `envconfig:"CARDIOINSIGHT_LAYOUT_PRESET"`
	FontPaths       []string `envconfig:"CARDIOINSIGHT_FONT_PATHS"`
	FontBoldPaths   []string `envconfig:"CARDIOINSIGHT_FONT_BOLD_PATHS"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

// NewFromEnv loads the service configuration from the environment.
func NewFromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
