// Ininicializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Board   BoardConfig   `mapstructure:"board"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`

	TemplatesGlob string `mapstructure:"templates_glob"`
}

// BackendConfig points at the activities API this frontend consumes. A zero
// timeout means no client-enforced deadline on backend calls.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BoardConfig struct {
	MessageTTL      time.Duration `mapstructure:"message_ttl"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	setDefaults(&c)
	return &c, nil
}

func setDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.TemplatesGlob == "" {
		c.Server.TemplatesGlob = "web/templates/*.html"
	}
	if c.Board.MessageTTL == 0 {
		c.Board.MessageTTL = 5 * time.Second
	}
	if c.Board.SessionTTL == 0 {
		c.Board.SessionTTL = 30 * time.Minute
	}
	if c.Board.JanitorInterval == 0 {
		c.Board.JanitorInterval = time.Minute
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
