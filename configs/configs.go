package configs

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Conf struct {
	DBDriver          string `mapstructure:"DB_DRIVER"`
	DBHost            string `mapstructure:"DB_HOST"`
	DBPort            string `mapstructure:"DB_PORT"`
	DBUser            string `mapstructure:"DB_USER"`
	DBPassword        string `mapstructure:"DB_PASSWORD"`
	DBName            string `mapstructure:"DB_NAME"`
	DBPath            string `mapstructure:"DB_PATH"`
	WebServerPort     string `mapstructure:"WEB_SERVER_PORT"`
	Environment       string `mapstructure:"ENVIRONMENT"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	OTelCollectorAddr string `mapstructure:"OTEL_COLLECTOR_ADDR"`
}

// DSN builds the connection string for the configured driver.
func (c *Conf) DSN() string {
	if c.DBDriver == "sqlite" {
		return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DBPath)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Conf) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "university")
	v.SetDefault("DB_PATH", "university.db")
	v.SetDefault("WEB_SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "")
}

// LoadConfig reads path/.env when present and lets the environment override it.
func LoadConfig(path string) (*Conf, error) {
	return Load(viper.GetViper(), path)
}

// Load is LoadConfig on a caller-owned viper instance, so flags bound to it win.
func Load(v *viper.Viper, path string) (*Conf, error) {
	var cfg *Conf

	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
