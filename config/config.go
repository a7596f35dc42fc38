package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/frankenergie-go/query"
	"github.com/spf13/viper"
)

type AppConfigAuth struct {
	Email    string
	Password string
	// Pre-seeded tokens resume an earlier session instead of logging in.
	AuthToken    *string `mapstructure:"auth_token"`
	RefreshToken *string `mapstructure:"refresh_token"`
}

func (a AppConfigAuth) HasCredentials() bool {
	return a.Email != "" && a.Password != ""
}

func (a AppConfigAuth) HasTokens() bool {
	return a.AuthToken != nil && a.RefreshToken != nil
}

type AppConfigPrices struct {
	// Cron expression for the market price refresh task, default: "@hourly"
	RunAt *string `mapstructure:"run_at"`
}

func (p AppConfigPrices) GetRunAt() string {
	if p.RunAt == nil {
		return "@hourly"
	}
	return *p.RunAt
}

type AppConfigLogging struct {
	// Min console log level: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return levelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	// "NL" or "BE", default: "NL"
	Country *string
	Auth    AppConfigAuth
	Prices  AppConfigPrices
	Logging AppConfigLogging
}

func (c AppConfig) GetCountry() query.Country {
	if c.Country == nil {
		return query.Netherlands
	}
	if strings.EqualFold(*c.Country, string(query.Belgium)) {
		return query.Belgium
	}
	return query.Netherlands
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

func levelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	switch strings.ToUpper(*str) {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
