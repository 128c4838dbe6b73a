// Package config loads application configuration from config.yaml and
// LEADS_* environment variables, and owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Import    ImportConfig    `yaml:"import" mapstructure:"import"`
	Bulk      BulkConfig      `yaml:"bulk" mapstructure:"bulk"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Messaging MessagingConfig `yaml:"messaging" mapstructure:"messaging"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // postgres | sqlite
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ImportConfig configures the spreadsheet import pipeline.
type ImportConfig struct {
	SheetIndex  int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	SheetName   string `yaml:"sheet_name" mapstructure:"sheet_name"`
	SkipRows    int    `yaml:"skip_rows" mapstructure:"skip_rows"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	AliasFile   string `yaml:"alias_file" mapstructure:"alias_file"`
	CSVCharset  string `yaml:"csv_charset" mapstructure:"csv_charset"`
}

// BulkConfig configures the assign/delete fan-out.
type BulkConfig struct {
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/sec, 0 = unlimited
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// MessagingConfig configures outbound link construction.
type MessagingConfig struct {
	WhatsAppBaseURL string `yaml:"whatsapp_base_url" mapstructure:"whatsapp_base_url"`
	MessageTemplate string `yaml:"message_template" mapstructure:"message_template"`
	EmailSubject    string `yaml:"email_subject" mapstructure:"email_subject"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("import.sheet_index", 0)
	v.SetDefault("import.skip_rows", 0)
	v.SetDefault("import.concurrency", 4)
	v.SetDefault("bulk.concurrency", 8)
	v.SetDefault("bulk.rate_limit", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("messaging.whatsapp_base_url", "https://wa.me/")
	v.SetDefault("messaging.message_template", "Hi {contact_name}, reaching out about {company_name}.")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
