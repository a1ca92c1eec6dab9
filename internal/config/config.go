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
	Dir       DirConfig       `yaml:"dir" mapstructure:"dir"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Retention RetentionConfig `yaml:"retention" mapstructure:"retention"`
	Sheets    SheetsConfig    `yaml:"sheets" mapstructure:"sheets"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DirConfig locates the price directory and the reserved output file.
type DirConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	CanonicalOutput string `yaml:"canonical_output" mapstructure:"canonical_output"`
}

// EngineConfig configures extraction behavior.
type EngineConfig struct {
	// CodePattern selects the SAP-code rule: "fixed10" or "prefix3".
	CodePattern string `yaml:"code_pattern" mapstructure:"code_pattern"`
	// Workers bounds concurrent per-file extraction. 1 = sequential.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RetentionConfig configures file deletion.
type RetentionConfig struct {
	HorizonDays int  `yaml:"horizon_days" mapstructure:"horizon_days"`
	DryRun      bool `yaml:"dry_run" mapstructure:"dry_run"`
}

// SheetsConfig holds the Google Sheets sink settings.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name" mapstructure:"sheet_name"`
}

// ExportConfig configures the local canonical workbook export.
type ExportConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// StoreConfig configures the run ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
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
	v.SetEnvPrefix("FIYAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dir.path", ".")
	v.SetDefault("dir.canonical_output", "Fiyat_Listesi.xlsx")
	v.SetDefault("engine.code_pattern", "fixed10")
	v.SetDefault("engine.workers", 1)
	v.SetDefault("retention.horizon_days", 210)
	v.SetDefault("retention.dry_run", false)
	v.SetDefault("sheets.enabled", true)
	v.SetDefault("sheets.sheet_name", "Fiyat")
	v.SetDefault("export.enabled", true)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "fiyat.db")
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
