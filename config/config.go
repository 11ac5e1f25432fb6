package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Uploads  UploadsConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port          int
	Mode          string // debug, release, test
	PageSize      int
	TemplatesGlob string
	StaticDir     string
}

// StoreConfig holds the flat-file store configuration
type StoreConfig struct {
	Path string
}

// UploadsConfig holds the screenshot upload configuration
type UploadsConfig struct {
	Dir       string
	URLPrefix string
	MaxSizeMB int
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	// Set defaults for configuration
	setDefaults()

	// Use config file from the flag if provided
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common directories with name "config"
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/deathlog")
		viper.SetConfigName("config")
	}

	// Set environment variable prefix for config overrides
	viper.SetEnvPrefix("DEATHLOG")

	// Enable automatic environment variable binding
	// For example, DEATHLOG_SERVER_PORT will override server.port
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, using defaults and environment variables
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.page_size", 100)
	viper.SetDefault("server.templates_glob", "web/templates/*.html")
	viper.SetDefault("server.static_dir", "web/static")

	// Store defaults
	viper.SetDefault("store.path", "data/deaths.json")

	// Upload defaults
	viper.SetDefault("uploads.dir", "data/uploads")
	viper.SetDefault("uploads.url_prefix", "/uploads")
	viper.SetDefault("uploads.max_size_mb", 8)

	// New Relic defaults
	viper.SetDefault("newrelic.appname", "DeathLog Local")
	viper.SetDefault("newrelic.enabled", false)
}

// Load loads the configuration
func Load() (*Config, error) {
	serverConfig := ServerConfig{
		Port:          viper.GetInt("server.port"),
		Mode:          viper.GetString("server.mode"),
		PageSize:      viper.GetInt("server.page_size"),
		TemplatesGlob: viper.GetString("server.templates_glob"),
		StaticDir:     viper.GetString("server.static_dir"),
	}

	storeConfig := StoreConfig{
		Path: viper.GetString("store.path"),
	}

	uploadsConfig := UploadsConfig{
		Dir:       viper.GetString("uploads.dir"),
		URLPrefix: viper.GetString("uploads.url_prefix"),
		MaxSizeMB: viper.GetInt("uploads.max_size_mb"),
	}

	newRelicConfig := NewRelicConfig{
		AppName:    viper.GetString("newrelic.appname"),
		LicenseKey: viper.GetString("newrelic.licensekey"),
		Enabled:    viper.GetBool("newrelic.enabled"),
	}

	return &Config{
		Server:   serverConfig,
		Store:    storeConfig,
		Uploads:  uploadsConfig,
		NewRelic: newRelicConfig,
	}, nil
}
