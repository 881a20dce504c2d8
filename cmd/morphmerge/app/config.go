package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wordforge/morphmerge/pkg/errors"
)

// Config holds the CLI configuration assembled from flags, environment
// variables, .env files, and an optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Corpus locations
	Input       string
	WorkDir     string
	Output      string
	BasicOutput string
	TabularRoot string
	LegacyDir   string
	IndexPath   string

	// Pipeline tuning
	ShardSize int
	Workers   int

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables (MORPHMERGE_*)
//  3. .env files
//  4. Config file (~/.morphmerge.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile loads configuration with an explicit config file in place
// of the search path. Used when the --config flag names a file: flag
// parsing happens after the initial LoadConfig, so the app re-loads.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files before viper binds the environment.
	loadEnvFiles()

	viper.SetEnvPrefix("MORPHMERGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if configFile == "" {
		configFile = viper.GetString("config")
	}
	if configFile != "" {
		// An explicitly named config file must be readable.
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.WrapIO("read", configFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".morphmerge")
		}
		// A missing config file in the search path is fine.
		_ = viper.ReadInConfig()
	}

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		Input:       viper.GetString("input"),
		WorkDir:     viper.GetString("work_dir"),
		Output:      viper.GetString("output"),
		BasicOutput: viper.GetString("basic_output"),
		TabularRoot: viper.GetString("tables"),
		LegacyDir:   viper.GetString("legacy"),
		IndexPath:   viper.GetString("index"),

		ShardSize: viper.GetInt("shard_size"),
		Workers:   viper.GetInt("workers"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	return config, nil
}

// UpdateFromFlags applies parsed command flags so they take precedence
// over config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults() {
	viper.SetDefault("work_dir", "work")
	viper.SetDefault("shard_size", 1000)
	viper.SetDefault("workers", 1)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default
// if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
