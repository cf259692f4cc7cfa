// Package config loads the application configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type SystemConfig struct {
	Workdir string `mapstructure:"workdir"`
}

type WebConfig struct {
	Listen    string `mapstructure:"listen"`
	JwtSecret string `mapstructure:"jwt_secret"`
	Pprof     bool   `mapstructure:"pprof"`
}

type CheckoutConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	SecretKey string `mapstructure:"secret_key"`
	Origin    string `mapstructure:"origin"`
}

type LoggerConfig struct {
	Mode       string `mapstructure:"mode"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type JobsConfig struct {
	MetricsCron string `mapstructure:"metrics_cron"`
}

type AppConfig struct {
	System   SystemConfig   `mapstructure:"system"`
	Web      WebConfig      `mapstructure:"web"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

// RecordStorePath is the bbolt file under the work directory.
func (c *AppConfig) RecordStorePath() string {
	return filepath.Join(c.System.Workdir, "records.db")
}

// Load reads the config file named by --config or STOREFRONT_CONFIG_FILE. A
// missing file falls back to defaults; an unreadable one is fatal.
func Load() *AppConfig {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configFilepath()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
				die(err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		die(err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("system.workdir", "/var/storefront")
	v.SetDefault("web.listen", ":8090")
	v.SetDefault("web.jwt_secret", "storefront-dev-secret")
	v.SetDefault("web.pprof", false)
	v.SetDefault("checkout.endpoint", "https://api.stripe.com/v1/checkout/sessions")
	v.SetDefault("checkout.secret_key", "")
	v.SetDefault("checkout.origin", "http://localhost:8090")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "/var/storefront/storefront.log")
	v.SetDefault("jobs.metrics_cron", "@every 5m")
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}
