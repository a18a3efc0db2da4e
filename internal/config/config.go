// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
	"github.com/iwvelando/trid-reconcile/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. TRID_RULES_ZEROTHRESHOLD.
const EnvPrefix = "TRID"

// Configuration holds all configuration for trid-reconcile.
type Configuration struct {
	Rules     tolerance.RuleOptions `yaml:"rules" mapstructure:"rules"`
	Overrides map[string]bool       `yaml:"overrides,omitempty" mapstructure:"overrides"`
	Logging   LoggingConfig         `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig          `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// SetDefaults registers the default rule options, logging and output settings
// on v.
func SetDefaults(v *viper.Viper) {
	defaults := tolerance.DefaultRuleOptions()
	v.SetDefault("rules.zeroThreshold", defaults.ZeroThreshold)
	v.SetDefault("rules.reviewConfidenceFloor", defaults.ReviewConfidenceFloor)
	v.SetDefault("rules.reviewConfidenceCeil", defaults.ReviewConfidenceCeil)
	v.SetDefault("rules.lenderCredits", defaults.LenderCredits)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. It uses the global viper instance so command line
// flags bound with viper.BindPFlag take precedence over the file. An empty
// path loads defaults and environment overrides only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.GetViper()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r into a fresh
// viper instance, leaving the global one untouched.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() *Configuration {
	v := viper.New()
	SetDefaults(v)
	conf, err := decode(v)
	if err != nil {
		return &Configuration{Rules: tolerance.DefaultRuleOptions()}
	}
	return conf
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// RuleOverrides returns the override map keyed by fee id. Viper lowercases
// map keys on load, so ids are restored to their upper-case form.
func (c *Configuration) RuleOverrides() tolerance.Overrides {
	if len(c.Overrides) == 0 {
		return nil
	}
	out := make(tolerance.Overrides, len(c.Overrides))
	for id, include := range c.Overrides {
		out[strings.ToUpper(strings.TrimSpace(id))] = include
	}
	return out
}

// Validate checks the rule options, logging and output settings.
func (c *Configuration) Validate() error {
	if err := validation.ValidateRuleOptions(c.Rules); err != nil {
		return err
	}
	if err := validation.ValidateLogging(c.Logging.Level, c.Logging.Format); err != nil {
		return err
	}
	return validation.ValidateOutputFormat(c.Output.Format)
}
