package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINWISE_LOG_LEVEL.
const EnvPrefix = "FINWISE"

// Setting keys shared by the viper instance and the CLI flags bound to it.
const (
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
	KeyConfigPath = "config"
	KeyOutput     = "output"
	KeyServerAddr = "server.addr"
)

// Settings are the runtime knobs of the CLI and server, as opposed to the
// engine configuration loaded by InputParser.
type Settings struct {
	LogLevel   string
	LogFormat  string
	ConfigPath string
	Output     string
	ServerAddr string
}

// NewViper returns a viper instance with defaults and FINWISE_ environment
// overrides. A settings file, when given, is read on top of the defaults.
func NewViper(settingsFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyConfigPath, "")
	v.SetDefault(KeyOutput, "console")
	v.SetDefault(KeyServerAddr, ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsFile, err)
		}
	}
	return v, nil
}

// LoadSettings reads the resolved values out of v.
func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		ConfigPath: v.GetString(KeyConfigPath),
		Output:     v.GetString(KeyOutput),
		ServerAddr: v.GetString(KeyServerAddr),
	}
}
