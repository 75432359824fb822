// Package config loads spacebeat settings from defaults, a config file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// HighScoreConfig selects where the high score is kept.
type HighScoreConfig struct {
	Backend string `mapstructure:"backend"` // "sqlite" or "memory"
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// SSHConfig holds the SSH server address and host key.
type SSHConfig struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	HostKeyPath string `mapstructure:"hostKeyPath"`
}

// WebConfig holds the landing page address.
type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"sshDisplayHost"`
}

// AudioConfig holds local playback settings.
type AudioConfig struct {
	Speaker bool   `mapstructure:"speaker"`
	File    string `mapstructure:"file"` // track bound to key 4
}

// InfluxConfig holds the optional run-result sink.
type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

// WindowConfig holds the graphical frontend size.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config is the runtime configuration of every frontend.
type Config struct {
	LogLevel  string          `mapstructure:"logLevel"`
	LogFile   string          `mapstructure:"logFile"`
	Mode      string          `mapstructure:"mode"`
	Seed      int64           `mapstructure:"seed"` // 0 picks one from the clock
	HighScore HighScoreConfig `mapstructure:"highScore"`
	SSH       SSHConfig       `mapstructure:"ssh"`
	Web       WebConfig       `mapstructure:"web"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Influx    InfluxConfig    `mapstructure:"influx"`
	Window    WindowConfig    `mapstructure:"window"`
}

// EnvPrefix prefixes environment overrides, e.g. SPACEBEAT_SSH_PORT.
const EnvPrefix = "SPACEBEAT"

// unprefixedDefaults lists the settings that still honour the variable
// names used before the SPACEBEAT_ prefix. They only seed defaults, so a
// config file or a prefixed variable overrides them.
var unprefixedDefaults = []struct {
	key, env, fallback string
}{
	{"ssh.host", "SSH_HOST", "0.0.0.0"},
	{"ssh.port", "SSH_PORT", "2222"},
	{"ssh.hostKeyPath", "SSH_HOST_KEY", ".ssh/id_ed25519"},
	{"web.host", "WEB_HOST", "0.0.0.0"},
	{"web.port", "WEB_PORT", "8080"},
	{"web.sshDisplayHost", "SSH_DISPLAY_HOST", "your-server.com"},
}

// envOr returns the variable named env, or fallback when it is unset.
// An empty but set variable is returned as is.
func envOr(env, fallback string) string {
	if v, ok := os.LookupEnv(env); ok {
		return v
	}
	return fallback
}

// Load sets defaults, reads spacebeat.{yaml,json,toml} from configDir when
// present and applies environment overrides. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "logs/spacebeat.log")
	viper.SetDefault("mode", "prototype")
	viper.SetDefault("seed", 0)

	viper.SetDefault("highScore.backend", "sqlite")
	viper.SetDefault("highScore.path", "spacebeat.db")
	viper.SetDefault("highScore.key", "highScore")

	for _, d := range unprefixedDefaults {
		viper.SetDefault(d.key, envOr(d.env, d.fallback))
	}

	viper.SetDefault("audio.speaker", false)
	viper.SetDefault("audio.file", "")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "spacebeat")
	viper.SetDefault("influx.bucket", "runs")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("spacebeat")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// SSHAddr returns host:port of the SSH server.
func (c *Config) SSHAddr() string {
	return net.JoinHostPort(c.SSH.Host, c.SSH.Port)
}

// WebAddr returns host:port of the landing page.
func (c *Config) WebAddr() string {
	return net.JoinHostPort(c.Web.Host, c.Web.Port)
}
