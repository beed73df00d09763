// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Import   ImportConfig   `toml:"import"`
	Server   ServerConfig   `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ImportConfig holds the defaults applied to every upload.
type ImportConfig struct {
	Delimiter       string   `toml:"delimiter"`
	Encoding        string   `toml:"encoding"`
	CustomDelimiter string   `toml:"custom_delimiter"` // used by the "cfg" delimiter name
	CourseColumn    int      `toml:"course_column"`
	UserColumn      int      `toml:"user_column"`
	StudentRole     string   `toml:"student_role"`
	SessionTTL      Duration `toml:"session_ttl"`
}

type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	PruneInterval  Duration `toml:"prune_interval"`
	EventRetention Duration `toml:"event_retention"` // zero keeps events forever
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Duration wraps time.Duration so it can be written as "72h" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Import: ImportConfig{CourseColumn: 0, UserColumn: 1}}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file.
// Unresolved ${VAR} references and validation failures are reported as a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg := Config{Import: ImportConfig{CourseColumn: 0, UserColumn: 1}}
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./data/pagecomplete.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Import.Delimiter == "" {
		c.Import.Delimiter = "comma"
	}
	if c.Import.Encoding == "" {
		c.Import.Encoding = "UTF-8"
	}
	if c.Import.CustomDelimiter == "" {
		c.Import.CustomDelimiter = "|"
	}
	if c.Import.StudentRole == "" {
		c.Import.StudentRole = "student"
	}
	if c.Import.SessionTTL.Duration == 0 {
		c.Import.SessionTTL.Duration = 72 * time.Hour
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.PruneInterval.Duration == 0 {
		c.Server.PruneInterval.Duration = time.Hour
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// substituteEnvVars replaces environment references and returns the names
// that could not be resolved.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]

		value, ok := os.LookupEnv(name)
		if ok && value != "" {
			return value
		}
		switch op {
		case "-":
			return arg
		case "?":
			missing = append(missing, fmt.Sprintf("%s (%s)", name, strings.TrimSpace(arg)))
			return match
		}
		if ok {
			return value
		}
		missing = append(missing, name)
		return match
	})
	return out, missing
}
