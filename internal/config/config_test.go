package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[log]\nlevel = \"debug\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "./data/pagecomplete.db", cfg.Database.Path)
	assert.Equal(t, "comma", cfg.Import.Delimiter)
	assert.Equal(t, "UTF-8", cfg.Import.Encoding)
	assert.Equal(t, "|", cfg.Import.CustomDelimiter)
	assert.Equal(t, 0, cfg.Import.CourseColumn)
	assert.Equal(t, 1, cfg.Import.UserColumn)
	assert.Equal(t, "student", cfg.Import.StudentRole)
	assert.Equal(t, 72*time.Hour, cfg.Import.SessionTTL.Duration)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Server.PruneInterval.Duration)
	assert.Zero(t, cfg.Server.EventRetention.Duration)
}

func TestLoad_ImportSection(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[import]
delimiter = "cfg"
custom_delimiter = "#"
course_column = 2
user_column = 0
session_ttl = "30m"
`))
	require.NoError(t, err)

	assert.Equal(t, "cfg", cfg.Import.Delimiter)
	assert.Equal(t, "#", cfg.Import.CustomDelimiter)
	assert.Equal(t, 2, cfg.Import.CourseColumn)
	assert.Equal(t, 0, cfg.Import.UserColumn)
	assert.Equal(t, 30*time.Minute, cfg.Import.SessionTTL.Duration)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("PAGECOMPLETE_TEST_DB", "/var/lib/pc.db")

	cfg, err := Load(writeConfig(t, "[database]\npath = \"${PAGECOMPLETE_TEST_DB}\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pc.db", cfg.Database.Path)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	_, err := Load(writeConfig(t, "[database]\npath = \"${PAGECOMPLETE_TEST_NONEXISTENT_12345}\"\n"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"PAGECOMPLETE_TEST_NONEXISTENT_12345"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "PAGECOMPLETE_TEST_NONEXISTENT_12345")
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, "[import]\ndelimiter = \"pipe\"\n"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Len(t, cfgErr.Errors, 1)
	assert.Contains(t, cfgErr.Errors[0], "import.delimiter")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"long custom delimiter", func(c *Config) { c.Import.CustomDelimiter = "||" }, "import.custom_delimiter"},
		{"course column", func(c *Config) { c.Import.CourseColumn = -2 }, "import.course_column"},
		{"user column", func(c *Config) { c.Import.UserColumn = -5 }, "import.user_column"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.want == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("PC_SET", "hello")
	t.Setenv("PC_EMPTY", "")

	tests := []struct {
		in      string
		want    string
		missing int
	}{
		{"v = ${PC_SET}", "v = hello", 0},
		{"v = ${PC_EMPTY:-fallback}", "v = fallback", 0},
		{"v = ${PC_SET:-fallback}", "v = hello", 0},
		{"v = ${PC_EMPTY:?required}", "v = ${PC_EMPTY:?required}", 1},
		{"v = ${PC_NEVER_SET_98765}", "v = ${PC_NEVER_SET_98765}", 1},
		{"v = plain", "v = plain", 0},
	}

	for _, tt := range tests {
		got, missing := substituteEnvVars(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Len(t, missing, tt.missing, tt.in)
	}
}

func TestDiscover_EnvVar(t *testing.T) {
	path := writeConfig(t, "[log]\n")
	t.Setenv("PAGECOMPLETE_CONFIG", path)

	got, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv("PAGECOMPLETE_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGECOMPLETE_CONFIG")
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/pagecomplete/config.toml", DefaultPath())
}

func TestWriteDefault_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "comma", cfg.Import.Delimiter)
	assert.Equal(t, 8585, cfg.Server.Port)
}

func TestConfig_WriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Import.Delimiter = "semicolon"
	cfg.Import.SessionTTL.Duration = 2 * time.Hour

	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "semicolon", loaded.Import.Delimiter)
	assert.Equal(t, 2*time.Hour, loaded.Import.SessionTTL.Duration)
}

func TestConfigError_Empty(t *testing.T) {
	e := &ConfigError{}
	assert.False(t, e.HasErrors())
	assert.Equal(t, "", e.Error())
}

func TestResolve_NoConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)

	if _, err := Discover(); !errors.Is(err, ErrNotFound) {
		t.Skip("a system-wide config is installed")
	}
	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfigError_ListsEveryProblem(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/pagecomplete/config.toml",
		Missing: []string{"PAGECOMPLETE_DB"},
		Errors:  []string{"import.delimiter: bad", "server.port: bad"},
	}
	require.True(t, e.HasErrors())
	msg := e.Error()
	assert.Contains(t, msg, "config /etc/pagecomplete/config.toml:")
	assert.Contains(t, msg, "unset environment variables: PAGECOMPLETE_DB")
	assert.Contains(t, msg, "import.delimiter: bad")
	assert.Contains(t, msg, "server.port: bad")
}
