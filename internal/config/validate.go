package config

import (
	"fmt"
	"unicode/utf8"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

var validDelimiters = map[string]bool{
	"comma": true, "semicolon": true, "colon": true, "tab": true, "cfg": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}

	if !validDelimiters[c.Import.Delimiter] {
		errs = append(errs, fmt.Sprintf("import.delimiter: must be one of comma, semicolon, colon, tab, cfg; got %q", c.Import.Delimiter))
	}
	if utf8.RuneCountInString(c.Import.CustomDelimiter) != 1 {
		errs = append(errs, fmt.Sprintf("import.custom_delimiter: must be a single character; got %q", c.Import.CustomDelimiter))
	}
	if c.Import.CourseColumn < -1 {
		errs = append(errs, fmt.Sprintf("import.course_column: must be >= -1; got %d", c.Import.CourseColumn))
	}
	if c.Import.UserColumn < -1 {
		errs = append(errs, fmt.Sprintf("import.user_column: must be >= -1; got %d", c.Import.UserColumn))
	}
	if c.Import.SessionTTL.Duration < 0 {
		errs = append(errs, "import.session_ttl: must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.PruneInterval.Duration < 0 {
		errs = append(errs, "server.prune_interval: must not be negative")
	}
	if c.Server.EventRetention.Duration < 0 {
		errs = append(errs, "server.event_retention: must not be negative")
	}

	return errs
}
