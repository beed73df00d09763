package config

import (
	"fmt"
	"strings"
)

// ConfigError reports every problem found in one config file, so an
// operator can fix unset ${VAR} references and bad [import]/[server]
// values in a single pass.
type ConfigError struct {
	Path    string
	Missing []string // ${VAR} references with no value in the environment
	Errors  []string // "section.key: reason" messages from Validate
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:", e.Path)
	} else {
		b.WriteString("config:")
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "\n  unset environment variables: %s", strings.Join(e.Missing, ", "))
	}
	for _, msg := range e.Errors {
		fmt.Fprintf(&b, "\n  %s", msg)
	}
	return b.String()
}

// HasErrors reports whether Load should reject the file.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
