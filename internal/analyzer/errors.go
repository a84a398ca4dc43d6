package analyzer

import "fmt"

// ContentError is fatal: a file the collaborator enumerated could not be
// read. Per-file extraction problems never produce it.
type ContentError struct {
	Path string
	Err  error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ContentError) Unwrap() error { return e.Err }

// ConfigError is fatal: a configuration value the run cannot proceed with,
// identifying the offending field and value.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s=%q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("config %s=%q is invalid", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }
