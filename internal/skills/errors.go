package skills

import "fmt"

// ConfigurationError indicates an invalid scoring configuration. It is fatal
// at configuration time and never produced by a valid running system.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}
