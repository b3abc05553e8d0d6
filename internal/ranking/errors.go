package ranking

import "fmt"

// ConfigurationError indicates invalid ranking parameters. Fatal at
// configuration time.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// InsufficientDataError indicates that ranking produced zero usable
// candidates from a non-empty pool, typically because the date filter
// excluded everything. Distinct from a genuinely empty pool.
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s", e.Message)
}
