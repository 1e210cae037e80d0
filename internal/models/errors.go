package models

// ValidationError indicates a malformed or out-of-domain filter field.
// Requests failing validation are rejected before any query runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError indicates an unresolvable product context at table
// lookup time.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}
