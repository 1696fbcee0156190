package engine

import "fmt"

// ConfigError is fatal for the entire run and is surfaced before any channel
// is processed (missing credential, no channel URLs).
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// FetchError means channel-data acquisition failed. Fatal for that channel
// only: the pipeline records a failed result and moves on.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
