package model

import "fmt"

// ValidationError rejects caller input before any external call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConfigurationError means required external configuration is missing. The
// request cannot succeed until an operator fixes the environment.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// UpstreamError is a failure response from a remote service. StatusCode is
// the upstream HTTP status, Detail the most specific message available.
type UpstreamError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Service, e.StatusCode, e.Detail)
}
