package config

import "fmt"

// MalformedConfigError is returned when an input document is not a
// valid ImageSetConfiguration. It is fatal to the parse call; no
// partial result accompanies it.
type MalformedConfigError struct {
	Reason string
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed configuration: %s", e.Reason)
}

// ChannelNotFoundError reports that an operator exists in the rebuilt
// catalog but the configured channel does not. It is collected per
// operator during reconciliation, never raised for the batch.
type ChannelNotFoundError struct {
	Operator string
	Channel  string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("operator %q: channel %q not found in catalog", e.Operator, e.Channel)
}
