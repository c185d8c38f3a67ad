// Package shadow talks to the cloud device-shadow service. Controllers write
// keys into a thing's desired state; devices report into its reported state.
// Reconciliation between the two is entirely the remote service's business.
package shadow

import (
	"context"
	"errors"
	"strconv"
)

var (
	// ErrRemoteUnavailable marks transport-level failures reaching the service.
	ErrRemoteUnavailable = errors.New("shadow service unavailable")
	// ErrRemoteRejected marks updates the service refused.
	ErrRemoteRejected = errors.New("shadow update rejected")
	// ErrPropertyMissing marks a key absent from a thing's reported state.
	ErrPropertyMissing = errors.New("shadow property missing")
)

type Client interface {
	// GetProperty fetches the thing's shadow and extracts one reported key.
	GetProperty(ctx context.Context, thing, property string) (string, error)
	// SetProperty issues a desired-state delta containing exactly one key.
	SetProperty(ctx context.Context, thing, property, value string) error
}

// Document is the wire shape of a device shadow.
type Document struct {
	State State `json:"state"`
}

type State struct {
	Desired  map[string]any `json:"desired,omitempty"`
	Reported map[string]any `json:"reported,omitempty"`
}

func desiredDelta(property, value string) Document {
	return Document{State: State{Desired: map[string]any{property: value}}}
}

// formatValue renders a reported value as the string a handler can speak.
// Devices report some properties as JSON numbers and some as strings.
// Non-scalar values (objects, arrays, null) have no spoken form.
func formatValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
