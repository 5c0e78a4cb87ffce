package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool     = errors.New("external tool error")
	ErrProbe            = errors.New("probe failed")
	ErrIneligible       = errors.New("ineligible")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrMux              = errors.New("mux failed")
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later outcome classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSkip reports whether err marks a policy skip rather than a hard failure.
func IsSkip(err error) bool {
	switch {
	case errors.Is(err, ErrAlreadyProcessed), errors.Is(err, ErrIneligible), errors.Is(err, ErrProbe), errors.Is(err, ErrValidation):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
