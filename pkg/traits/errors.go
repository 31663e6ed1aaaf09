package traits

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryFrozen is returned by Register once lookups have started.
	ErrRegistryFrozen = errors.New("trait registry is frozen")
	// ErrInvalidDescriptor is returned by Register for incomplete descriptors.
	ErrInvalidDescriptor = errors.New("invalid trait descriptor")
)

// Phase names the descriptor call that faulted.
type Phase string

const (
	PhaseApplies Phase = "applies"
	PhaseAttach  Phase = "attach"
)

// FaultError describes a descriptor that panicked or failed.
type FaultError struct {
	Descriptor string
	Type       TypeKey
	Phase      Phase
	Cause      error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("trait '%s' failed during %s for %s: %v", e.Descriptor, e.Phase, e.Type, e.Cause)
}

func (e *FaultError) Unwrap() error {
	return e.Cause
}
