package elreasoner

import (
	"errors"
	"fmt"
)

// Sentinel errors for the axiom-store construction boundary. Callers use
// errors.Is to classify a failure; saturation and taxonomy reduction
// never return an error at all, since they are sound and total by
// construction once the store is built.
var (
	// ErrConceptOutOfRange is returned when an axiom references a
	// concept id outside [0, numConcepts).
	ErrConceptOutOfRange = errors.New("elreasoner: concept id out of range")
	// ErrRoleOutOfRange is returned when an axiom references a role id
	// outside [0, numRoles).
	ErrRoleOutOfRange = errors.New("elreasoner: role id out of range")
	// ErrInvalidArity is returned when a store is constructed with a
	// concept count too small to hold TOP and BOTTOM.
	ErrInvalidArity = errors.New("elreasoner: numConcepts must be >= 2")
)

// rangeError wraps one of the sentinels above with the offending id and
// the caller-supplied context (e.g. "sub_to_sups", "exist_right").
type rangeError struct {
	sentinel error
	context  string
	id       int
	bound    int
}

func (e *rangeError) Error() string {
	return fmt.Sprintf("%s: %s id %d out of range [0, %d)", e.sentinel, e.context, e.id, e.bound)
}

func (e *rangeError) Unwrap() error { return e.sentinel }

func newConceptRangeError(context string, id ConceptId, numConcepts int) error {
	return &rangeError{sentinel: ErrConceptOutOfRange, context: context, id: int(id), bound: numConcepts}
}

func newRoleRangeError(context string, id RoleId, numRoles int) error {
	return &rangeError{sentinel: ErrRoleOutOfRange, context: context, id: int(id), bound: numRoles}
}
