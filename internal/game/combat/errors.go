package combat

import (
	"fmt"
)

// ValidationError reports a configuration problem detected while
// constructing a combatant or session. It carries enough context for
// the orchestration layer to surface a 4xx-equivalent rejection.
type ValidationError struct {
	Combatant string // combatant id or name
	Field     string
	Reason    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("combat: combatant %q field %s: %s", e.Combatant, e.Field, e.Reason)
}

// validationErr builds a *ValidationError.
func validationErr(combatant, field, format string, args ...any) error {
	return &ValidationError{
		Combatant: combatant,
		Field:     field,
		Reason:    fmt.Sprintf(format, args...),
	}
}
