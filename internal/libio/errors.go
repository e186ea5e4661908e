package libio

import "fmt"

// ErrNotFound names the entity and id a forest lookup failed to find, so
// callers can match it structurally with errors.As instead of parsing a
// message.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("libio: %s not found: %s", e.Entity, e.ID)
}
