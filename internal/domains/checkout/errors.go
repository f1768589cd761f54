package checkout

import (
	"fmt"
	"strings"
)

type GroupErrorKind int

const (
	ErrMissing GroupErrorKind = iota + 1
	ErrNotCheckedIn
	ErrMixedGuests
)

// GroupError explains why a checkout group was refused.
type GroupError struct {
	Kind GroupErrorKind
	IDs  []string
}

func (e *GroupError) Error() string {
	switch e.Kind {
	case ErrMissing:
		return fmt.Sprintf("bookings not found: %s", strings.Join(e.IDs, ", "))
	case ErrNotCheckedIn:
		return fmt.Sprintf("bookings are not checked in: %s", strings.Join(e.IDs, ", "))
	case ErrMixedGuests:
		return "bookings belong to different guests"
	}

	return "invalid checkout group"
}
