package internal

import (
	"strings"
)

type Calendar struct {
	ID string
}

// LocalPart is the portion of the calendar ID before "@", usually the
// owner's mailbox name.
func (c Calendar) LocalPart() string {
	local, _, _ := strings.Cut(c.ID, "@")
	return local
}

func (c Calendar) String() string {
	return c.ID
}

func NewCalendars(ids []string) []Calendar {
	cals := make([]Calendar, 0, len(ids))
	for _, id := range ids {
		cals = append(cals, Calendar{ID: id})
	}
	return cals
}
