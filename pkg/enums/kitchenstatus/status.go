package kitchenstatus

import (
	"strings"
)

// Status is an item-level kitchen preparation state. Rank encodes the
// pending < preparing < ready < completed ordering used to enforce
// monotonic transitions.
type Status struct {
	Name string
	Rank int
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Pending   Status
	Preparing Status
	Ready     Status
	Completed Status
}

var Statuses = Enum{
	Pending:   Status{Name: "pending", Rank: 0},
	Preparing: Status{Name: "preparing", Rank: 1},
	Ready:     Status{Name: "ready", Rank: 2},
	Completed: Status{Name: "completed", Rank: 3},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Preparing,
	Statuses.Ready,
	Statuses.Completed,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// Rank returns the ordering rank for a status name, or -1 when unknown.
func Rank(name string) int {
	s := ByName(name)
	if s == nil {
		return -1
	}
	return s.Rank
}

// AtLeast reports whether status name is at or past the given floor in the
// pending < preparing < ready < completed ordering.
func AtLeast(name, floor string) bool {
	r, f := Rank(name), Rank(floor)
	return r >= 0 && f >= 0 && r >= f
}
