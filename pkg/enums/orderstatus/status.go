package orderstatus

import (
	"strings"
)

type Status struct {
	Name string
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

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s.Name == Statuses.Completed.Name || s.Name == Statuses.Cancelled.Name
}

type Enum struct {
	Pending   Status
	Preparing Status
	Ready     Status
	Completed Status
	Cancelled Status
}

var Statuses = Enum{
	Pending:   Status{Name: "pending"},
	Preparing: Status{Name: "preparing"},
	Ready:     Status{Name: "ready"},
	Completed: Status{Name: "completed"},
	Cancelled: Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Preparing,
	Statuses.Ready,
	Statuses.Completed,
	Statuses.Cancelled,
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

// CanTransition reports whether moving from one order status to another is
// legal: pending -> preparing -> ready -> completed, with cancelled
// reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	fromStatus := ByName(from)
	if fromStatus == nil || fromStatus.Terminal() {
		return false
	}
	switch to {
	case Statuses.Cancelled.Name:
		return true
	case Statuses.Preparing.Name:
		return from == Statuses.Pending.Name
	case Statuses.Ready.Name:
		return from == Statuses.Preparing.Name
	case Statuses.Completed.Name:
		return from == Statuses.Ready.Name
	default:
		return false
	}
}
