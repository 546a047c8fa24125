package model

type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Action is an operation that may be refused depending on the current status.
type Action string

const (
	ActionValidate Action = "validate"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
)

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Action]transition{
	ActionValidate: {from: []Status{StatusPending}, to: StatusValidated},
	ActionCancel:   {from: []Status{StatusPending, StatusValidated}, to: StatusCancelled},
	ActionComplete: {from: []Status{StatusValidated}, to: StatusCompleted},
}

// ActiveStatuses are the statuses that hold a window.
var ActiveStatuses = []Status{StatusPending, StatusValidated}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether a booking in this status occupies its window.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusValidated
}

// IsTerminal reports whether no status-changing action applies anymore.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Editable reports whether the booking fields may still be changed.
func (s Status) Editable() bool {
	return s.IsActive()
}

// Deletable reports whether the record may be removed. Completed bookings are history.
func (s Status) Deletable() bool {
	return s != StatusCompleted
}

// Apply returns the status reached by performing a from s.
func (s Status) Apply(a Action) (Status, error) {
	t, ok := transitions[a]
	if !ok {
		return s, &IllegalTransitionError{From: s, Action: a}
	}

	for _, from := range t.from {
		if from == s {
			return t.to, nil
		}
	}

	return s, &IllegalTransitionError{From: s, Action: a}
}

// IsTransition reports whether a is a status-changing action.
func (a Action) IsTransition() bool {
	_, ok := transitions[a]

	return ok
}

// Sources lists the statuses a may be applied from.
func (a Action) Sources() []Status {
	return append([]Status(nil), transitions[a].from...)
}

// Target is the status reached by a, or "" if a does not change status.
func (a Action) Target() Status {
	return transitions[a].to
}

// ParseAction maps a request value to a status-changing action.
func ParseAction(value string) (Action, bool) {
	a := Action(value)

	return a, a.IsTransition()
}
