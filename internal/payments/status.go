package payments

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"

	// StatusFailed is reserved for real gateway integrations that can decline
	// a payment. The mock gateway never produces it.
	StatusFailed Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition may leave this state
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
