package valueobjects

import "fmt"

// Status is the head-facing lifecycle state of an escalation message.
type Status string

const (
	StatusUnread   Status = "unread"
	StatusRead     Status = "read"
	StatusResolved Status = "resolved"
)

var validStatuses = map[Status]bool{
	StatusUnread:   true,
	StatusRead:     true,
	StatusResolved: true,
}

// statusTransitions encodes the forward-only lifecycle. Resolved is terminal.
var statusTransitions = map[Status][]Status{
	StatusUnread: {
		StatusRead,
		StatusResolved,
	},
	StatusRead: {
		StatusResolved,
	},
	StatusResolved: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(newStatus Status) bool {
	allowedTransitions, ok := statusTransitions[s]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (s Status) IsUnread() bool {
	return s == StatusUnread
}

func (s Status) IsRead() bool {
	return s == StatusRead
}

func (s Status) IsResolved() bool {
	return s == StatusResolved
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid message status: %s", s)
	}
	return status, nil
}
