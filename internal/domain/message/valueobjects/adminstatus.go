package valueobjects

// AdminStatus is the sender-facing view of a message's progress. It is derived
// from the stored status and the presence of a reply, never persisted.
type AdminStatus string

const (
	AdminStatusPending  AdminStatus = "pending"
	AdminStatusReplied  AdminStatus = "replied"
	AdminStatusResolved AdminStatus = "resolved"
)

func (s AdminStatus) String() string {
	return string(s)
}

// DeriveAdminStatus computes the sender-facing status from the head-facing
// status and whether a reply exists.
func DeriveAdminStatus(status Status, hasReply bool) AdminStatus {
	if status.IsResolved() {
		return AdminStatusResolved
	}
	if hasReply {
		return AdminStatusReplied
	}
	return AdminStatusPending
}
