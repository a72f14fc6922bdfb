// Package authorization defines the role model and route-level guards for the
// escalation messaging service.
package authorization

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleHead       UserRole = "head"
	RoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsHead() bool {
	return r == RoleHead
}

func (r UserRole) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleHead || r == RoleSuperAdmin
}

func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.IsValid()
}

// Principal is the authenticated caller as seen by use cases.
type Principal struct {
	UserID uint
	Role   UserRole
}
