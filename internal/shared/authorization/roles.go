package authorization

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleHIS    UserRole = "his"
	RoleUser   UserRole = "user"
	RoleViewer UserRole = "viewer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// CanManageTickets reports whether the role may triage, assign, and resolve
// tickets. Only manage-capable roles are valid assignees.
func (r UserRole) CanManageTickets() bool {
	return r == RoleAdmin || r == RoleHIS
}

// CanCreateTickets reports whether the role may file new tickets.
// Viewers have read-only access.
func (r UserRole) CanCreateTickets() bool {
	return r == RoleAdmin || r == RoleHIS || r == RoleUser
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHIS, RoleUser, RoleViewer:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
