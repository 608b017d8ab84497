package enum

// Role is a user's access level within the store.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClerk    Role = "clerk"
)

// Roles lists all valid roles.
func Roles() []Role {
	return []Role{RoleManager, RoleEmployee, RoleClerk}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, v := range Roles() {
		if r == v {
			return true
		}
	}
	return false
}

// CanAdjustStock reports whether the role may perform manual stock
// adjustments. Clerks sell; they do not restock.
func (r Role) CanAdjustStock() bool {
	return r == RoleManager || r == RoleEmployee
}

func (r Role) String() string {
	return string(r)
}
