package domain

// Role tags the two disjoint principal kinds carried inside issued tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAssignee Role = "assignee"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAssignee
}
