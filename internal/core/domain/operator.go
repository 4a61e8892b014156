package domain

// OperatorRole is the role carried in an operator's token.
type OperatorRole string

const (
	RoleCashier OperatorRole = "cashier"
	RoleManager OperatorRole = "manager"
)

// Operator is the authenticated person acting on the register.
type Operator struct {
	ID   string
	Role OperatorRole
}

// CanProcessVoids reports whether the operator may approve or reject voids.
func (o Operator) CanProcessVoids() bool {
	return o.Role == RoleManager
}
