package domain

// Role is the caller's role as bound by the identity capability.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleProfessional Role = "professional"
	RoleProprietor   Role = "proprietor"
	RoleAdmin        Role = "admin"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProfessional, RoleProprietor, RoleAdmin:
		return true
	}
	return false
}

// Action is a capability checked once per operation.
type Action string

const (
	ActionBookAppointment       Action = "appointment:book"
	ActionViewAppointment       Action = "appointment:view"
	ActionTransitionAppointment Action = "appointment:transition"
	ActionRateAppointment       Action = "appointment:rate"
	ActionManageStaff           Action = "staff:manage"
	ActionManageSubscription    Action = "subscription:manage"
	ActionManageCatalog         Action = "catalog:manage"
)

// rolePermissions is the single role-to-permission table. Ownership and
// tenant-scoping checks stay in the services; this table only answers "may
// this role ever perform this action".
var rolePermissions = map[Role]map[Action]bool{
	RoleCustomer: {
		ActionBookAppointment:       true,
		ActionViewAppointment:       true,
		ActionTransitionAppointment: true, // restricted to cancellation by the lifecycle rules
		ActionRateAppointment:       true,
	},
	RoleProfessional: {
		ActionViewAppointment:       true,
		ActionTransitionAppointment: true,
	},
	RoleProprietor: {
		ActionViewAppointment:       true,
		ActionTransitionAppointment: true,
		ActionManageStaff:           true,
		ActionManageSubscription:    true,
		ActionManageCatalog:         true,
	},
	RoleAdmin: {
		ActionBookAppointment:       true,
		ActionViewAppointment:       true,
		ActionTransitionAppointment: true,
		ActionRateAppointment:       true,
		ActionManageStaff:           true,
		ActionManageSubscription:    true,
		ActionManageCatalog:         true,
	},
}

// Can reports whether the role holds the capability.
func (r Role) Can(a Action) bool {
	return rolePermissions[r][a]
}
