package domain

// Role represents a staff role
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RolePharmacist    Role = "Pharmacist"
)

// ValidRoles lists all roles with a default capability matrix
var ValidRoles = []Role{
	RoleAdministrator,
	RolePharmacist,
}

// IsValid reports whether r is one of the fixed roles
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Module names used in capability matrices
const (
	ModuleInventory     = "inventory"
	ModuleSales         = "sales"
	ModulePurchases     = "purchases"
	ModuleCustomers     = "customers"
	ModulePrescriptions = "prescriptions"
	ModuleReturns       = "returns"
	ModuleReports       = "reports"
	ModuleSettings      = "settings"
	ModuleUsers         = "users"
)

// Action names used in capability matrices
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Modules lists every module in navigation order
var Modules = []string{
	ModuleInventory,
	ModuleSales,
	ModulePurchases,
	ModuleCustomers,
	ModulePrescriptions,
	ModuleReturns,
	ModuleReports,
	ModuleSettings,
	ModuleUsers,
}

// Actions lists every action
var Actions = []string{ActionView, ActionAdd, ActionEdit, ActionDelete}

// Matrix maps module -> action -> allowed
type Matrix map[string]map[string]bool

// Allows looks up a (module, action) pair. Missing entries are denied.
func (m Matrix) Allows(module, action string) bool {
	if m == nil {
		return false
	}
	actions, ok := m[module]
	if !ok {
		return false
	}
	return actions[action]
}

// Clone returns a deep copy
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for module, actions := range m {
		a := make(map[string]bool, len(actions))
		for action, allowed := range actions {
			a[action] = allowed
		}
		out[module] = a
	}
	return out
}

// Complete returns a copy with every known (module, action) pair present,
// filling gaps with false.
func (m Matrix) Complete() Matrix {
	out := make(Matrix, len(Modules))
	for _, module := range Modules {
		a := make(map[string]bool, len(Actions))
		for _, action := range Actions {
			a[action] = m.Allows(module, action)
		}
		out[module] = a
	}
	return out
}

// FullMatrix grants every action on every module
func FullMatrix() Matrix {
	out := make(Matrix, len(Modules))
	for _, module := range Modules {
		a := make(map[string]bool, len(Actions))
		for _, action := range Actions {
			a[action] = true
		}
		out[module] = a
	}
	return out
}

func crud(view, add, edit, del bool) map[string]bool {
	return map[string]bool{
		ActionView:   view,
		ActionAdd:    add,
		ActionEdit:   edit,
		ActionDelete: del,
	}
}

// DefaultRoleMatrices returns the built-in capability matrix of every role
func DefaultRoleMatrices() map[Role]Matrix {
	return map[Role]Matrix{
		RoleAdministrator: FullMatrix(),
		RolePharmacist: {
			ModuleInventory:     crud(true, true, true, false),
			ModuleSales:         crud(true, true, true, false),
			ModulePurchases:     crud(false, false, false, false),
			ModuleCustomers:     crud(true, true, true, false),
			ModulePrescriptions: crud(true, true, true, false),
			ModuleReturns:       crud(true, true, true, false),
			ModuleReports:       crud(false, false, false, false),
			ModuleSettings:      crud(false, false, false, false),
			ModuleUsers:         crud(false, false, false, false),
		},
	}
}
