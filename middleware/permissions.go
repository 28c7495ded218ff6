package middleware

// Role constants to avoid string typos
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
	RoleGuest        = "guest"
)

// StaffRoles lists every non-guest role.
var StaffRoles = []string{RoleAdmin, RoleManager, RoleReceptionist, RoleHousekeeping}

// AccessContext stores user access information for the current request
type AccessContext struct {
	UserID   uint
	RoleName string
	Email    string
}

// IsStaff returns true for hotel staff of any role.
func (ac *AccessContext) IsStaff() bool {
	for _, role := range StaffRoles {
		if ac.RoleName == role {
			return true
		}
	}
	return false
}

// IsGuest returns true for guest accounts.
func (ac *AccessContext) IsGuest() bool {
	return ac.RoleName == RoleGuest
}

// CanManageInventory returns true for roles allowed to create or modify
// rooms, pricing and staff accounts.
func (ac *AccessContext) CanManageInventory() bool {
	return ac.RoleName == RoleAdmin || ac.RoleName == RoleManager
}

// CanOperateFrontDesk returns true for roles allowed to confirm bookings,
// check guests in and out, and handle bills.
func (ac *AccessContext) CanOperateFrontDesk() bool {
	switch ac.RoleName {
	case RoleAdmin, RoleManager, RoleReceptionist:
		return true
	}
	return false
}
