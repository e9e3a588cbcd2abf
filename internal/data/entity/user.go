package entity

type UserRole string

const (
	RoleNormalUser  UserRole = "NORMAL_USER"
	RoleStoreOwner  UserRole = "STORE_OWNER"
	RoleSystemAdmin UserRole = "SYSTEM_ADMINISTRATOR"
)

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Name               string   `db:"name"`
	Email              string   `db:"email"`
	PasswordHash       string   `db:"password"`
	Address            *string  `db:"address"`
	Role               UserRole `db:"role"`
	MustChangePassword bool     `db:"must_change_password"`
}
