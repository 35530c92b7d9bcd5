package authz

import "strings"

// AdminUser is the current-user value that selects the administrative view.
// Any other value is a broker name.
const AdminUser = "Lead Broker (Admin)"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBroker Role = "broker"
)

func IsAdmin(user string) bool {
	return user == AdminUser
}

func RoleOf(user string) Role {
	if IsAdmin(user) {
		return RoleAdmin
	}
	return RoleBroker
}

// CanSee reports whether user's view includes a lead owned by owner.
func CanSee(user, owner string) bool {
	return IsAdmin(user) || strings.TrimSpace(user) != "" && owner == user
}
