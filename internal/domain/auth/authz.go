package auth

// IsAdmin reports whether the user holds any administrative role.
func IsAdmin(u *User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleSuperuser, RoleAdmin, RoleEntryAdmin:
		return true
	default:
		return false
	}
}

// CanAccessGroup reports whether the user may administer reports of the given group.
// Unknown roles get no access.
func CanAccessGroup(u *User, group string) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleSuperuser, RoleAdmin:
		return true
	case RoleEntryAdmin:
		for _, g := range u.AllowedGroups {
			if g == group {
				return true
			}
		}
		return false
	default:
		return false
	}
}
