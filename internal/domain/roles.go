package domain

// Role names stored on the user record and embedded in session tokens.
const (
	RoleAdmin     = "Admin"
	RoleUser      = "User"
	RoleModerator = "Moderator"
)

// ValidRole reports whether name is one of the known role names.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}
