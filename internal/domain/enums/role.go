package enums

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleModerator Role = "moderator"
)

// ParseRole maps a token role claim onto a known role. Anything unknown,
// including an empty claim, is a plain user.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOrganizer:
		return RoleOrganizer
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}
