// Package auth resolves tool callers to user identities.
//
// Two calling modes exist. The trusted backend passes a user_id directly
// and is believed. External clients pass an api_key, which must match
// either the admin key or a per-user key.
package auth

// Mode says how the caller was identified.
type Mode int

const (
	// ModeTrusted means the backend vouched for the user id.
	ModeTrusted Mode = iota
	// ModeAdmin means the caller presented the admin key and may act
	// for any user id.
	ModeAdmin
	// ModeUser means the caller presented a per-user key and is bound
	// to that key's user.
	ModeUser
)

func (m Mode) String() string {
	switch m {
	case ModeTrusted:
		return "trusted"
	case ModeAdmin:
		return "admin"
	case ModeUser:
		return "user"
	}
	return "unknown"
}

// Context is the resolved identity for one tool call.
type Context struct {
	UserID string
	Mode   Mode
}
