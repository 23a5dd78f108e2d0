package library

import (
	"slices"
	"strings"
)

const guestName = "Guest User"

// Session is the signed-in identity for one run of the client. An empty
// token means guest. Values are built once at startup and passed down; the
// engine never reads storage on its own.
type Session struct {
	Token string
	Email string
	roles map[string]struct{}
}

// NewSession builds a session; role names are upper-cased.
func NewSession(token, email string, roles []string) Session {
	s := Session{Token: token, Email: email, roles: make(map[string]struct{}, len(roles))}
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			s.roles[r] = struct{}{}
		}
	}
	return s
}

// GuestSession has no credentials.
func GuestSession() Session { return NewSession("", "", nil) }

func (s Session) IsGuest() bool { return s.Token == "" }

func (s Session) HasRole(role string) bool {
	_, ok := s.roles[strings.ToUpper(role)]
	return ok
}

// IsAdmin is a UX hint only; the backend enforces authorization.
func (s Session) IsAdmin() bool { return s.HasRole("ADMIN") }

// Roles returns the role set sorted for stable output.
func (s Session) Roles() []string {
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// DisplayName is what the header shows: the email, or "Guest User".
func (s Session) DisplayName() string {
	if s.IsGuest() || s.Email == "" {
		return guestName
	}
	return s.Email
}
