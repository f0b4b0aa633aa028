// Package gate decides whether a stored session may enter a screen.
package gate

import "github.com/citywatch/backend/client/session"

// Access describes who a screen is meant for
type Access int

const (
	// AccessPublic marks login and signup screens, meant for logged-out users
	AccessPublic Access = iota
	// AccessCitizen marks screens requiring a citizen session
	AccessCitizen
	// AccessPolice marks screens requiring a police session
	AccessPolice
)

// Session role tags as stored by the credential store
const (
	RoleCitizen = "citizen"
	RolePolice  = "police"
)

// Screen names used as redirect targets
const (
	ScreenLogin       = "login"
	ScreenCitizenHome = "citizen-home"
	ScreenPoliceHome  = "police-home"
)

// State is the outcome of a gate check
type State int

const (
	// StateAllowed lets the navigation proceed
	StateAllowed State = iota
	// StateRedirect sends the user to Decision.Redirect instead
	StateRedirect
)

// Decision carries the gate outcome. Notice, when set, should be shown
// to the user before redirecting.
type Decision struct {
	State    State
	Redirect string
	Notice   string
}

// Store is the credential source the gate reads from
type Store interface {
	Load() (session.Credentials, bool, error)
}

// Gate guards screen entry based on the stored session
type Gate struct {
	store Store
}

// New creates a gate over the given credential store
func New(store Store) *Gate {
	return &Gate{store: store}
}

// Check decides whether the current session may enter a screen with the
// given access level. A session that cannot be read is treated as absent,
// so a broken session file can never unlock a protected screen.
func (g *Gate) Check(access Access) Decision {
	creds, ok, err := g.store.Load()
	if err != nil {
		ok = false
	}

	if !ok {
		if access == AccessPublic {
			return Decision{State: StateAllowed}
		}
		return Decision{
			State:    StateRedirect,
			Redirect: ScreenLogin,
			Notice:   "Please login to continue",
		}
	}

	home := ScreenCitizenHome
	if creds.Role == RolePolice {
		home = ScreenPoliceHome
	}

	switch access {
	case AccessPublic:
		// Already authenticated users skip login and signup screens
		return Decision{
			State:    StateRedirect,
			Redirect: home,
			Notice:   "You are already logged in",
		}
	case AccessCitizen:
		if creds.Role != RoleCitizen {
			return Decision{State: StateRedirect, Redirect: home}
		}
	case AccessPolice:
		if creds.Role != RolePolice {
			return Decision{State: StateRedirect, Redirect: home}
		}
	}

	return Decision{State: StateAllowed}
}
