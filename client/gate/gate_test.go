package gate

import (
	"errors"
	"testing"

	"github.com/citywatch/backend/client/session"
	"github.com/stretchr/testify/assert"
)

// stubStore is a fixed-response credential source
type stubStore struct {
	creds session.Credentials
	ok    bool
	err   error
}

func (s *stubStore) Load() (session.Credentials, bool, error) {
	return s.creds, s.ok, s.err
}

func TestGate_Check(t *testing.T) {
	citizen := &stubStore{creds: session.Credentials{Token: "t", Role: RoleCitizen}, ok: true}
	police := &stubStore{creds: session.Credentials{Token: "t", Role: RolePolice}, ok: true}
	loggedOut := &stubStore{}
	broken := &stubStore{err: errors.New("disk error")}

	tests := []struct {
		name     string
		store    Store
		access   Access
		expected Decision
	}{
		{
			name:     "logged out user may open login screen",
			store:    loggedOut,
			access:   AccessPublic,
			expected: Decision{State: StateAllowed},
		},
		{
			name:   "logged out user is sent to login from a citizen screen",
			store:  loggedOut,
			access: AccessCitizen,
			expected: Decision{
				State:    StateRedirect,
				Redirect: ScreenLogin,
				Notice:   "Please login to continue",
			},
		},
		{
			name:   "citizen visiting login is sent home with a notice",
			store:  citizen,
			access: AccessPublic,
			expected: Decision{
				State:    StateRedirect,
				Redirect: ScreenCitizenHome,
				Notice:   "You are already logged in",
			},
		},
		{
			name:   "police visiting login is sent to the police home",
			store:  police,
			access: AccessPublic,
			expected: Decision{
				State:    StateRedirect,
				Redirect: ScreenPoliceHome,
				Notice:   "You are already logged in",
			},
		},
		{
			name:     "citizen may open citizen screens",
			store:    citizen,
			access:   AccessCitizen,
			expected: Decision{State: StateAllowed},
		},
		{
			name:     "police may open police screens",
			store:    police,
			access:   AccessPolice,
			expected: Decision{State: StateAllowed},
		},
		{
			name:     "citizen is bounced off police screens",
			store:    citizen,
			access:   AccessPolice,
			expected: Decision{State: StateRedirect, Redirect: ScreenCitizenHome},
		},
		{
			name:     "police is bounced off citizen screens",
			store:    police,
			access:   AccessCitizen,
			expected: Decision{State: StateRedirect, Redirect: ScreenPoliceHome},
		},
		{
			name:   "unreadable session never unlocks a protected screen",
			store:  broken,
			access: AccessPolice,
			expected: Decision{
				State:    StateRedirect,
				Redirect: ScreenLogin,
				Notice:   "Please login to continue",
			},
		},
		{
			name:     "unreadable session still allows public screens",
			store:    broken,
			access:   AccessPublic,
			expected: Decision{State: StateAllowed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.store)

			decision := g.Check(tt.access)

			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestGate_CheckIsIdempotent(t *testing.T) {
	g := New(&stubStore{creds: session.Credentials{Token: "t", Role: RoleCitizen}, ok: true})

	first := g.Check(AccessCitizen)
	second := g.Check(AccessCitizen)

	assert.Equal(t, first, second)
}
