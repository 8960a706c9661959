package system

import (
	"fmt"
	"os/user"
	"strconv"
)

// UserResolver resolves user and group names to numeric ids. Resolution is
// the only account-database dependency of this tool, kept behind a narrow
// interface so tests can substitute a fake instead of relying on real system
// accounts.
type UserResolver interface {
	LookupUser(name string) (int, error)
	LookupGroup(name string) (int, error)
}

// OSResolver resolves names against the local user and group databases.
type OSResolver struct{}

var _ UserResolver = OSResolver{}

// LookupUser returns the numeric uid for a username.
func (OSResolver) LookupUser(name string) (int, error) {
	u, err := user.Lookup(name)
	if err != nil {
		if _, ok := err.(user.UnknownUserError); ok {
			return 0, fmt.Errorf("no such user: %q", name)
		}
		return 0, fmt.Errorf("failed to lookup user %s: %w", name, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("invalid UID for %s: %w", name, err)
	}

	return uid, nil
}

// LookupGroup returns the numeric gid for a group name.
func (OSResolver) LookupGroup(name string) (int, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		if _, ok := err.(user.UnknownGroupError); ok {
			return 0, fmt.Errorf("no such group: %q", name)
		}
		return 0, fmt.Errorf("failed to lookup group %s: %w", name, err)
	}

	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, fmt.Errorf("invalid GID for %s: %w", name, err)
	}

	return gid, nil
}
