package eval

import (
	"os/user"
	"strconv"
)

// matchUserName reports whether uid resolves to the named user.
func matchUserName(name string, uid uint32) bool {
	if numeric, err := strconv.ParseUint(name, 10, 32); err == nil {
		return uint32(numeric) == uid
	}
	u, err := user.Lookup(name)
	if err != nil {
		return false
	}
	resolved, err := strconv.ParseUint(u.Uid, 10, 32)
	return err == nil && uint32(resolved) == uid
}

// matchGroupName reports whether gid resolves to the named group.
func matchGroupName(name string, gid uint32) bool {
	if numeric, err := strconv.ParseUint(name, 10, 32); err == nil {
		return uint32(numeric) == gid
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return false
	}
	resolved, err := strconv.ParseUint(g.Gid, 10, 32)
	return err == nil && uint32(resolved) == gid
}

// userExists reports whether uid resolves to a known user account.
func userExists(uid uint32) bool {
	_, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	return err == nil
}

// groupExists reports whether gid resolves to a known group.
func groupExists(gid uint32) bool {
	_, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	return err == nil
}

// UserName resolves uid to a username for -printf's %u directive, falling
// back to the numeric uid (matching find's own behavior) when the account
// is unknown.
func UserName(uid uint32) string {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return strconv.FormatUint(uint64(uid), 10)
	}
	return u.Username
}

// GroupName resolves gid to a group name for -printf's %g directive,
// falling back to the numeric gid when the group is unknown.
func GroupName(gid uint32) string {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return strconv.FormatUint(uint64(gid), 10)
	}
	return g.Name
}
