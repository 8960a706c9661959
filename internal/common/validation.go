package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Destination path validation errors. Callers can match them with errors.Is.
var (
	ErrNotAbsolute  = errors.New("destination path must be absolute")
	ErrNotCanonical = errors.New("destination path is not canonical")
)

// ValidateDestination validates that path is absolute and in canonical form
// and returns it unchanged.
//
// Sudo rules can grant write permissions scoped to a path prefix, e.g.
//
//	tedge    ALL = (ALL) NOPASSWD: /usr/bin/tedge-write /etc/*
//
// Such a rule matches the literal argument string, so a path containing `..`
// could escape the directory the rule intends to confine writes to. Paths
// that are not already canonical are therefore rejected, never rewritten:
// silently cleaning `/etc/foo/../bar` into `/etc/bar` would make the
// authorization check and the actual write target diverge. Symlinks are
// deliberately not resolved for the same reason.
func ValidateDestination(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s", ErrNotAbsolute, path)
	}

	if cleaned := filepath.Clean(path); cleaned != path {
		return "", fmt.Errorf("%w: %s", ErrNotCanonical, path)
	}

	return path, nil
}

// ParseMode parses an octal permission mode string such as "640" or "0644".
// Modes above 0777 (setuid, setgid, sticky) are rejected: a write helper
// running under sudo has no business creating setuid files.
func ParseMode(mode string) (os.FileMode, error) {
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: must be octal", mode)
	}

	if parsed > 0o777 {
		return 0, fmt.Errorf("invalid mode %q: must be between 0 and 0777", mode)
	}

	return os.FileMode(parsed), nil
}

// ValidateName validates a Unix user or group name before it is handed to
// the OS account lookup.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > 32 {
		return fmt.Errorf("name too long (max 32 characters): %s", name)
	}

	firstChar := name[0]
	if !((firstChar >= 'a' && firstChar <= 'z') || (firstChar >= 'A' && firstChar <= 'Z') || firstChar == '_') {
		return fmt.Errorf("name must start with a letter or underscore: %s", name)
	}

	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return fmt.Errorf("name contains invalid character: %s", name)
		}
	}

	return nil
}
