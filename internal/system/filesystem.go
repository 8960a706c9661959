package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// DirMode is applied to every directory created by EnsureTree: owner can do
// all, group and others can enter and read.
const DirMode os.FileMode = 0o755

// Ownership is an optional uid/gid pair. Either, both, or neither id may be
// present; an absent id is left as-is on the target.
type Ownership struct {
	UID *int
	GID *int
}

// IsSet reports whether at least one id is present.
func (o Ownership) IsSet() bool {
	return o.UID != nil || o.GID != nil
}

// ids returns the pair in chown form, -1 meaning "do not change".
func (o Ownership) ids() (int, int) {
	uid, gid := -1, -1
	if o.UID != nil {
		uid = *o.UID
	}
	if o.GID != nil {
		gid = *o.GID
	}
	return uid, gid
}

// String renders the pair for error messages, e.g. "1000:-".
func (o Ownership) String() string {
	format := func(id *int) string {
		if id == nil {
			return "-"
		}
		return strconv.Itoa(*id)
	}
	return format(o.UID) + ":" + format(o.GID)
}

// Pending describes metadata to apply to a destination file that does not
// exist yet. It is never applied to a pre-existing destination: overwriting a
// file must leave its owner and mode untouched no matter what flags were
// passed.
type Pending struct {
	Ownership
	Mode *os.FileMode
}

// FileSystem performs the privileged filesystem mutations of tedge-write.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem instance
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// DirectoryExists checks if a directory exists
func (fs *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// EnsureTree creates every missing component of dir, walking from the
// filesystem root downward with an accumulated prefix. Newly created
// directories get DirMode and, when owner carries an id, the requested
// ownership. Components that already exist are skipped entirely and keep
// their metadata. The walk aborts on the first error; directories created
// before the failure remain on disk.
func (fs *FileSystem) EnsureTree(dir string, owner Ownership) error {
	sep := string(filepath.Separator)

	current := sep
	for _, comp := range strings.Split(dir, sep) {
		if comp == "" {
			continue
		}
		current = filepath.Join(current, comp)

		if info, err := os.Stat(current); err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s exists but is not a directory", current)
			}
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check directory %s: %w", current, err)
		}

		if err := os.Mkdir(current, DirMode); err != nil {
			if os.IsExist(err) {
				// a concurrent creator won the race
				continue
			}
			return fmt.Errorf("failed to create directory %s: %w", current, err)
		}

		// the process umask may have stripped bits from the mkdir mode
		if err := os.Chmod(current, DirMode); err != nil {
			return fmt.Errorf("failed to set permissions %o on directory %s: %w", DirMode, current, err)
		}

		if owner.IsSet() {
			uid, gid := owner.ids()
			if err := os.Chown(current, uid, gid); err != nil {
				return fmt.Errorf("failed to change ownership of directory %s to %s: %w", current, owner, err)
			}
		}
	}

	return nil
}

// WriteFileAtomic streams src into dest by writing a temporary file in the
// destination's directory and renaming it into place. The same-directory
// temporary file keeps the rename on one filesystem, so readers of dest
// observe either the previous content or the complete new content, never a
// partial write.
//
// pending is applied to the temporary file before the rename, and only when
// dest did not exist beforehand; a pre-existing destination keeps its owner
// and mode across the rename, no matter what pending carries. On any failure
// the temporary file is removed and dest is left as it was.
func (fs *FileSystem) WriteFileAtomic(src io.Reader, dest string, pending Pending) error {
	existed := true
	prior, err := os.Stat(dest)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check destination %s: %w", dest, err)
		}
		existed = false
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", filepath.Dir(dest), err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temporary file %s: %w", tmpPath, err)
	}

	if existed {
		// The rename replaces the destination inode, so the original metadata
		// survives only if it is copied onto the temporary file first.
		if err := tmp.Chmod(prior.Mode().Perm()); err != nil {
			cleanup()
			return fmt.Errorf("failed to restore permissions %o on %s: %w", prior.Mode().Perm(), tmpPath, err)
		}
		if stat, ok := prior.Sys().(*syscall.Stat_t); ok {
			// Best effort: an unprivileged overwrite cannot chown the
			// temporary file to another owner.
			_ = tmp.Chown(int(stat.Uid), int(stat.Gid))
		}
	} else {
		if pending.Mode != nil {
			if err := tmp.Chmod(*pending.Mode); err != nil {
				cleanup()
				return fmt.Errorf("failed to set permissions %o on %s: %w", *pending.Mode, tmpPath, err)
			}
		}
		if pending.IsSet() {
			uid, gid := pending.ids()
			if err := tmp.Chown(uid, gid); err != nil {
				cleanup()
				return fmt.Errorf("failed to change ownership of %s to %s: %w", tmpPath, pending.Ownership, err)
			}
		}
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temporary file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, dest, err)
	}

	return nil
}
