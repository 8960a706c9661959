package steps

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/evanorsouw/thin-edge.io/internal/common"
	"github.com/evanorsouw/thin-edge.io/internal/system"
	"github.com/evanorsouw/thin-edge.io/internal/ui"
)

// FileWrite orchestrates one privileged write: destination validation, name
// resolution, optional parent directory creation and the atomic write itself.
type FileWrite struct {
	fs       system.FileSystemManager
	resolver system.UserResolver
	ui       *ui.UI
}

// NewFileWrite creates a new FileWrite instance
func NewFileWrite(fs system.FileSystemManager, resolver system.UserResolver, ui *ui.UI) *FileWrite {
	return &FileWrite{
		fs:       fs,
		resolver: resolver,
		ui:       ui,
	}
}

// WriteRequest carries the caller-supplied inputs for a single write.
type WriteRequest struct {
	// DestinationPath is the file standard input will be written to. It must
	// be absolute and canonical.
	DestinationPath string

	// Mode is the octal permission mode for the file, applied only when the
	// destination is created. Empty means no mode change.
	Mode string

	// User and Group name the new owner of a created file and of any
	// directories created through MakeDirs. Empty means no ownership change.
	User  string
	Group string

	// MakeDirs creates missing parent directories with mode 0755.
	MakeDirs bool
}

// Run validates the request, resolves names to ids, creates missing parent
// directories when requested, and streams src atomically into the
// destination. All validation and name resolution happens before the first
// filesystem mutation.
func (w *FileWrite) Run(src io.Reader, req *WriteRequest) error {
	dest, err := common.ValidateDestination(req.DestinationPath)
	if err != nil {
		return err
	}

	pending, err := w.resolvePending(req)
	if err != nil {
		return err
	}

	if req.MakeDirs {
		parent := filepath.Dir(dest)
		exists, err := w.fs.DirectoryExists(parent)
		if err != nil {
			return err
		}
		if !exists {
			w.ui.Debugf("creating missing directories up to %s", parent)
			if err := w.fs.EnsureTree(parent, pending.Ownership); err != nil {
				return err
			}
		}
	}

	w.ui.Debugf("writing standard input to %s", dest)
	if err := w.fs.WriteFileAtomic(src, dest, pending); err != nil {
		return fmt.Errorf("failed to write to destination file %s: %w", dest, err)
	}

	return nil
}

// resolvePending turns the request's mode/user/group strings into the
// metadata to apply if the destination does not exist yet.
func (w *FileWrite) resolvePending(req *WriteRequest) (system.Pending, error) {
	var pending system.Pending

	if req.Mode != "" {
		mode, err := common.ParseMode(req.Mode)
		if err != nil {
			return pending, err
		}
		pending.Mode = &mode
	}

	if req.User != "" {
		if err := common.ValidateName(req.User); err != nil {
			return pending, fmt.Errorf("invalid user name: %w", err)
		}
		uid, err := w.resolver.LookupUser(req.User)
		if err != nil {
			return pending, err
		}
		pending.UID = &uid
	}

	if req.Group != "" {
		if err := common.ValidateName(req.Group); err != nil {
			return pending, fmt.Errorf("invalid group name: %w", err)
		}
		gid, err := w.resolver.LookupGroup(req.Group)
		if err != nil {
			return pending, err
		}
		pending.GID = &gid
	}

	return pending, nil
}
