package system

import "io"

// FileSystemManager defines the interface for file system operations.
// This allows for mocking the file system in tests.
type FileSystemManager interface {
	WriteFileAtomic(src io.Reader, dest string, pending Pending) error
	EnsureTree(dir string, owner Ownership) error
	DirectoryExists(path string) (bool, error)
}

var _ FileSystemManager = (*FileSystem)(nil)
